// Package tzinfo derives timezone facts from decoded TZif data: the rule
// in effect at an instant, the transitions of a year and a composite
// snapshot with the DST window of the local year.
//
// A Zone is immutable once built and owns all of its arrays; transitions
// and local time types reference each other by plain indices. Queries are
// pure read-only traversals, so a single Zone can be shared across
// goroutines without coordination.
package tzinfo

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nicolasbauw/go-tzfile/internal/unixtime"
	"github.com/nicolasbauw/go-tzfile/tzif"
)

// ErrNoData is returned by queries on a zone whose local time type table
// is empty. Such a file is degenerate; RFC8536 requires at least one type.
// A zone without transitions is not degenerate and never causes ErrNoData
// by itself.
var ErrNoData = errors.New("tzinfo: no timezone data")

// Rule is one local time type: the offset and DST disposition that apply
// between two transitions.
type Rule struct {
	// Utoff is the number of seconds to be added to UT to determine
	// local time.
	Utoff int
	// Dst reports whether the rule represents a daylight saving
	// adjustment.
	Dst bool
	// AbbrIndex is the octet offset of the rule's NUL-terminated
	// abbreviation in the zone's designation pool.
	AbbrIndex uint8
}

// Zone is the decoded form of one timezone database entry, reduced to the
// fields queries need: transition instants paired with indices into the
// rule table, and the designation pool the rules point into.
type Zone struct {
	name  string
	trans []int64 // transition instants, strictly ascending
	types []uint8 // rule index per transition
	rules []Rule
	desig []byte
}

// FromData builds a Zone from decoded TZif data, using the authoritative
// data block. The Zone copies the arrays it keeps, so d can be discarded
// afterwards.
func FromData(name string, d tzif.Data) *Zone {
	_, b := d.Block()
	z := &Zone{
		name:  name,
		trans: append([]int64(nil), b.TransitionTimes...),
		types: append([]uint8(nil), b.TransitionTypes...),
		desig: append([]byte(nil), b.Designations...),
	}
	z.rules = make([]Rule, len(b.LocalTimeTypes))
	for i, t := range b.LocalTimeTypes {
		z.rules[i] = Rule{Utoff: int(t.Utoff), Dst: t.Dst, AbbrIndex: t.Idx}
	}
	return z
}

// Parse decodes a complete TZif buffer and builds a Zone from its
// authoritative block.
func Parse(name string, buf []byte) (*Zone, error) {
	d, err := tzif.Decode(buf)
	if err != nil {
		return nil, err
	}
	return FromData(name, d), nil
}

// Name returns the zone name, e.g. "Europe/Paris".
func (z *Zone) Name() string { return z.name }

// ActiveRule returns the rule in effect at the given instant (seconds
// since the Unix epoch). A rule applies over the half-open interval from
// its transition instant up to, but not including, the next transition
// instant; an instant exactly at a transition therefore resolves to the
// new rule. Instants before the first transition, and all instants of a
// zone without transitions, resolve to the first entry of the rule table,
// per the format's convention.
//
// ActiveRule fails only with ErrNoData, when the rule table is empty.
func (z *Zone) ActiveRule(at int64) (Rule, error) {
	if len(z.rules) == 0 {
		return Rule{}, ErrNoData
	}
	// Greatest transition instant <= at.
	i := sort.Search(len(z.trans), func(i int) bool { return z.trans[i] > at }) - 1
	if i < 0 {
		return z.rules[0], nil
	}
	return z.rules[z.types[i]], nil
}

// Abbreviation returns the NUL-terminated designation starting at octet
// offset idx of the designation pool. An index beyond the pool is an
// error; a missing terminating NUL yields the remainder of the pool.
func (z *Zone) Abbreviation(idx uint8) (string, error) {
	if int(idx) >= len(z.desig) {
		return "", fmt.Errorf("tzinfo: designation index %d out of range (pool size %d)", idx, len(z.desig))
	}
	s := z.desig[idx:]
	for i, c := range s {
		if c == 0 {
			return string(s[:i]), nil
		}
	}
	return string(s), nil
}

// Abbreviations returns all designations of the pool in order.
func (z *Zone) Abbreviations() []string {
	var (
		out   []string
		start = 0
	)
	for i, c := range z.desig {
		if c == 0 {
			out = append(out, string(z.desig[start:i]))
			start = i + 1
		}
	}
	if start < len(z.desig) {
		out = append(out, string(z.desig[start:]))
	}
	return out
}

// TransitionTime describes one transition: the instant a rule change
// occurs and the parameters that apply from that instant on.
type TransitionTime struct {
	// Time is the UTC instant of the transition.
	Time time.Time `json:"time" yaml:"time"`
	// Utoff is the upcoming offset to UT, in seconds.
	Utoff int `json:"utc_offset" yaml:"utc_offset"`
	// Dst reports whether the upcoming rule is daylight saving time.
	Dst bool `json:"isdst" yaml:"isdst"`
	// Abbreviation is the designation of the upcoming rule.
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
}

func (z *Zone) transition(i int) (TransitionTime, error) {
	r := z.rules[z.types[i]]
	abbr, err := z.Abbreviation(r.AbbrIndex)
	if err != nil {
		return TransitionTime{}, err
	}
	return TransitionTime{
		Time:         time.Unix(z.trans[i], 0).UTC(),
		Utoff:        r.Utoff,
		Dst:          r.Dst,
		Abbreviation: abbr,
	}, nil
}

// Transitions returns every transition recorded for the zone, in
// chronological order. The result may be empty for zones with a single
// constant offset. It fails with ErrNoData when the rule table is empty.
func (z *Zone) Transitions() ([]TransitionTime, error) {
	if len(z.rules) == 0 {
		return nil, ErrNoData
	}
	out := make([]TransitionTime, 0, len(z.trans))
	for i := range z.trans {
		t, err := z.transition(i)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// TransitionsInYear returns the transitions whose instant falls within the
// given UTC calendar year, i.e. within [Jan 1st of year, Jan 1st of
// year+1), in chronological order. An empty result is valid: the zone may
// have abolished DST, or the year may lie outside the recorded range. It
// fails with ErrNoData when the rule table is empty.
func (z *Zone) TransitionsInYear(year int) ([]TransitionTime, error) {
	if len(z.rules) == 0 {
		return nil, ErrNoData
	}
	var (
		begin = unixtime.YearStart(year)
		end   = unixtime.YearStart(year + 1)
	)
	lo := sort.Search(len(z.trans), func(i int) bool { return z.trans[i] >= begin })
	hi := sort.Search(len(z.trans), func(i int) bool { return z.trans[i] >= end })

	out := make([]TransitionTime, 0, hi-lo)
	for i := lo; i < hi; i++ {
		t, err := z.transition(i)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
