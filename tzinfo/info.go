package tzinfo

import (
	"fmt"
	"sort"
	"time"

	"github.com/nicolasbauw/go-tzfile/internal/unixtime"
)

// Offset is an offset to UT in seconds. It marshals to the conventional
// "+02:00" form (with a seconds part for the odd pre-standard-time
// offsets, e.g. "-07:28:18").
type Offset int

func (o Offset) String() string {
	sign := "+"
	s := int(o)
	if s < 0 {
		sign = "-"
		s = -s
	}
	if s%60 != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, s/3600, s%3600/60)
}

// MarshalText implements encoding.TextMarshaler so Offset renders as its
// String form in JSON and YAML.
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Info is a snapshot of a zone at one instant: the local time, the active
// offset and abbreviation, and the DST window of the local year.
//
// About the offset fields:
//   - RawOffset is the "normal" offset to UT, in seconds
//   - DSTOffset is the offset to UT during daylight saving time, in
//     seconds; nil for zones that do not observe DST around the instant
//   - UTCOffset is the offset in effect at the instant, DST or not
type Info struct {
	// Timezone is the zone name, e.g. "Europe/Paris".
	Timezone string `json:"timezone" yaml:"timezone"`
	// UTCDatetime is the queried instant in UTC.
	UTCDatetime time.Time `json:"utc_datetime" yaml:"utc_datetime"`
	// Datetime is the queried instant in the zone's local time.
	Datetime time.Time `json:"datetime" yaml:"datetime"`
	// DSTFrom is the start of the DST period, nil when no DST applies.
	DSTFrom *time.Time `json:"dst_from,omitempty" yaml:"dst_from,omitempty"`
	// DSTUntil is the end of the DST period, nil when no DST applies or
	// the recorded data never returns to standard time.
	DSTUntil *time.Time `json:"dst_until,omitempty" yaml:"dst_until,omitempty"`
	// DSTPeriod reports whether the instant falls in daylight saving
	// time.
	DSTPeriod bool `json:"dst_period" yaml:"dst_period"`
	// RawOffset is the standard offset to UT, in seconds.
	RawOffset int `json:"raw_offset" yaml:"raw_offset"`
	// DSTOffset is the daylight saving offset to UT in seconds, nil when
	// the zone has no DST window around the instant.
	DSTOffset *int `json:"dst_offset,omitempty" yaml:"dst_offset,omitempty"`
	// UTCOffset is the offset in effect at the instant.
	UTCOffset Offset `json:"utc_offset" yaml:"utc_offset"`
	// Abbreviation is the designation in effect at the instant.
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
	// WeekNumber is the ISO-8601 week number of the local calendar date:
	// weeks start on Monday and week 1 is the week containing the year's
	// first Thursday.
	WeekNumber int `json:"week_number" yaml:"week_number"`
}

// Info returns the snapshot for the current time. See InfoAt.
func (z *Zone) Info() (Info, error) {
	return z.InfoAt(time.Now())
}

// InfoAt returns the snapshot for the given instant.
//
// The DST window is selected by the calendar year of the *local* time:
// the window start is the most recent transition into DST at or before
// the instant within that local year or the year before it (Southern
// Hemisphere windows span the year boundary), and the window end is the
// next transition back to standard time. Zones without any DST rule get
// a nil window; that is not an error. InfoAt fails only with ErrNoData,
// when the rule table is empty.
func (z *Zone) InfoAt(at time.Time) (Info, error) {
	at = at.UTC()
	sec := at.Unix()

	active, err := z.ActiveRule(sec)
	if err != nil {
		return Info{}, err
	}
	abbr, err := z.Abbreviation(active.AbbrIndex)
	if err != nil {
		return Info{}, err
	}

	local := at.In(time.FixedZone(abbr, active.Utoff))
	_, week := local.ISOWeek()

	info := Info{
		Timezone:     z.name,
		UTCDatetime:  at,
		Datetime:     local,
		DSTPeriod:    active.Dst,
		RawOffset:    active.Utoff,
		UTCOffset:    Offset(active.Utoff),
		Abbreviation: abbr,
		WeekNumber:   week,
	}

	w, ok := z.dstWindow(sec, local.Year())
	if !ok {
		return info, nil
	}

	from := time.Unix(w.from, 0).UTC()
	info.DSTFrom = &from
	if w.hasUntil {
		until := time.Unix(w.until, 0).UTC()
		info.DSTUntil = &until
	}
	dstOff := w.dst.Utoff
	info.DSTOffset = &dstOff
	if active.Dst && w.hasStd {
		info.RawOffset = w.std.Utoff
	}
	return info, nil
}

// dstWindow describes the daylight saving period relevant to one queried
// instant.
type dstWindow struct {
	from     int64
	until    int64
	hasUntil bool
	dst      Rule
	std      Rule
	hasStd   bool
}

// dstWindow finds the most recent transition into DST at or before the
// given instant, looking no further back than the start of the year
// preceding the local year, and the transition back to standard time that
// follows it. ok is false when no such transition exists, which covers
// fixed-offset zones and zones that abolished DST before the window.
func (z *Zone) dstWindow(at int64, localYear int) (w dstWindow, ok bool) {
	lower := unixtime.YearStart(localYear - 1)

	i := sort.Search(len(z.trans), func(i int) bool { return z.trans[i] > at }) - 1
	for ; i >= 0 && z.trans[i] >= lower; i-- {
		r := z.rules[z.types[i]]
		if !r.Dst {
			continue
		}
		w.from = z.trans[i]
		w.dst = r

		for j := i + 1; j < len(z.trans); j++ {
			rj := z.rules[z.types[j]]
			if !rj.Dst {
				w.until = z.trans[j]
				w.hasUntil = true
				w.std = rj
				w.hasStd = true
				break
			}
		}
		if !w.hasStd {
			// The recorded data never returns to standard time after
			// the window start; use the rule in effect before it.
			for j := i - 1; j >= 0; j-- {
				if rj := z.rules[z.types[j]]; !rj.Dst {
					w.std = rj
					w.hasStd = true
					break
				}
			}
		}
		return w, true
	}
	return dstWindow{}, false
}
