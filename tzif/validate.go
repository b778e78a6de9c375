package tzif

import (
	"errors"
	"fmt"
)

// Validate checks d against the structural requirements of RFC8536 that
// Decode deliberately does not enforce. Decode guarantees that the arrays
// are complete and that every transition references an existing local
// time type; Validate additionally reports count relationships, ordering
// and designation-table invariants. All findings are joined into a single
// error.
func Validate(d Data) error {
	var errs []error
	if d.Version != d.V1Header.Version {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v", d.Version, d.V1Header.Version))
	}

	errs = append(errs, validateBlock("v1", d.V1Header, d.V1Data)...)

	if d.Version > V1 {
		if d.Version != d.V2Header.Version {
			errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v2 header = %v", d.Version, d.V2Header.Version))
		}
		errs = append(errs, validateBlock("v2", d.V2Header, d.V2Data)...)
	}

	return errors.Join(errs...)
}

func validateBlock(label string, header Header, data DataBlock) []error {
	var err []error

	// Isutcnt
	if header.Isutcnt != 0 && header.Isutcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isutcnt (%d): must be 0 or equal to typecnt (%d)", label, header.Isutcnt, header.Typecnt))
	}
	if len(data.UTLocalIndicators) != int(header.Isutcnt) {
		err = append(err, fmt.Errorf("invalid %s isutcnt: header = %d, data = %d", label, header.Isutcnt, len(data.UTLocalIndicators)))
	}

	// Isstdcnt
	if header.Isstdcnt != 0 && header.Isstdcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isstdcnt (%d): must be 0 or equal to typecnt (%d)", label, header.Isstdcnt, header.Typecnt))
	}
	if len(data.StandardWallIndicators) != int(header.Isstdcnt) {
		err = append(err, fmt.Errorf("invalid %s isstdcnt: header = %d, data = %d", label, header.Isstdcnt, len(data.StandardWallIndicators)))
	}

	// Leapcnt
	if len(data.LeapSecondRecords) != int(header.Leapcnt) {
		err = append(err, fmt.Errorf("invalid %s leapcnt: header = %d, data = %d", label, header.Leapcnt, len(data.LeapSecondRecords)))
	}

	// Timecnt
	if len(data.TransitionTimes) != int(header.Timecnt) {
		err = append(err, fmt.Errorf("invalid %s timecnt: header = %d, transition times = %d", label, header.Timecnt, len(data.TransitionTimes)))
	}
	if times, types := len(data.TransitionTimes), len(data.TransitionTypes); times != types {
		err = append(err, fmt.Errorf("inconsistent %s transitions: transition times = %d, transition types = %d", label, times, types))
	}
	for i := 1; i < len(data.TransitionTimes); i++ {
		if data.TransitionTimes[i] <= data.TransitionTimes[i-1] {
			err = append(err, fmt.Errorf("invalid %s transition times: not strictly ascending at index %d", label, i))
			break
		}
	}

	// Typecnt
	if header.Typecnt == 0 {
		err = append(err, fmt.Errorf("invalid %s typecnt: must not be zero", label))
	}
	if len(data.LocalTimeTypes) != int(header.Typecnt) {
		err = append(err, fmt.Errorf("invalid %s typecnt: header = %d, data = %d", label, header.Typecnt, len(data.LocalTimeTypes)))
	}
	for i, r := range data.LocalTimeTypes {
		if int(r.Idx) >= len(data.Designations) {
			err = append(err, fmt.Errorf("invalid %s local time type %d: designation index %d out of range (charcnt = %d)", label, i, r.Idx, len(data.Designations)))
		}
	}

	// Charcnt
	if header.Charcnt == 0 {
		err = append(err, fmt.Errorf("invalid %s charcnt: must not be zero", label))
	}
	if len(data.Designations) != int(header.Charcnt) {
		err = append(err, fmt.Errorf("invalid %s charcnt: header = %d, data = %d", label, header.Charcnt, len(data.Designations)))
	}
	if header.Charcnt > 0 && len(data.Designations) > 0 && data.Designations[len(data.Designations)-1] != 0 {
		err = append(err, fmt.Errorf("invalid %s time zone designations: missing null terminator", label))
	}
	return err
}
