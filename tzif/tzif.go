// Package tzif implements the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Decoding operates on a complete in-memory buffer with bounds-checked
// sequential reads. A version 2+ file carries a legacy 32-bit block
// followed by an authoritative 64-bit block; both are decoded and kept
// so that a file can be re-encoded, but consumers should use Block to
// get the authoritative header and data.
package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// The version is an octet identifying the version of the file's format.
// In V1, time values are 32bit (four-octets) and in V2 upwards time values
// are 64bit (eight-octets).
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 represents a version 1 TZif file. The file contains only the
	// version 1 header and data block.
	V1 Version = 0x00
	// V2 represents a version 2 TZif file. The file contains the version 1
	// header and data block, a version 2+ header and data block, and a
	// footer with a POSIX TZ string.
	V2 Version = 0x32
	// V3 represents a version 3 TZif file. Like V2, but the footer TZ
	// string may use the extensions from Section 3.3.1 of RFC8536.
	V3 Version = 0x33 // '3'
	// V4 represents a version 4 TZif file. It is not specified in RFC8536
	// but is specified in the tzfile(5) man page. The differences to V3
	// only concern leap-second records.
	V4 Version = 0x34 // '4'
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version
	// Reserved for future use.
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators contained in the data
	// block -- MUST either be zero or equal to "typecnt".
	Isutcnt uint32

	// Isstdcnt is the number of standard/wall indicators contained in the
	// data block -- MUST either be zero or equal to "typecnt".
	Isstdcnt uint32

	// Leapcnt is the number of leap-second records contained in the data
	// block.
	Leapcnt uint32

	// Timecnt is the number of transition times contained in the data
	// block.
	Timecnt uint32

	// Typecnt is the number of local time type records contained in the
	// data block -- MUST NOT be zero according to RFC8536. Decode accepts
	// zero so degenerate files can be inspected; Validate flags it.
	Typecnt uint32

	// Charcnt is the total number of octets used by the set of time zone
	// designations contained in the data block, including the trailing
	// NUL octet of the last designation.
	Charcnt uint32
}

// Write writes the Header to w.
func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// LocalTimeType is a six-octet record specifying a local time type.
// Each record has the following format (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeType struct {
	// Utoff is the number of seconds to be added to UT in order to
	// determine local time. The value SHOULD be in the range
	// [-89999, 93599] and MUST NOT be -2**31.
	Utoff int32

	// Dst indicates whether local time should be considered Daylight
	// Saving Time (DST). The wire value MUST be 0 or 1; Decode treats any
	// nonzero octet as true.
	Dst bool

	// Idx is a zero-based index into the series of time zone designation
	// octets, selecting the NUL-terminated designation string that starts
	// at position "idx". Each index MUST be in the range [0, "charcnt"-1].
	Idx uint8
}

// Write writes the LocalTimeType to w.
func (r LocalTimeType) Write(w io.Writer) error {
	if err := binary.Write(w, order, r.Utoff); err != nil {
		return err
	}
	if err := binary.Write(w, order, r.Dst); err != nil {
		return err
	}
	return binary.Write(w, order, r.Idx)
}

// LeapSecondRecord specifies a correction that needs to be applied to UTC
// in order to determine TAI. Occur is four octets on the wire in a V1 data
// block and eight octets in a V2+ data block.
type LeapSecondRecord struct {
	// Occur is a UNIX leap time value specifying the time at which a
	// leap-second correction occurs.
	Occur int64

	// Corr is the value of LEAPCORR on or after the occurrence.
	Corr int32
}

func (r LeapSecondRecord) write(w io.Writer, timeSize int) error {
	if timeSize == 4 {
		if err := binary.Write(w, order, int32(r.Occur)); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, order, r.Occur); err != nil {
			return err
		}
	}
	return binary.Write(w, order, r.Corr)
}

// DataBlock is the data block of a TZif file. V1 and V2+ blocks share this
// layout; the only difference is TIME_SIZE, which is 4 in a V1 block and 8
// in a V2+ block:
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock struct {
	// TransitionTimes is a series of UNIX leap-time values sorted in
	// strictly ascending order. Each value is a transition time at which
	// the rules for computing local time may change. V1 timestamps are
	// widened to 64 bits when decoded.
	TransitionTimes []int64

	// TransitionTypes is a series of zero-based indices into
	// LocalTimeTypes, one per transition time. Each index MUST be in the
	// range [0, "typecnt" - 1].
	TransitionTypes []uint8

	// LocalTimeTypes is the local time type table. The number of records
	// is specified by the "typecnt" field in the header.
	LocalTimeTypes []LocalTimeType

	// Designations is an array of NUL-terminated time zone designation
	// strings, "charcnt" octets in total. Two designations MAY overlap if
	// one is a suffix of the other.
	Designations []byte

	// LeapSecondRecords are the leap-second corrections, sorted by
	// occurrence time in strictly ascending order. They are retained for
	// re-encoding only; queries do not apply them.
	LeapSecondRecords []LeapSecondRecord

	// StandardWallIndicators report whether the transition times
	// associated with local time types were specified as standard time
	// (true) or wall-clock time (false).
	StandardWallIndicators []bool

	// UTLocalIndicators report whether the transition times associated
	// with local time types were specified as UT (true) or local time
	// (false).
	UTLocalIndicators []bool
}

// Write writes the DataBlock to w using timestamps of the given width in
// octets: 4 for a V1 block, 8 for a V2+ block.
func (b DataBlock) Write(w io.Writer, timeSize int) error {
	for _, t := range b.TransitionTimes {
		if timeSize == 4 {
			if err := binary.Write(w, order, int32(t)); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, order, t); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(w, order, b.TransitionTypes); err != nil {
		return err
	}
	for _, r := range b.LocalTimeTypes {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.Designations); err != nil {
		return err
	}
	for _, r := range b.LeapSecondRecords {
		if err := r.write(w, timeSize); err != nil {
			return err
		}
	}
	for _, r := range b.StandardWallIndicators {
		if err := binary.Write(w, order, r); err != nil {
			return err
		}
	}
	for _, r := range b.UTLocalIndicators {
		if err := binary.Write(w, order, r); err != nil {
			return err
		}
	}
	return nil
}

// Footer represents the footer of a version 2+ TZif file.
// The footer is structured as follows:
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
type Footer struct {
	// TZString contains a rule for computing local time changes after the
	// last transition time stored in the version 2+ data block. The string
	// is either empty or uses the expanded format of the "TZ" environment
	// variable as defined in Section 8.3 of the "Base Definitions" volume
	// of [POSIX]. It MUST NOT contain NUL octets or be NUL-terminated.
	TZString []byte
}

var asciiNewLine = byte(0x0A)

// Write writes the Footer to w.
func (f Footer) Write(w io.Writer) error {
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return err
	}
	if _, err := w.Write(f.TZString); err != nil {
		return err
	}
	_, err := w.Write([]byte{asciiNewLine})
	return err
}
