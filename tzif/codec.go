package tzif

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decode errors. All are detected eagerly during the single decode pass;
// a malformed buffer never yields a partial Data. Returned errors wrap one
// of these sentinels and add positional context.
var (
	// ErrInvalidMagic means the buffer does not start with "TZif".
	ErrInvalidMagic = errors.New("tzif: invalid magic")
	// ErrUnsupportedVersion means the version octet after the magic is not
	// one of the known version values.
	ErrUnsupportedVersion = errors.New("tzif: unsupported version")
	// ErrTruncated means the buffer is shorter than the header-declared
	// array lengths require.
	ErrTruncated = errors.New("tzif: truncated data")
	// ErrInvalidTypeIndex means a transition references a local time type
	// that is not in the type table.
	ErrInvalidTypeIndex = errors.New("tzif: invalid type index")
)

// Data represents a TZif file.
type Data struct {
	Version Version

	V1Header Header
	V1Data   DataBlock

	V2Header Header
	V2Data   DataBlock
	V2Footer Footer
}

// Block returns the authoritative header and data block: the version 2+
// block when present, the version 1 block otherwise.
func (d Data) Block() (Header, DataBlock) {
	if d.Version > V1 {
		return d.V2Header, d.V2Data
	}
	return d.V1Header, d.V1Data
}

// Encode writes the given TZif data to the given writer.
// If the version is V1, the V2 fields are not written.
func (d Data) Encode(w io.Writer) error {
	if err := d.V1Header.Write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := d.V1Data.Write(w, 4); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if d.Version > V1 {
		if err := d.V2Header.Write(w); err != nil {
			return fmt.Errorf("write v2 header: %w", err)
		}
		if err := d.V2Data.Write(w, 8); err != nil {
			return fmt.Errorf("write v2 data: %w", err)
		}
		if err := d.V2Footer.Write(w); err != nil {
			return fmt.Errorf("write footer: %w", err)
		}
	}
	return nil
}

// Decode decodes a complete TZif file from buf. It is a pure function of
// its input: buf is never modified and the returned Data owns copies of
// the variable-length arrays.
//
// For version 2+ files the version 1 block is decoded first (it has to be,
// its length is not knowable without reading its header), then the version
// 2+ header and block are decoded with eight-octet timestamps. Block
// returns the authoritative pair.
func Decode(buf []byte) (Data, error) {
	var (
		d   Data
		c   = &cursor{buf: buf}
		err error
	)
	d.V1Header, err = readHeader(c)
	if err != nil {
		return d, fmt.Errorf("read v1 header: %w", err)
	}
	d.Version = d.V1Header.Version

	d.V1Data, err = readDataBlock(c, d.V1Header, 4)
	if err != nil {
		return d, fmt.Errorf("read v1 data block: %w", err)
	}

	if d.Version > V1 {
		d.V2Header, err = readHeader(c)
		if err != nil {
			return d, fmt.Errorf("read v2 header: %w", err)
		}
		d.V2Data, err = readDataBlock(c, d.V2Header, 8)
		if err != nil {
			return d, fmt.Errorf("read v2 data block: %w", err)
		}
		d.V2Footer, err = readFooter(c)
		if err != nil {
			return d, fmt.Errorf("read footer: %w", err)
		}
	}

	return d, nil
}

func readHeader(c *cursor) (Header, error) {
	var h Header
	magic, err := c.take(len(Magic))
	if err != nil {
		return h, err
	}
	if !bytes.Equal(magic, Magic[:]) {
		return h, fmt.Errorf("%w: %v", ErrInvalidMagic, magic)
	}
	v, err := c.u8()
	if err != nil {
		return h, err
	}
	switch Version(v) {
	case V1, V2, V3, V4:
		h.Version = Version(v)
	default:
		return h, fmt.Errorf("%w: %#x", ErrUnsupportedVersion, v)
	}
	reserved, err := c.take(len(h.Reserved))
	if err != nil {
		return h, err
	}
	copy(h.Reserved[:], reserved)

	for _, cnt := range []*uint32{&h.Isutcnt, &h.Isstdcnt, &h.Leapcnt, &h.Timecnt, &h.Typecnt, &h.Charcnt} {
		if *cnt, err = c.u32(); err != nil {
			return h, err
		}
	}
	return h, nil
}

func readDataBlock(c *cursor, h Header, timeSize int) (DataBlock, error) {
	var b DataBlock
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]int64, h.Timecnt)
		for i := range b.TransitionTimes {
			t, err := readTime(c, timeSize)
			if err != nil {
				return b, fmt.Errorf("reading transition times: %w", err)
			}
			b.TransitionTimes[i] = t
		}

		types, err := c.take(int(h.Timecnt))
		if err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		copy(b.TransitionTypes, types)
		for i, idx := range b.TransitionTypes {
			if uint32(idx) >= h.Typecnt {
				return b, fmt.Errorf("%w: transition %d references type %d of %d", ErrInvalidTypeIndex, i, idx, h.Typecnt)
			}
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypes = make([]LocalTimeType, h.Typecnt)
		for i := range b.LocalTimeTypes {
			r, err := readLocalTimeType(c)
			if err != nil {
				return b, fmt.Errorf("reading local time type record: %w", err)
			}
			b.LocalTimeTypes[i] = r
		}
	}
	if h.Charcnt > 0 {
		desig, err := c.take(int(h.Charcnt))
		if err != nil {
			return b, fmt.Errorf("reading time zone designations: %w", err)
		}
		b.Designations = make([]byte, h.Charcnt)
		copy(b.Designations, desig)
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		for i := range b.LeapSecondRecords {
			occur, err := readTime(c, timeSize)
			if err != nil {
				return b, fmt.Errorf("reading leap second record: %w", err)
			}
			corr, err := c.i32()
			if err != nil {
				return b, fmt.Errorf("reading leap second record: %w", err)
			}
			b.LeapSecondRecords[i] = LeapSecondRecord{Occur: occur, Corr: corr}
		}
	}
	var err error
	if b.StandardWallIndicators, err = readIndicators(c, h.Isstdcnt); err != nil {
		return b, fmt.Errorf("reading standard/wall indicators: %w", err)
	}
	if b.UTLocalIndicators, err = readIndicators(c, h.Isutcnt); err != nil {
		return b, fmt.Errorf("reading UT/local indicators: %w", err)
	}
	return b, nil
}

func readTime(c *cursor, timeSize int) (int64, error) {
	if timeSize == 4 {
		v, err := c.i32()
		return int64(v), err
	}
	return c.i64()
}

func readLocalTimeType(c *cursor) (LocalTimeType, error) {
	var r LocalTimeType
	utoff, err := c.i32()
	if err != nil {
		return r, err
	}
	dst, err := c.u8()
	if err != nil {
		return r, err
	}
	idx, err := c.u8()
	if err != nil {
		return r, err
	}
	// Any nonzero DST octet counts as true.
	return LocalTimeType{Utoff: utoff, Dst: dst != 0, Idx: idx}, nil
}

func readIndicators(c *cursor, cnt uint32) ([]bool, error) {
	if cnt == 0 {
		return nil, nil
	}
	raw, err := c.take(int(cnt))
	if err != nil {
		return nil, err
	}
	out := make([]bool, cnt)
	for i, v := range raw {
		out[i] = v != 0
	}
	return out, nil
}

func readFooter(c *cursor) (Footer, error) {
	var f Footer
	nl, err := c.u8()
	if err != nil {
		return f, err
	}
	if nl != asciiNewLine {
		return f, fmt.Errorf("expected newline: %v", nl)
	}
	var b []byte
	for {
		ch, err := c.u8()
		if err != nil {
			return f, fmt.Errorf("reading TZ string: %w", err)
		}
		if ch == asciiNewLine {
			break
		}
		b = append(b, ch)
	}
	f.TZString = b
	return f, nil
}
