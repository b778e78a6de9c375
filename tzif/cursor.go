package tzif

import "fmt"

// cursor is a bounds-checked sequential reader over a complete TZif
// buffer. Every read checks the remaining length first and reports
// ErrTruncated with the offending offset, so a header that declares more
// data than the buffer holds fails instead of reading out of bounds.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) need(n int) error {
	if len(c.buf)-c.off < n {
		return fmt.Errorf("%w: need %d octets at offset %d, %d left", ErrTruncated, n, c.off, len(c.buf)-c.off)
	}
	return nil
}

// take returns the next n octets without copying. The returned slice
// aliases the input buffer.
func (c *cursor) take(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) i64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return int64(order.Uint64(b)), nil
}
