package sor

import "encoding/binary"

// cursor is a positioned reader over an immutable byte slice. It owns only
// its position; the underlying buffer is borrowed for the lifetime of a
// single Parse call. Every typed read advances pos by the exact field
// width and fails with a Truncated error rather than silently truncating.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte, pos int) *cursor {
	return &cursor{buf: buf, pos: pos}
}

func (c *cursor) seek(pos int) { c.pos = pos }

func (c *cursor) remainingUntil(limit int) int {
	n := limit - c.pos
	if n < 0 {
		return 0
	}
	return n
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return newErr(Truncated, "", "need %d bytes at offset %d, have %d", n, c.pos, len(c.buf)-c.pos)
	}
	return nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readU16LE() (uint16, error) {
	b, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readI16LE() (int16, error) {
	v, err := c.readU16LE()
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

func (c *cursor) readI32LE() (int32, error) {
	v, err := c.readU32LE()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// readCStringLatin1 scans forward from pos to the first 0x00 byte or
// end-of-buffer, decodes the intervening bytes as latin-1 (one byte per
// code point, lossless for arbitrary bytes), and positions the cursor one
// past the terminator (or at end-of-buffer if none was found). The string
// may be empty.
func (c *cursor) readCStringLatin1() (string, error) {
	start := c.pos
	end := start
	for end < len(c.buf) && c.buf[end] != 0x00 {
		end++
	}

	runes := make([]rune, end-start)
	for i, b := range c.buf[start:end] {
		runes[i] = rune(b)
	}

	if end < len(c.buf) {
		c.pos = end + 1 // past the terminator
	} else {
		c.pos = end // end-of-buffer, no terminator
	}
	return string(runes), nil
}
