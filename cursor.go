package scrawl

import (
	"encoding/binary"
	"math"
	"strings"
)

// maxFieldBytes is the absolute ceiling for any single length-taking
// read (string or byte block). No field in an observed document comes
// anywhere near it; a declared length above it is corruption, not data.
const maxFieldBytes = 16 << 20

// Cursor is a sequential reader over a fully materialized document
// buffer. All fixed-width reads honour the cursor's byte order
// (observed producers write big-endian). Reads never panic: any read
// past the end of the buffer, and any length-taking read whose length
// is negative or exceeds maxFieldBytes, returns a *BoundsError before
// touching the buffer. Higher-level decoders rely on that single guard
// and are written optimistically.
//
// A Cursor is not safe for concurrent use; decoding two documents
// concurrently with separate cursors is.
type Cursor struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// NewCursor returns a cursor positioned at the start of buf. The buffer
// is not copied and must not be mutated while the cursor is in use.
func NewCursor(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Tell reports the current position.
func (c *Cursor) Tell() int {
	return c.pos
}

// Len reports the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining reports the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// HasMore reports whether any unread bytes remain.
func (c *Cursor) HasMore() bool {
	return c.pos < len(c.buf)
}

// Seek repositions the cursor to an absolute offset, clamped to the
// buffer bounds.
func (c *Cursor) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.buf) {
		pos = len(c.buf)
	}
	c.pos = pos
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need("skip", n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) need(op string, n int) error {
	if n < 0 || n > maxFieldBytes || n > len(c.buf)-c.pos {
		return &BoundsError{Op: op, Offset: c.pos, Want: n, Have: len(c.buf) - c.pos}
	}
	return nil
}

func (c *Cursor) take(op string, n int) ([]byte, error) {
	if err := c.need(op, n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take("uint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Int8() (int8, error) {
	v, err := c.Uint8()
	return int8(v), err
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take("uint16", 2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take("uint32", 4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.take("uint64", 8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

func (c *Cursor) Int64() (int64, error) {
	v, err := c.Uint64()
	return int64(v), err
}

func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *Cursor) Float64() (float64, error) {
	v, err := c.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Bytes reads n raw bytes into a fresh slice, so the result stays valid
// independently of the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.take("bytes", n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// String reads an n-byte fixed-length string, trimming trailing NULs
// (legacy producers pad fixed string fields with zero bytes).
func (c *Cursor) String(n int) (string, error) {
	b, err := c.take("string", n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}
