package scrawl

import (
	"encoding/binary"
	"math"
)

// Writer is the dual of Cursor: a growable buffer with an offset
// cursor, used by the companion encoder and by tests to construct
// document buffers. Seek allows patching earlier fields (e.g. a length
// prefix whose value is only known after the body is written); Bytes
// trims to the high-water mark of everything written.
type Writer struct {
	buf   []byte
	pos   int
	end   int
	order binary.ByteOrder
}

func NewWriter(order binary.ByteOrder) *Writer {
	return &Writer{buf: make([]byte, 64), order: order}
}

// Tell reports the current write position.
func (w *Writer) Tell() int {
	return w.pos
}

// Seek repositions the write cursor. Seeking past the written length
// zero-fills the gap on the next write.
func (w *Writer) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	w.pos = pos
}

// Bytes returns the written buffer, trimmed to the written length.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.end]
}

func (w *Writer) grow(n int) []byte {
	need := w.pos + n
	if need > len(w.buf) {
		size := len(w.buf) * 2
		for size < need {
			size *= 2
		}
		next := make([]byte, size)
		copy(next, w.buf[:w.end])
		w.buf = next
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	if w.pos > w.end {
		w.end = w.pos
	}
	return b
}

func (w *Writer) WriteUint8(v uint8) {
	w.grow(1)[0] = v
}

func (w *Writer) WriteUint16(v uint16) {
	w.order.PutUint16(w.grow(2), v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.order.PutUint32(w.grow(4), v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.order.PutUint64(w.grow(8), v)
}

func (w *Writer) WriteInt8(v int8)   { w.WriteUint8(uint8(v)) }
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

func (w *Writer) WriteBytes(b []byte) {
	copy(w.grow(len(b)), b)
}

// WriteString writes the raw bytes of s with no length prefix.
func (w *Writer) WriteString(s string) {
	copy(w.grow(len(s)), s)
}

// WriteFixedString writes s into an n-byte field, NUL-padded (or
// truncated) to exactly n bytes. Legacy item ids are stored this way.
func (w *Writer) WriteFixedString(s string, n int) {
	b := w.grow(n)
	for i := range b {
		b[i] = 0
	}
	copy(b, s)
}
