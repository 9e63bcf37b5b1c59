package scrawl

// Observed producer versions are inconsistent about the byte width of
// two length fields: the header's client-version string length and each
// item record's data length. The width is not knowable from the format
// version alone, so it is resolved by bounded trial parsing: attempt
// the widest plausible width first and accept the first value that
// passes its sanity ceiling and fits the buffer, fully rolling the
// cursor back between attempts. This is a ranked fallback, not a
// grammar - a narrow value can in principle masquerade as the prefix of
// a wide one, but the ceilings make that vanishingly unlikely on real
// documents.

type lengthWidth struct {
	bytes   int // field width to attempt: 4, 2 or 1
	ceiling int // largest believable value at that width
}

// Ranked width tables for the two ambiguous call sites.
var (
	clientVersionWidths = []lengthWidth{
		{bytes: 4, ceiling: maxClientVersionLength},
		{bytes: 2, ceiling: maxClientVersionLength},
		{bytes: 1, ceiling: 255},
	}
	itemLengthWidths = []lengthWidth{
		{bytes: 4, ceiling: maxItemRecordBytes},
		{bytes: 2, ceiling: 100000},
		{bytes: 1, ceiling: 10000},
	}
)

// readAmbiguousLength resolves one ambiguous length field at the
// current cursor position. from is the offset the resolved value is
// measured against when checking that it fits the buffer; pass a
// negative from for values measured from just after the length field
// itself (string lengths), or a record's start offset for item data
// lengths. Returns the resolved value and the width consumed; if no
// width produces a plausible value the cursor is left at the field
// start, nothing is consumed, and the remaining length (from the
// measuring base) is returned with width 0.
func readAmbiguousLength(c *Cursor, widths []lengthWidth, from int) (value int, width int) {
	start := c.Tell()
	for _, w := range widths {
		var v int
		var err error
		switch w.bytes {
		case 4:
			var u uint32
			u, err = c.Uint32()
			v = int(int32(u))
		case 2:
			var u uint16
			u, err = c.Uint16()
			v = int(u)
		default:
			var u uint8
			u, err = c.Uint8()
			v = int(u)
		}
		if err != nil {
			c.Seek(start)
			continue
		}
		limit := c.Remaining()
		if from >= 0 {
			limit = c.Len() - from
		}
		if v >= 0 && v <= w.ceiling && v <= limit {
			return v, w.bytes
		}
		// implausible at this width - roll back and try narrower...
		c.Seek(start)
	}
	// no width fits; consume nothing and treat everything left as the length
	c.Seek(start)
	if from >= 0 {
		return c.Len() - from, 0
	}
	return c.Remaining(), 0
}
