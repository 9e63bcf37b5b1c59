package scrawl

import (
	"fmt"
	"image/color"
)

// ARGB is a packed 32-bit colour as stored by the document format:
// alpha in the top byte, then red, green, blue.
type ARGB uint32

func (c ARGB) Alpha() uint8 { return uint8(c >> 24) }
func (c ARGB) Red() uint8   { return uint8(c >> 16) }
func (c ARGB) Green() uint8 { return uint8(c >> 8) }
func (c ARGB) Blue() uint8  { return uint8(c) }

// RGBA implements image/color.Color, with the document's straight alpha
// converted to the premultiplied form the stdlib expects.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	a = uint32(c.Alpha())
	r = uint32(c.Red()) * a * 0x101 / 0xFF
	g = uint32(c.Green()) * a * 0x101 / 0xFF
	b = uint32(c.Blue()) * a * 0x101 / 0xFF
	a *= 0x101
	return r, g, b, a
}

func (c ARGB) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

var _ color.Color = ARGB(0)
