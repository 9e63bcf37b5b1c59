package scrawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestARGB_Channels(t *testing.T) {
	c := ARGB(0x80FF8040)
	assert.Equal(t, uint8(0x80), c.Alpha())
	assert.Equal(t, uint8(0xFF), c.Red())
	assert.Equal(t, uint8(0x80), c.Green())
	assert.Equal(t, uint8(0x40), c.Blue())
	assert.Equal(t, "#80FF8040", c.String())
}

func TestARGB_RGBA(t *testing.T) {
	r, g, b, a := ARGB(0xFFFF0000).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xFFFF), a)

	// fully transparent premultiplies to zero
	r, g, b, a = ARGB(0x00FFFFFF).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0), a)
}
