package scrawl

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModernHeader(w *Writer, h *Header, itemCount int) {
	w.WriteUint32(uint32(len(h.DocID)))
	w.WriteString(h.DocID)
	w.WriteUint16(h.Version)
	if h.Zipped {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	w.WriteUint16(h.PageCount)
	w.WriteUint32(uint32(itemCount))
	w.WriteFloat32(float32(h.CanvasHeight))
	w.WriteFloat32(float32(h.CanvasWidth))
	w.WriteUint8(h.ClientType)
	w.WriteUint32(uint32(len(h.ClientVersion)))
	w.WriteString(h.ClientVersion)
	w.WriteInt64(h.LastModified.Unix())
	w.WriteUint32(uint32(h.BackgroundColor))
}

func TestDecodeHeader_Modern(t *testing.T) {
	in := Header{
		DocID:           "b7f3aa10",
		Version:         55,
		Zipped:          false,
		PageCount:       2,
		ItemCount:       7,
		CanvasWidth:     1920,
		CanvasHeight:    1080,
		ClientType:      3,
		ClientVersion:   "6.2.1",
		LastModified:    time.Unix(1714000000, 0).UTC(),
		BackgroundColor: 0xFF20242B,
	}
	w := NewWriter(binary.BigEndian)
	writeModernHeader(w, &in, int(in.ItemCount))
	h, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
	require.NoError(t, err)
	assert.True(t, h.Modern())
	assert.Equal(t, in, h)
}

func TestDecodeHeader_Legacy(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	w.WriteUint32(5)
	w.WriteString("doc01")
	w.WriteUint16(49)
	w.WriteUint16(1)       // pageCount
	w.WriteUint32(3)       // itemCount
	w.WriteFloat64(768)    // canvasHeight
	w.WriteFloat64(1024)   // canvasWidth
	w.WriteUint32(2)       // resourceCount
	w.WriteUint8(1)        // clientType
	w.WriteUint32(3)       // clientVersionLength
	w.WriteString("4.0")
	w.WriteInt64(1500000000)
	w.WriteUint32(0) // no skin block

	h, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
	require.NoError(t, err)
	assert.False(t, h.Modern())
	assert.Equal(t, "doc01", h.DocID)
	assert.Equal(t, uint16(49), h.Version)
	assert.Equal(t, uint16(1), h.PageCount)
	assert.Equal(t, uint32(3), h.ItemCount)
	assert.Equal(t, float64(1024), h.CanvasWidth)
	assert.Equal(t, float64(768), h.CanvasHeight)
	assert.Equal(t, uint32(2), h.ResourceCount)
	assert.Equal(t, "4.0", h.ClientVersion)
	assert.Equal(t, time.Unix(1500000000, 0).UTC(), h.LastModified)
	assert.Nil(t, h.Skin)
}

func TestDecodeHeader_LegacySkinImage(t *testing.T) {
	skinData := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	w := NewWriter(binary.BigEndian)
	w.WriteUint32(2)
	w.WriteString("bg")
	w.WriteUint16(30)
	w.WriteUint16(1)
	w.WriteUint32(0)
	w.WriteFloat64(600)
	w.WriteFloat64(800)
	w.WriteUint32(0)
	w.WriteUint8(0)
	w.WriteUint32(0) // empty client version
	w.WriteInt64(0)
	w.WriteUint32(uint32(48 + len(skinData))) // skinDataLength > 0
	w.WriteUint16(2)                          // skin version
	w.WriteFloat64(10)                        // x
	w.WriteFloat64(20)                        // y
	w.WriteFloat64(400)                       // width
	w.WriteFloat64(300)                       // height
	w.WriteUint8(1)                           // imageType
	w.WriteUint8(0)                           // storageType
	w.WriteFloat64(90)                        // rotation
	w.WriteUint32(uint32(len(skinData)))
	w.WriteBytes(skinData)

	h, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
	require.NoError(t, err)
	require.NotNil(t, h.Skin)
	assert.Equal(t, uint16(2), h.Skin.Version)
	assert.Equal(t, float64(10), h.Skin.X)
	assert.Equal(t, float64(20), h.Skin.Y)
	assert.Equal(t, float64(400), h.Skin.Width)
	assert.Equal(t, float64(300), h.Skin.Height)
	assert.Equal(t, uint8(1), h.Skin.ImageType)
	assert.Equal(t, float64(90), h.Skin.Rotation)
	assert.Equal(t, skinData, h.Skin.Data)
}

func TestDecodeHeader_AmbiguousClientVersionWidths(t *testing.T) {
	// some producers write the client version length as uint16 or uint8;
	// the decoder must resolve each without being told
	writeNarrow := func(width int) []byte {
		w := NewWriter(binary.BigEndian)
		w.WriteUint32(1)
		w.WriteString("x")
		w.WriteUint16(60)
		w.WriteUint8(0)
		w.WriteUint16(1)
		w.WriteUint32(0)
		w.WriteFloat32(100)
		w.WriteFloat32(100)
		w.WriteUint8(0)
		switch width {
		case 2:
			w.WriteUint16(5)
		case 1:
			w.WriteUint8(5)
		}
		w.WriteString("9.9.9")
		w.WriteInt64(0)
		w.WriteUint32(0)
		return w.Bytes()
	}
	for _, width := range []int{2, 1} {
		h, err := decodeHeader(NewCursor(writeNarrow(width), binary.BigEndian))
		require.NoError(t, err)
		assert.Equal(t, "9.9.9", h.ClientVersion)
	}
}

func TestDecodeHeader_Errors(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		_, err := decodeHeader(NewCursor(nil, binary.BigEndian))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "idLength", fe.Field)
	})
	t.Run("id length over ceiling", func(t *testing.T) {
		w := NewWriter(binary.BigEndian)
		w.WriteUint32(maxIDLength + 1)
		_, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "idLength", fe.Field)
	})
	t.Run("truncated mid header", func(t *testing.T) {
		w := NewWriter(binary.BigEndian)
		w.WriteUint32(4)
		w.WriteString("trnc")
		w.WriteUint16(60)
		w.WriteUint8(0)
		w.WriteUint16(1)
		// itemCount and everything after it missing
		_, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		var be *BoundsError
		assert.ErrorAs(t, err, &be)
	})
	t.Run("skin data length over ceiling", func(t *testing.T) {
		w := NewWriter(binary.BigEndian)
		w.WriteUint32(1)
		w.WriteString("s")
		w.WriteUint16(10)
		w.WriteUint16(1)
		w.WriteUint32(0)
		w.WriteFloat64(10)
		w.WriteFloat64(10)
		w.WriteUint32(0)
		w.WriteUint8(0)
		w.WriteUint32(0)
		w.WriteInt64(0)
		w.WriteUint32(maxSkinDataLength + 1)
		_, err := decodeHeader(NewCursor(w.Bytes(), binary.BigEndian))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "skinDataLength", fe.Field)
	})
}
