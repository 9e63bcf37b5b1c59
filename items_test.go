package scrawl

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modernTestDoc(items ...*Item) *Document {
	return &Document{
		Header: Header{
			DocID:         "test-doc",
			Version:       60,
			PageCount:     1,
			ItemCount:     uint32(len(items)),
			CanvasWidth:   800,
			CanvasHeight:  600,
			ClientVersion: "7.0.0",
			LastModified:  time.Unix(1700000000, 0).UTC(),
		},
		Items: items,
	}
}

func traceItem(id uint16, points ...Point) *Item {
	return &Item{
		Type:    ItemTraceLine,
		Version: 2,
		ID:      id,
		ZOrder:  uint32(id),
		Status:  1,
		ScaleX:  1,
		ScaleY:  1,
		Content: TraceLine{
			LineWidth: 2.5,
			Color:     0xFF0000FF,
			Styles:    []byte{1},
			Points:    points,
		},
	}
}

func TestDecodeItems_CorruptMiddleLength(t *testing.T) {
	doc := modernTestDoc(
		traceItem(1, Point{X: 1, Y: 2}, Point{X: 3, Y: 4}),
		traceItem(2, Point{X: 5, Y: 6}, Point{X: 7, Y: 8}),
		traceItem(3, Point{X: 9, Y: 10}),
	)
	buf, err := EncodeDocument(doc, nil)
	require.NoError(t, err)
	clean, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	require.Len(t, clean.Items, 3)

	// locate the middle record and overwrite its uint32 length field
	// with an out-of-range value. The first byte of the corrupted field
	// still resolves at uint8 width, so resynchronization reaches the
	// third record; the version byte behind it is garbage, so the
	// middle item itself degrades to the placeholder.
	total := clean.Items[0].Length + clean.Items[1].Length + clean.Items[2].Length
	headerSize := len(buf) - total
	start1 := headerSize + clean.Items[0].Length
	length1 := clean.Items[1].Length
	require.Less(t, length1, 256)
	corrupt := make([]byte, len(buf))
	copy(corrupt, buf)
	corrupt[start1+1] = byte(length1)
	corrupt[start1+2] = 0xFF
	corrupt[start1+3] = 0xFF
	corrupt[start1+4] = byte(length1)

	decoded, err := DecodeDocument(corrupt, nil)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 3)
	assert.Equal(t, TraceLine{}, decoded.Items[1].Content)
	assert.Equal(t, ItemTraceLine, decoded.Items[1].Type)
	assert.Equal(t, 1, decoded.Stats.Placeholders)
	// neighbours are untouched
	for _, i := range []int{0, 2} {
		content, ok := decoded.Items[i].Content.(TraceLine)
		require.True(t, ok)
		assert.Equal(t, clean.Items[i].Content, content)
		assert.Equal(t, clean.Items[i].ID, decoded.Items[i].ID)
	}
}

func TestDecodeItems_TruncatedPrefixes(t *testing.T) {
	// any prefix of a valid buffer must terminate, never panic, and
	// never return more items than the header declares
	doc := modernTestDoc(
		traceItem(1, Point{X: 1, Y: 2}),
		traceItem(2, Point{X: 3, Y: 4}),
		traceItem(3, Point{X: 5, Y: 6}),
	)
	buf, err := EncodeDocument(doc, nil)
	require.NoError(t, err)
	for n := 0; n <= len(buf); n++ {
		decoded, err := DecodeDocument(buf[:n], nil)
		if err != nil {
			var fe *FormatError
			assert.ErrorAs(t, err, &fe, "prefix %d", n)
			continue
		}
		assert.LessOrEqual(t, len(decoded.Items), 3, "prefix %d", n)
	}
	// the full buffer and any prefix at or past the item stream's end
	// decode completely
	full, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	assert.Len(t, full.Items, 3)
}

func TestDecodeItems_ZeroLengthRecordForcesProgress(t *testing.T) {
	// a record declaring length zero would never advance the cursor;
	// the loop must force one byte of progress instead of spinning
	w := NewWriter(binary.BigEndian)
	h := Header{DocID: "z", Version: 60, PageCount: 1, ItemCount: 2, CanvasWidth: 10, CanvasHeight: 10}
	writeModernHeader(w, &h, 2)
	w.WriteUint8(uint8(ItemTraceLine))
	w.WriteUint32(0) // declared length 0
	w.WriteBytes(make([]byte, 60))
	decoded, err := DecodeDocument(w.Bytes(), nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(decoded.Items), 2)
	assert.GreaterOrEqual(t, decoded.Stats.ForcedAdvances, 1)
}

func TestDecodeItems_VersionOverBoundBecomesPlaceholder(t *testing.T) {
	doc := modernTestDoc(traceItem(1, Point{X: 1, Y: 2}))
	buf, err := EncodeDocument(doc, nil)
	require.NoError(t, err)
	clean, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	require.Len(t, clean.Items, 1)
	headerSize := len(buf) - clean.Items[0].Length
	corrupt := make([]byte, len(buf))
	copy(corrupt, buf)
	// version byte sits after the tag and the uint32 length field
	corrupt[headerSize+5] = maxItemVersion + 1
	decoded, err := DecodeDocument(corrupt, nil)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, TraceLine{}, decoded.Items[0].Content)
	assert.Equal(t, 1, decoded.Stats.Placeholders)
}

func TestDecodeItems_UnknownTagFallsBackToTraceLine(t *testing.T) {
	item := &Item{
		Type:    ItemType(99),
		Version: 1,
		ID:      7,
		ScaleX:  1,
		ScaleY:  1,
		Content: TraceLine{
			LineWidth: 1,
			Color:     0xFF00FF00,
			Styles:    []byte{3, 1},
			Points:    []Point{{X: 4, Y: 4}},
		},
	}
	buf, err := EncodeDocument(modernTestDoc(item), nil)
	require.NoError(t, err)
	decoded, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, ItemType(99), decoded.Items[0].Type)
	assert.Equal(t, "unknown(99)", decoded.Items[0].Type.String())
	assert.Equal(t, item.Content, decoded.Items[0].Content)
}

func TestDecodeItems_StopsAtDeclaredCount(t *testing.T) {
	// trailing bytes past the declared item count are not interpreted
	// as records
	doc := modernTestDoc(traceItem(1, Point{X: 1, Y: 1}))
	buf, err := EncodeDocument(doc, nil)
	require.NoError(t, err)
	buf = append(buf, make([]byte, 100)...)
	decoded, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	assert.Len(t, decoded.Items, 1)
}

func TestDecodeItems_MonotonicProgress(t *testing.T) {
	doc := modernTestDoc(
		traceItem(1, Point{X: 1, Y: 2}),
		traceItem(2, Point{X: 3, Y: 4}),
	)
	buf, err := EncodeDocument(doc, nil)
	require.NoError(t, err)
	decoded, err := DecodeDocument(buf, nil)
	require.NoError(t, err)
	// each record occupies a strictly positive span
	for _, item := range decoded.Items {
		assert.Greater(t, item.Length, 0)
	}
}

func TestItemType_String(t *testing.T) {
	assert.Equal(t, "traceLine", ItemTraceLine.String())
	assert.Equal(t, "shapeGroup", ItemShapeGroup.String())
	assert.Equal(t, "video", ItemVideo.String())
}
