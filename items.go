package scrawl

import "fmt"

// ItemType is the one-byte discriminant at the start of every item
// record. Content variant selection depends on it alone.
type ItemType uint8

const (
	ItemTraceLine        ItemType = 0
	ItemRectangle        ItemType = 1
	ItemCircle           ItemType = 2
	ItemTriangle         ItemType = 3
	ItemEllipse          ItemType = 4
	ItemSquare           ItemType = 5
	ItemText             ItemType = 6
	ItemPixmap           ItemType = 7
	ItemEraserLine       ItemType = 8
	ItemGroupLink        ItemType = 9
	ItemAudioLegacy      ItemType = 10
	ItemVideoLegacy      ItemType = 11
	ItemPressureLine     ItemType = 12
	ItemTimePressureLine ItemType = 13
	ItemPolyline         ItemType = 14
	ItemMarkPen          ItemType = 15
	ItemChalkLine        ItemType = 16
	ItemCircleArc        ItemType = 17
	ItemShapeGroup       ItemType = 18
	ItemAudio            ItemType = 19
	ItemVideo            ItemType = 20
)

var itemTypeNames = map[ItemType]string{
	ItemTraceLine:        "traceLine",
	ItemRectangle:        "rectangle",
	ItemCircle:           "circle",
	ItemTriangle:         "triangle",
	ItemEllipse:          "ellipse",
	ItemSquare:           "square",
	ItemText:             "text",
	ItemPixmap:           "pixmap",
	ItemEraserLine:       "eraserLine",
	ItemGroupLink:        "groupLink",
	ItemAudioLegacy:      "audioLegacy",
	ItemVideoLegacy:      "videoLegacy",
	ItemPressureLine:     "pressureLine",
	ItemTimePressureLine: "timePressureLine",
	ItemPolyline:         "polyline",
	ItemMarkPen:          "markPen",
	ItemChalkLine:        "chalkLine",
	ItemCircleArc:        "circleArc",
	ItemShapeGroup:       "shapeGroup",
	ItemAudio:            "audio",
	ItemVideo:            "video",
}

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Item is one graphical element from the record stream: the fixed
// attribute block shared by every type, plus the type-specific content
// variant. ID/LegacyID/CreatorID split by layout: modern records carry
// a numeric id, legacy records a 16-byte string id and a creator id.
type Item struct {
	Type      ItemType
	Length    int // declared record length, measured from the type tag
	Version   uint8
	ID        uint16
	LegacyID  string
	CreatorID int64
	ZOrder    uint32
	Status    uint8
	Rotation  float64
	ScaleX    float64
	ScaleY    float64
	Content   ItemContent
}

const (
	// maxItemCount caps the item loop regardless of what the header
	// declares, so adversarial input cannot spin the decoder.
	maxItemCount = 100000
	// maxItemVersion bounds the per-item version byte; a larger value
	// means the length-field width was misjudged.
	maxItemVersion = 100
	// maxItemRecordBytes is the largest declared length the uint32
	// width of the ambiguous length field accepts. The encoder refuses
	// to emit a bigger record, since no decoder could resolve it.
	maxItemRecordBytes = 1000000
)

// decodeItems runs the per-record state machine over the item stream.
// It never fails: any record-local error (bounds, malformed content)
// substitutes an empty trace-line placeholder and resynchronizes to the
// next record via the declared length. The returned slice holds
// whatever could be decoded, never more than the header declares.
func decodeItems(c *Cursor, h *Header, stats *DecodeStats) []*Item {
	// clamp through uint64 so a declared count above MaxInt32 cannot go
	// negative on a 32-bit int
	limit := int(min(uint64(h.ItemCount), maxItemCount))
	items := make([]*Item, 0, min(limit, 64))
	for c.HasMore() && len(items) < limit {
		start := c.Tell()
		item := decodeItem(c, h, start, stats)
		items = append(items, item)
		// resynchronize unconditionally: the content decoder may have
		// stopped short or overrun, but the declared length fixes where
		// the next record starts
		next := start + item.Length
		if next > c.Len() {
			c.Seek(c.Len())
			break
		}
		if next <= start {
			// no forward progress; force one byte so the loop terminates
			// even on adversarial input
			next = start + 1
			stats.ForcedAdvances++
		}
		c.Seek(next)
		stats.Resyncs++
	}
	return items
}

// decodeItem decodes one record. The returned item always carries the
// type tag and resolved length; on any failure its content is the empty
// placeholder and the caller's resynchronization discards whatever was
// left unread.
func decodeItem(c *Cursor, h *Header, start int, stats *DecodeStats) *Item {
	item := &Item{Content: emptyContent()}
	tag, err := c.Uint8()
	if err != nil {
		item.Length = c.Len() - start
		stats.Placeholders++
		return item
	}
	item.Type = ItemType(tag)
	length, _ := readAmbiguousLength(c, itemLengthWidths, start)
	item.Length = length
	if err := decodeItemAttributes(c, h, item); err != nil {
		stats.Placeholders++
		return item
	}
	end := start + length
	if end > c.Len() || length <= 0 {
		end = c.Len()
	}
	content, err := decodeItemContent(c, item.Type, &recordInfo{Modern: h.Modern(), Version: item.Version, End: end})
	if err != nil {
		stats.Placeholders++
		return item
	}
	item.Content = content
	return item
}

func decodeItemAttributes(c *Cursor, h *Header, item *Item) error {
	ver, err := c.Uint8()
	if err != nil {
		return err
	}
	if ver > maxItemVersion {
		// an implausible version byte means the length-field width was
		// misjudged; the record is unsalvageable
		return &BoundsError{Op: "itemVersion", Offset: c.Tell() - 1, Want: int(ver), Have: maxItemVersion}
	}
	item.Version = ver
	if h.Modern() {
		if item.ID, err = c.Uint16(); err != nil {
			return err
		}
		if item.ZOrder, err = c.Uint32(); err != nil {
			return err
		}
		if item.Status, err = c.Uint8(); err != nil {
			return err
		}
		rot, err := c.Float32()
		if err != nil {
			return err
		}
		sx, err := c.Float32()
		if err != nil {
			return err
		}
		sy, err := c.Float32()
		if err != nil {
			return err
		}
		item.Rotation, item.ScaleX, item.ScaleY = float64(rot), float64(sx), float64(sy)
		return nil
	}
	if item.LegacyID, err = c.String(16); err != nil {
		return err
	}
	if item.CreatorID, err = c.Int64(); err != nil {
		return err
	}
	if item.ZOrder, err = c.Uint32(); err != nil {
		return err
	}
	if item.Status, err = c.Uint8(); err != nil {
		return err
	}
	if item.Rotation, err = c.Float64(); err != nil {
		return err
	}
	if item.ScaleX, err = c.Float64(); err != nil {
		return err
	}
	if item.ScaleY, err = c.Float64(); err != nil {
		return err
	}
	return nil
}
