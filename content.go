package scrawl

// ItemContent is the content union: one variant per type tag, selected
// solely by the tag. Unrecognized tags decode via the trace-line
// decoder (observed producer behaviour - several producers emit new
// stroke-like tags with the trace-line layout).
type ItemContent interface {
	isItemContent()
}

// recordInfo carries the per-record facts a content decoder needs
// beyond the cursor: which layout branch is in effect, the item's own
// version byte, and where the declared record ends (for optional
// trailing fields like PragmaData and pixmap thumbnails).
type recordInfo struct {
	Modern  bool
	Version uint8
	End     int
}

// within reports how many declared record bytes are left unread.
func (r *recordInfo) within(c *Cursor) int {
	n := r.End - c.Tell()
	if rem := c.Remaining(); n > rem {
		n = rem
	}
	return n
}

type contentDecoder func(c *Cursor, rec *recordInfo) (ItemContent, error)

var contentDecoders map[ItemType]contentDecoder

func init() {
	contentDecoders = map[ItemType]contentDecoder{
		ItemTraceLine:        traceLineDecoder,
		ItemRectangle:        shapeDecoder,
		ItemCircle:           shapeDecoder,
		ItemTriangle:         shapeDecoder,
		ItemEllipse:          shapeDecoder,
		ItemSquare:           shapeDecoder,
		ItemText:             textDecoder,
		ItemPixmap:           pixmapDecoder,
		ItemEraserLine:       emptyDecoder,
		ItemGroupLink:        emptyDecoder,
		ItemAudioLegacy:      emptyDecoder,
		ItemVideoLegacy:      emptyDecoder,
		ItemPressureLine:     pressureLineDecoder,
		ItemTimePressureLine: timePressureLineDecoder,
		ItemPolyline:         polylineDecoder,
		ItemMarkPen:          penLineDecoder,
		ItemChalkLine:        penLineDecoder,
		ItemCircleArc:        circleArcDecoder,
		ItemShapeGroup:       shapeGroupDecoder,
		ItemAudio:            mediaDecoder,
		ItemVideo:            mediaDecoder,
	}
}

func decodeItemContent(c *Cursor, tag ItemType, rec *recordInfo) (ItemContent, error) {
	decoder, ok := contentDecoders[tag]
	if !ok {
		decoder = traceLineDecoder
	}
	return decoder(c, rec)
}

// Empty is the content of the intentionally payload-free tags: eraser
// lines, legacy group links and legacy audio/video markers carry all
// their information in the attribute block.
type Empty struct{}

func (Empty) isItemContent() {}

// emptyContent is the substitute for a record whose content failed to
// decode: an empty trace line, matching what producers emit for a
// stroke with no samples.
func emptyContent() ItemContent {
	return TraceLine{}
}

func emptyDecoder(_ *Cursor, _ *recordInfo) (ItemContent, error) {
	return Empty{}, nil
}

// Point is a 2D coordinate. The wire width depends on the layout
// branch: float32 modern, float64 legacy.
type Point struct {
	X float64
	Y float64
}

// PressurePoint extends Point with a pen pressure sample.
type PressurePoint struct {
	X        float64
	Y        float64
	Pressure float64
}

// TimePressurePoint extends PressurePoint with a capture timestamp in
// milliseconds.
type TimePressurePoint struct {
	X         float64
	Y         float64
	Pressure  float64
	Timestamp int64
}

const (
	maxStyleCount = 1000
	maxPointCount = 100000
	maxTextBytes  = 100000
	maxNameBytes  = 1000
	// a media payload cannot exceed what its record can declare
	maxMediaBytes   = maxItemRecordBytes
	maxActionPoints = 1000
	maxChildItems   = 10000
)

// readCoord reads one coordinate at the branch-appropriate width.
func readCoord(c *Cursor, rec *recordInfo) (float64, error) {
	if rec.Modern {
		v, err := c.Float32()
		return float64(v), err
	}
	return c.Float64()
}

func readPoint(c *Cursor, rec *recordInfo) (Point, error) {
	x, err := readCoord(c, rec)
	if err != nil {
		return Point{}, err
	}
	y, err := readCoord(c, rec)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// readStyles reads the count-prefixed style byte list common to every
// stroke and shape variant.
func readStyles(c *Cursor) ([]byte, error) {
	count, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if int(count) > maxStyleCount {
		return nil, &BoundsError{Op: "styleCount", Offset: c.Tell() - 2, Want: int(count), Have: maxStyleCount}
	}
	return c.Bytes(int(count))
}

func readPointCount(c *Cursor) (int, error) {
	count, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	if int(count) > maxPointCount {
		return 0, &BoundsError{Op: "pointCount", Offset: c.Tell() - 4, Want: int(count), Have: maxPointCount}
	}
	return int(count), nil
}

func readPoints(c *Cursor, rec *recordInfo) ([]Point, error) {
	count, err := readPointCount(c)
	if err != nil {
		return nil, err
	}
	points := make([]Point, count)
	for i := range points {
		if points[i], err = readPoint(c, rec); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// readPayload reads a uint32-length-prefixed opaque byte block, bounded
// by ceiling before any allocation.
func readPayload(c *Cursor, op string, ceiling int) ([]byte, error) {
	length, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if int(length) > ceiling {
		return nil, &BoundsError{Op: op, Offset: c.Tell() - 4, Want: int(length), Have: ceiling}
	}
	return c.Bytes(int(length))
}
