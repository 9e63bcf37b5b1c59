package scrawl

// TraceLine is a freeform stroke, the most common record by far. It is
// also the fallback layout for unrecognized type tags. Modern producers
// append a PragmaData block when the stroke carries per-pen tuning.
type TraceLine struct {
	LineWidth float32
	Color     ARGB
	Styles    []byte
	Points    []Point
	Pragma    *PragmaData
}

func (TraceLine) isItemContent() {}

// PragmaData is the per-stroke tuning block trailing modern freeform
// strokes: how pressure maps to width, which bezier smoothing revision
// produced the points, and the pen model.
type PragmaData struct {
	PressureCurve float32
	BezierVersion uint8
	PenType       uint8
	WidthScale    float32
	SpeedScale    float32
}

// pragmaDataSize is the encoded size of PragmaData.
const pragmaDataSize = 14

func traceLineDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	width, err := c.Float32()
	if err != nil {
		return nil, err
	}
	color, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	points, err := readPoints(c, rec)
	if err != nil {
		return nil, err
	}
	line := TraceLine{LineWidth: width, Color: ARGB(color), Styles: styles, Points: points}
	if rec.Modern && rec.within(c) >= pragmaDataSize {
		pragma, err := decodePragmaData(c)
		if err != nil {
			return nil, err
		}
		line.Pragma = pragma
	}
	return line, nil
}

func decodePragmaData(c *Cursor) (*PragmaData, error) {
	var p PragmaData
	var err error
	if p.PressureCurve, err = c.Float32(); err != nil {
		return nil, err
	}
	if p.BezierVersion, err = c.Uint8(); err != nil {
		return nil, err
	}
	if p.PenType, err = c.Uint8(); err != nil {
		return nil, err
	}
	if p.WidthScale, err = c.Float32(); err != nil {
		return nil, err
	}
	if p.SpeedScale, err = c.Float32(); err != nil {
		return nil, err
	}
	return &p, nil
}

// PressureLine is a freeform stroke whose points carry pen pressure.
type PressureLine struct {
	LineWidth float32
	Color     ARGB
	Styles    []byte
	Points    []PressurePoint
}

func (PressureLine) isItemContent() {}

func pressureLineDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	width, err := c.Float32()
	if err != nil {
		return nil, err
	}
	color, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	count, err := readPointCount(c)
	if err != nil {
		return nil, err
	}
	points := make([]PressurePoint, count)
	for i := range points {
		p, err := readPoint(c, rec)
		if err != nil {
			return nil, err
		}
		pressure, err := c.Float32()
		if err != nil {
			return nil, err
		}
		points[i] = PressurePoint{X: p.X, Y: p.Y, Pressure: float64(pressure)}
	}
	return PressureLine{LineWidth: width, Color: ARGB(color), Styles: styles, Points: points}, nil
}

// TimePressureLine is a PressureLine whose points also carry capture
// timestamps, used for stroke replay.
type TimePressureLine struct {
	LineWidth float32
	Color     ARGB
	Styles    []byte
	Points    []TimePressurePoint
}

func (TimePressureLine) isItemContent() {}

func timePressureLineDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	width, err := c.Float32()
	if err != nil {
		return nil, err
	}
	color, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	count, err := readPointCount(c)
	if err != nil {
		return nil, err
	}
	points := make([]TimePressurePoint, count)
	for i := range points {
		p, err := readPoint(c, rec)
		if err != nil {
			return nil, err
		}
		pressure, err := c.Float32()
		if err != nil {
			return nil, err
		}
		ts, err := c.Int64()
		if err != nil {
			return nil, err
		}
		points[i] = TimePressurePoint{X: p.X, Y: p.Y, Pressure: float64(pressure), Timestamp: ts}
	}
	return TimePressureLine{LineWidth: width, Color: ARGB(color), Styles: styles, Points: points}, nil
}

// PenLine is the shared layout for mark-pen and chalk-line strokes; the
// item's type tag tells them apart.
type PenLine struct {
	LineWidth float32
	Color     ARGB
	Styles    []byte
	Points    []Point
}

func (PenLine) isItemContent() {}

func penLineDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	width, err := c.Float32()
	if err != nil {
		return nil, err
	}
	color, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	points, err := readPoints(c, rec)
	if err != nil {
		return nil, err
	}
	return PenLine{LineWidth: width, Color: ARGB(color), Styles: styles, Points: points}, nil
}

// Polyline is a closed or open multi-segment line with an independent
// fill colour and a visibility flag.
type Polyline struct {
	LineWidth float32
	LineColor ARGB
	FillColor ARGB
	Styles    []byte
	Points    []Point
	Visible   bool
}

func (Polyline) isItemContent() {}

func polylineDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	width, err := c.Float32()
	if err != nil {
		return nil, err
	}
	lineColor, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	fillColor, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	points, err := readPoints(c, rec)
	if err != nil {
		return nil, err
	}
	visible, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	return Polyline{
		LineWidth: width,
		LineColor: ARGB(lineColor),
		FillColor: ARGB(fillColor),
		Styles:    styles,
		Points:    points,
		Visible:   visible != 0,
	}, nil
}
