package scrawl

// Shape is the shared layout for the five geometric primitives
// (rectangle, circle, triangle, ellipse, square). Points are the
// shape's control points - e.g. two corners for a rectangle, centre
// plus edge for a circle; their interpretation is the renderer's
// business.
type Shape struct {
	LineWidth float32
	LineColor ARGB
	FillColor ARGB
	Styles    []byte
	Points    []Point
}

func (Shape) isItemContent() {}

func shapeDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
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
	return Shape{
		LineWidth: width,
		LineColor: ARGB(lineColor),
		FillColor: ARGB(fillColor),
		Styles:    styles,
		Points:    points,
	}, nil
}

// CircleArc is an arc of a circle, with explicit sweep direction and
// per-end cap flags.
type CircleArc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
	StartCap   uint8
	EndCap     uint8
	Styles     []byte
}

func (CircleArc) isItemContent() {}

func circleArcDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	center, err := readPoint(c, rec)
	if err != nil {
		return nil, err
	}
	radius, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	startAngle, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	endAngle, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	clockwise, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	startCap, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	endCap, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	styles, err := readStyles(c)
	if err != nil {
		return nil, err
	}
	return CircleArc{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  clockwise != 0,
		StartCap:   startCap,
		EndCap:     endCap,
		Styles:     styles,
	}, nil
}

// ActionPoint is a named handle on a shape group (resize grips,
// connector anchors).
type ActionPoint struct {
	Name string
	X    float64
	Y    float64
}

// ShapeGroup groups child items under a shared transform. Children are
// back-references by item id, not ownership: the referenced items
// appear in the document's own item stream.
type ShapeGroup struct {
	Left         float64
	Top          float64
	Right        float64
	Bottom       float64
	Rotation     float64
	LineWidth    float32
	LineColor    ARGB
	FillColor    ARGB
	Filled       bool
	ActionPoints []ActionPoint
	Children     []uint16
}

func (ShapeGroup) isItemContent() {}

func shapeGroupDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	var g ShapeGroup
	var err error
	if g.Left, err = readCoord(c, rec); err != nil {
		return nil, err
	}
	if g.Top, err = readCoord(c, rec); err != nil {
		return nil, err
	}
	if g.Right, err = readCoord(c, rec); err != nil {
		return nil, err
	}
	if g.Bottom, err = readCoord(c, rec); err != nil {
		return nil, err
	}
	if g.Rotation, err = readCoord(c, rec); err != nil {
		return nil, err
	}
	if g.LineWidth, err = c.Float32(); err != nil {
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
	g.LineColor, g.FillColor = ARGB(lineColor), ARGB(fillColor)
	filled, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	g.Filled = filled != 0
	actionCount, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if int(actionCount) > maxActionPoints {
		return nil, &BoundsError{Op: "actionPointCount", Offset: c.Tell() - 2, Want: int(actionCount), Have: maxActionPoints}
	}
	g.ActionPoints = make([]ActionPoint, actionCount)
	for i := range g.ActionPoints {
		nameLen, err := c.Uint16()
		if err != nil {
			return nil, err
		}
		if int(nameLen) > maxNameBytes {
			return nil, &BoundsError{Op: "actionPointName", Offset: c.Tell() - 2, Want: int(nameLen), Have: maxNameBytes}
		}
		name, err := c.String(int(nameLen))
		if err != nil {
			return nil, err
		}
		x, err := readCoord(c, rec)
		if err != nil {
			return nil, err
		}
		y, err := readCoord(c, rec)
		if err != nil {
			return nil, err
		}
		g.ActionPoints[i] = ActionPoint{Name: name, X: x, Y: y}
	}
	childCount, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if int(childCount) > maxChildItems {
		return nil, &BoundsError{Op: "childItemCount", Offset: c.Tell() - 4, Want: int(childCount), Have: maxChildItems}
	}
	g.Children = make([]uint16, childCount)
	for i := range g.Children {
		if g.Children[i], err = c.Uint16(); err != nil {
			return nil, err
		}
	}
	return g, nil
}
