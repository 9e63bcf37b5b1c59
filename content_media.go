package scrawl

// Text is a positioned text run. The wrap width bounds line breaking;
// zero means no wrapping.
type Text struct {
	Position  Point
	FontSize  float32
	Color     ARGB
	WrapWidth float32
	Text      string
}

func (Text) isItemContent() {}

func textDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	position, err := readPoint(c, rec)
	if err != nil {
		return nil, err
	}
	fontSize, err := c.Float32()
	if err != nil {
		return nil, err
	}
	color, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	wrapWidth, err := c.Float32()
	if err != nil {
		return nil, err
	}
	length, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if int(length) > maxTextBytes {
		return nil, &BoundsError{Op: "textLength", Offset: c.Tell() - 4, Want: int(length), Have: maxTextBytes}
	}
	text, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	return Text{
		Position:  position,
		FontSize:  fontSize,
		Color:     ARGB(color),
		WrapWidth: wrapWidth,
		Text:      string(text),
	}, nil
}

// Pixmap is an embedded or referenced raster image. The payload (and
// modern thumbnail) stays opaque - image decoding and decompression
// belong to the consumer.
type Pixmap struct {
	Position    Point
	Width       float64
	Height      float64
	ImageType   uint8
	StorageType uint8
	Payload     []byte
	Thumbnail   []byte
}

func (Pixmap) isItemContent() {}

func pixmapDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	position, err := readPoint(c, rec)
	if err != nil {
		return nil, err
	}
	width, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	height, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	imageType, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	storageType, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	payload, err := readPayload(c, "pixmapPayload", maxMediaBytes)
	if err != nil {
		return nil, err
	}
	p := Pixmap{
		Position:    position,
		Width:       width,
		Height:      height,
		ImageType:   imageType,
		StorageType: storageType,
		Payload:     payload,
	}
	// modern records may carry a trailing thumbnail
	if rec.Modern && rec.within(c) >= 4 {
		if p.Thumbnail, err = readPayload(c, "pixmapThumbnail", maxMediaBytes); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Media is the shared layout for embedded audio and video records; the
// item's type tag tells them apart. Duration is in milliseconds. The
// payload stays opaque.
type Media struct {
	Position    Point
	Width       float64
	Height      float64
	Duration    uint32
	Filename    string
	FileType    uint8
	StorageType uint8
	Payload     []byte
}

func (Media) isItemContent() {}

func mediaDecoder(c *Cursor, rec *recordInfo) (ItemContent, error) {
	position, err := readPoint(c, rec)
	if err != nil {
		return nil, err
	}
	width, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	height, err := readCoord(c, rec)
	if err != nil {
		return nil, err
	}
	duration, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	nameLen, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if int(nameLen) > maxNameBytes {
		return nil, &BoundsError{Op: "mediaFilename", Offset: c.Tell() - 2, Want: int(nameLen), Have: maxNameBytes}
	}
	filename, err := c.String(int(nameLen))
	if err != nil {
		return nil, err
	}
	fileType, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	storageType, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	payload, err := readPayload(c, "mediaPayload", maxMediaBytes)
	if err != nil {
		return nil, err
	}
	return Media{
		Position:    position,
		Width:       width,
		Height:      height,
		Duration:    duration,
		Filename:    filename,
		FileType:    fileType,
		StorageType: storageType,
		Payload:     payload,
	}, nil
}
