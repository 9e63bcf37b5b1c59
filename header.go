package scrawl

import (
	"time"
)

// modernVersion is the format version at which producers switched to
// the compact layout: float32 coordinates, uint16 item ids, a zipped
// body flag and no trailing resource table.
const modernVersion = 50

const (
	maxIDLength            = 1000
	maxClientVersionLength = 1000
	maxSkinDataLength      = 8 << 20
)

// Header is the fixed document header. Modern-only and legacy-only
// fields are zero-valued on the other branch (Zipped and
// BackgroundColor are modern; ResourceCount and Skin are legacy).
type Header struct {
	DocID           string
	Version         uint16
	Zipped          bool
	PageCount       uint16
	ItemCount       uint32
	CanvasWidth     float64
	CanvasHeight    float64
	ResourceCount   uint32
	ClientType      uint8
	ClientVersion   string
	LastModified    time.Time
	BackgroundColor ARGB
	Skin            *SkinImage
}

// Modern reports whether the header selects the modern layout for the
// rest of the document (item attribute blocks, coordinate widths).
func (h *Header) Modern() bool {
	return h.Version >= modernVersion
}

// SkinImage is the optional background skin block embedded in legacy
// headers. The image payload is kept as opaque bytes; decoding it is
// the consumer's business.
type SkinImage struct {
	Version     uint16
	X           float64
	Y           float64
	Width       float64
	Height      float64
	ImageType   uint8
	StorageType uint8
	Rotation    float64
	Data        []byte
}

// decodeHeader decodes the fixed document header. Unlike everything
// downstream, a header failure is fatal: every field here gates a
// layout decision for the item stream, so a partially trusted header
// would corrupt the whole decode. All errors returned are *FormatError.
func decodeHeader(c *Cursor) (Header, error) {
	var h Header
	idLen, err := c.Uint32()
	if err != nil {
		return h, &FormatError{Field: "idLength", Err: err}
	}
	if idLen > maxIDLength {
		return h, formatErrf("idLength", "%d exceeds maximum %d", idLen, maxIDLength)
	}
	if h.DocID, err = c.String(int(idLen)); err != nil {
		return h, &FormatError{Field: "docId", Err: err}
	}
	if h.Version, err = c.Uint16(); err != nil {
		return h, &FormatError{Field: "version", Err: err}
	}
	if h.Modern() {
		err = decodeModernHeader(c, &h)
	} else {
		err = decodeLegacyHeader(c, &h)
	}
	return h, err
}

func decodeModernHeader(c *Cursor, h *Header) error {
	zipped, err := c.Uint8()
	if err != nil {
		return &FormatError{Field: "zipped", Err: err}
	}
	h.Zipped = zipped != 0
	if h.PageCount, err = c.Uint16(); err != nil {
		return &FormatError{Field: "pageCount", Err: err}
	}
	if h.ItemCount, err = c.Uint32(); err != nil {
		return &FormatError{Field: "itemCount", Err: err}
	}
	height, err := c.Float32()
	if err != nil {
		return &FormatError{Field: "canvasHeight", Err: err}
	}
	width, err := c.Float32()
	if err != nil {
		return &FormatError{Field: "canvasWidth", Err: err}
	}
	h.CanvasHeight, h.CanvasWidth = float64(height), float64(width)
	if h.ClientType, err = c.Uint8(); err != nil {
		return &FormatError{Field: "clientType", Err: err}
	}
	if err = decodeClientVersion(c, h); err != nil {
		return err
	}
	modified, err := c.Int64()
	if err != nil {
		return &FormatError{Field: "lastModifyTime", Err: err}
	}
	h.LastModified = time.Unix(modified, 0).UTC()
	background, err := c.Uint32()
	if err != nil {
		return &FormatError{Field: "backgroundColor", Err: err}
	}
	h.BackgroundColor = ARGB(background)
	return nil
}

func decodeLegacyHeader(c *Cursor, h *Header) error {
	var err error
	if h.PageCount, err = c.Uint16(); err != nil {
		return &FormatError{Field: "pageCount", Err: err}
	}
	if h.ItemCount, err = c.Uint32(); err != nil {
		return &FormatError{Field: "itemCount", Err: err}
	}
	if h.CanvasHeight, err = c.Float64(); err != nil {
		return &FormatError{Field: "canvasHeight", Err: err}
	}
	if h.CanvasWidth, err = c.Float64(); err != nil {
		return &FormatError{Field: "canvasWidth", Err: err}
	}
	if h.ResourceCount, err = c.Uint32(); err != nil {
		return &FormatError{Field: "resourceCount", Err: err}
	}
	if h.ClientType, err = c.Uint8(); err != nil {
		return &FormatError{Field: "clientType", Err: err}
	}
	if err = decodeClientVersion(c, h); err != nil {
		return err
	}
	modified, err := c.Int64()
	if err != nil {
		return &FormatError{Field: "lastModifyTime", Err: err}
	}
	h.LastModified = time.Unix(modified, 0).UTC()
	// legacy headers may end right here, before any skin block
	if !c.HasMore() {
		return nil
	}
	skinLen, err := c.Uint32()
	if err != nil {
		return &FormatError{Field: "skinDataLength", Err: err}
	}
	if skinLen > maxSkinDataLength {
		return formatErrf("skinDataLength", "%d exceeds maximum %d", skinLen, maxSkinDataLength)
	}
	if skinLen == 0 {
		return nil
	}
	skin, err := decodeSkinImage(c)
	if err != nil {
		return &FormatError{Field: "skinImage", Err: err}
	}
	h.Skin = skin
	return nil
}

func decodeClientVersion(c *Cursor, h *Header) error {
	length, _ := readAmbiguousLength(c, clientVersionWidths, -1)
	if length > maxClientVersionLength {
		return formatErrf("clientVersionLength", "%d exceeds maximum %d", length, maxClientVersionLength)
	}
	s, err := c.String(length)
	if err != nil {
		return &FormatError{Field: "clientVersion", Err: err}
	}
	h.ClientVersion = s
	return nil
}

func decodeSkinImage(c *Cursor) (*SkinImage, error) {
	var s SkinImage
	var err error
	if s.Version, err = c.Uint16(); err != nil {
		return nil, err
	}
	if s.X, err = c.Float64(); err != nil {
		return nil, err
	}
	if s.Y, err = c.Float64(); err != nil {
		return nil, err
	}
	if s.Width, err = c.Float64(); err != nil {
		return nil, err
	}
	if s.Height, err = c.Float64(); err != nil {
		return nil, err
	}
	if s.ImageType, err = c.Uint8(); err != nil {
		return nil, err
	}
	if s.StorageType, err = c.Uint8(); err != nil {
		return nil, err
	}
	if s.Rotation, err = c.Float64(); err != nil {
		return nil, err
	}
	payloadLen, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if payloadLen > maxSkinDataLength {
		return nil, &BoundsError{Op: "skinPayload", Offset: c.Tell(), Want: int(payloadLen), Have: maxSkinDataLength}
	}
	if s.Data, err = c.Bytes(int(payloadLen)); err != nil {
		return nil, err
	}
	return &s, nil
}
