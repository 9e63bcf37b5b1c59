package scrawl

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// EncodeOptions represents the encoding options passed to EncodeDocument
type EncodeOptions struct {
	// ByteOrder selects the output endianness; nil means big-endian
	ByteOrder binary.ByteOrder
}

// EncodeDocument writes doc in the document format, using canonical
// (widest) widths for the fields ambiguous on decode: uint32 client
// version length, uint32 item data length. DecodeDocument reproduces
// the document exactly from the result.
//
// The header's declared ItemCount and ResourceCount are taken from the
// actual item/resource slices, and a modern header's Zipped flag
// selects a zlib-compressed body. An item whose encoded record would
// exceed the largest declarable length is rejected with an error
// rather than written as a record no decoder could resolve.
func EncodeDocument(doc *Document, options *EncodeOptions) ([]byte, error) {
	if options == nil {
		options = &EncodeOptions{}
	}
	order := options.ByteOrder
	if order == nil {
		order = binary.ByteOrder(binary.BigEndian)
	}
	w := NewWriter(order)
	if err := encodeHeader(w, &doc.Header, len(doc.Items), len(doc.Resources)); err != nil {
		return nil, err
	}
	body := w
	if doc.Header.Modern() && doc.Header.Zipped {
		body = NewWriter(order)
	}
	modern := doc.Header.Modern()
	for i, item := range doc.Items {
		if err := encodeItem(body, item, modern); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	if !modern {
		for i, r := range doc.Resources {
			if err := encodeResource(body, r); err != nil {
				return nil, fmt.Errorf("resource %d: %w", i, err)
			}
		}
	}
	if body != w {
		var zipped bytes.Buffer
		zw := zlib.NewWriter(&zipped)
		if _, err := zw.Write(body.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		w.WriteBytes(zipped.Bytes())
	}
	return w.Bytes(), nil
}

func encodeHeader(w *Writer, h *Header, itemCount, resourceCount int) error {
	if len(h.DocID) > maxIDLength {
		return fmt.Errorf("docId length %d exceeds maximum %d", len(h.DocID), maxIDLength)
	}
	if len(h.ClientVersion) > maxClientVersionLength {
		return fmt.Errorf("clientVersion length %d exceeds maximum %d", len(h.ClientVersion), maxClientVersionLength)
	}
	w.WriteUint32(uint32(len(h.DocID)))
	w.WriteString(h.DocID)
	w.WriteUint16(h.Version)
	if h.Modern() {
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
		return nil
	}
	w.WriteUint16(h.PageCount)
	w.WriteUint32(uint32(itemCount))
	w.WriteFloat64(h.CanvasHeight)
	w.WriteFloat64(h.CanvasWidth)
	w.WriteUint32(uint32(resourceCount))
	w.WriteUint8(h.ClientType)
	w.WriteUint32(uint32(len(h.ClientVersion)))
	w.WriteString(h.ClientVersion)
	w.WriteInt64(h.LastModified.Unix())
	if h.Skin == nil {
		w.WriteUint32(0)
		return nil
	}
	s := h.Skin
	w.WriteUint32(uint32(48 + len(s.Data)))
	w.WriteUint16(s.Version)
	w.WriteFloat64(s.X)
	w.WriteFloat64(s.Y)
	w.WriteFloat64(s.Width)
	w.WriteFloat64(s.Height)
	w.WriteUint8(s.ImageType)
	w.WriteUint8(s.StorageType)
	w.WriteFloat64(s.Rotation)
	w.WriteUint32(uint32(len(s.Data)))
	w.WriteBytes(s.Data)
	return nil
}

func encodeItem(w *Writer, item *Item, modern bool) error {
	start := w.Tell()
	w.WriteUint8(uint8(item.Type))
	lengthAt := w.Tell()
	w.WriteUint32(0) // patched below
	w.WriteUint8(item.Version)
	if modern {
		w.WriteUint16(item.ID)
		w.WriteUint32(item.ZOrder)
		w.WriteUint8(item.Status)
		w.WriteFloat32(float32(item.Rotation))
		w.WriteFloat32(float32(item.ScaleX))
		w.WriteFloat32(float32(item.ScaleY))
	} else {
		w.WriteFixedString(item.LegacyID, 16)
		w.WriteInt64(item.CreatorID)
		w.WriteUint32(item.ZOrder)
		w.WriteUint8(item.Status)
		w.WriteFloat64(item.Rotation)
		w.WriteFloat64(item.ScaleX)
		w.WriteFloat64(item.ScaleY)
	}
	if err := encodeItemContent(w, item.Content, modern); err != nil {
		return err
	}
	end := w.Tell()
	if end-start > maxItemRecordBytes {
		return fmt.Errorf("record size %d exceeds maximum %d", end-start, maxItemRecordBytes)
	}
	w.Seek(lengthAt)
	w.WriteUint32(uint32(end - start))
	w.Seek(end)
	return nil
}

func writeCoord(w *Writer, v float64, modern bool) {
	if modern {
		w.WriteFloat32(float32(v))
	} else {
		w.WriteFloat64(v)
	}
}

func writeStyles(w *Writer, styles []byte) {
	w.WriteUint16(uint16(len(styles)))
	w.WriteBytes(styles)
}

func writePoints(w *Writer, points []Point, modern bool) {
	w.WriteUint32(uint32(len(points)))
	for _, p := range points {
		writeCoord(w, p.X, modern)
		writeCoord(w, p.Y, modern)
	}
}

func encodeItemContent(w *Writer, content ItemContent, modern bool) error {
	switch v := content.(type) {
	case Empty:
		// intentionally no bytes
	case TraceLine:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.Color))
		writeStyles(w, v.Styles)
		writePoints(w, v.Points, modern)
		if v.Pragma != nil {
			if !modern {
				return fmt.Errorf("pragma data on a legacy trace line")
			}
			w.WriteFloat32(v.Pragma.PressureCurve)
			w.WriteUint8(v.Pragma.BezierVersion)
			w.WriteUint8(v.Pragma.PenType)
			w.WriteFloat32(v.Pragma.WidthScale)
			w.WriteFloat32(v.Pragma.SpeedScale)
		}
	case Shape:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.LineColor))
		w.WriteUint32(uint32(v.FillColor))
		writeStyles(w, v.Styles)
		writePoints(w, v.Points, modern)
	case Text:
		writeCoord(w, v.Position.X, modern)
		writeCoord(w, v.Position.Y, modern)
		w.WriteFloat32(v.FontSize)
		w.WriteUint32(uint32(v.Color))
		w.WriteFloat32(v.WrapWidth)
		w.WriteUint32(uint32(len(v.Text)))
		w.WriteString(v.Text)
	case Pixmap:
		writeCoord(w, v.Position.X, modern)
		writeCoord(w, v.Position.Y, modern)
		writeCoord(w, v.Width, modern)
		writeCoord(w, v.Height, modern)
		w.WriteUint8(v.ImageType)
		w.WriteUint8(v.StorageType)
		w.WriteUint32(uint32(len(v.Payload)))
		w.WriteBytes(v.Payload)
		if modern {
			w.WriteUint32(uint32(len(v.Thumbnail)))
			w.WriteBytes(v.Thumbnail)
		}
	case PressureLine:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.Color))
		writeStyles(w, v.Styles)
		w.WriteUint32(uint32(len(v.Points)))
		for _, p := range v.Points {
			writeCoord(w, p.X, modern)
			writeCoord(w, p.Y, modern)
			w.WriteFloat32(float32(p.Pressure))
		}
	case TimePressureLine:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.Color))
		writeStyles(w, v.Styles)
		w.WriteUint32(uint32(len(v.Points)))
		for _, p := range v.Points {
			writeCoord(w, p.X, modern)
			writeCoord(w, p.Y, modern)
			w.WriteFloat32(float32(p.Pressure))
			w.WriteInt64(p.Timestamp)
		}
	case PenLine:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.Color))
		writeStyles(w, v.Styles)
		writePoints(w, v.Points, modern)
	case Polyline:
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.LineColor))
		w.WriteUint32(uint32(v.FillColor))
		writeStyles(w, v.Styles)
		writePoints(w, v.Points, modern)
		if v.Visible {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
	case CircleArc:
		writeCoord(w, v.Center.X, modern)
		writeCoord(w, v.Center.Y, modern)
		writeCoord(w, v.Radius, modern)
		writeCoord(w, v.StartAngle, modern)
		writeCoord(w, v.EndAngle, modern)
		if v.Clockwise {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
		w.WriteUint8(v.StartCap)
		w.WriteUint8(v.EndCap)
		writeStyles(w, v.Styles)
	case ShapeGroup:
		writeCoord(w, v.Left, modern)
		writeCoord(w, v.Top, modern)
		writeCoord(w, v.Right, modern)
		writeCoord(w, v.Bottom, modern)
		writeCoord(w, v.Rotation, modern)
		w.WriteFloat32(v.LineWidth)
		w.WriteUint32(uint32(v.LineColor))
		w.WriteUint32(uint32(v.FillColor))
		if v.Filled {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
		w.WriteUint16(uint16(len(v.ActionPoints)))
		for _, ap := range v.ActionPoints {
			w.WriteUint16(uint16(len(ap.Name)))
			w.WriteString(ap.Name)
			writeCoord(w, ap.X, modern)
			writeCoord(w, ap.Y, modern)
		}
		w.WriteUint32(uint32(len(v.Children)))
		for _, id := range v.Children {
			w.WriteUint16(id)
		}
	case Media:
		writeCoord(w, v.Position.X, modern)
		writeCoord(w, v.Position.Y, modern)
		writeCoord(w, v.Width, modern)
		writeCoord(w, v.Height, modern)
		w.WriteUint32(v.Duration)
		w.WriteUint16(uint16(len(v.Filename)))
		w.WriteString(v.Filename)
		w.WriteUint8(v.FileType)
		w.WriteUint8(v.StorageType)
		w.WriteUint32(uint32(len(v.Payload)))
		w.WriteBytes(v.Payload)
	default:
		return fmt.Errorf("unsupported content type %T", content)
	}
	return nil
}

func encodeResource(w *Writer, r Resource) error {
	if len(r.Payload) > maxResourceLength {
		return fmt.Errorf("payload size %d exceeds maximum %d", len(r.Payload), maxResourceLength)
	}
	w.WriteUint16(r.Type)
	w.WriteUint32(r.ID)
	w.WriteInt32(int32(len(r.Payload)))
	w.WriteBytes(r.Payload)
	return nil
}
