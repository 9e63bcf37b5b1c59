package scrawl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DecodeOptions represents the decoding options passed to DecodeDocument
type DecodeOptions struct {
	// ByteOrder selects the document's endianness
	//
	// the default (nil) is big-endian, which is what every observed
	// producer writes; little-endian is supported symmetrically
	ByteOrder binary.ByteOrder
	// MaxItems overrides the absolute item-count safety ceiling
	//
	// zero means the built-in ceiling; the header's declared item count
	// still applies independently
	MaxItems int
}

// DecodeStats counts what the resilient decode actually did, for
// diagnostics: how many records degraded to placeholders and how often
// the stream had to be forcibly resynchronized.
type DecodeStats struct {
	Items            int
	Placeholders     int
	Resyncs          int
	ForcedAdvances   int
	ResourcesSkipped int
}

// Document is the fully decoded result of one input buffer.
// Items and resources are in stream order and should be treated as
// immutable once returned.
type Document struct {
	Header    Header
	Items     []*Item
	Resources []Resource
	Stats     DecodeStats

	itemsByType map[ItemType][]*Item
	itemsByID   map[uint16]*Item
}

// ItemsByType retrieves all items with the given type tag, in stream
// order.
func (d *Document) ItemsByType(t ItemType) []*Item {
	return d.itemsByType[t]
}

// Item retrieves an item by its modern numeric id.
func (d *Document) Item(id uint16) (*Item, bool) {
	item, ok := d.itemsByID[id]
	return item, ok
}

// ResourceByID retrieves a resource from the trailing table.
func (d *Document) ResourceByID(id uint32) (Resource, bool) {
	for _, r := range d.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

func (d *Document) mapItems() {
	d.itemsByType = make(map[ItemType][]*Item)
	d.itemsByID = make(map[uint16]*Item)
	for _, item := range d.Items {
		d.itemsByType[item.Type] = append(d.itemsByType[item.Type], item)
		if d.Header.Modern() {
			d.itemsByID[item.ID] = item
		}
	}
}

// maxInflatedBytes caps how far a zipped body may expand, so a zlib
// bomb cannot balloon the decode.
const maxInflatedBytes = 256 << 20

// DecodeDocument decodes one whiteboard document from its full file
// contents.
//
// Only a header-level failure returns an error (*FormatError): the
// header gates every downstream layout decision and cannot be partially
// trusted. Everything below the header degrades instead - a corrupt
// item or resource record is replaced by an empty placeholder or
// skipped, and the returned document simply carries fewer decoded items
// than the header declared. Callers must therefore distinguish "nil
// error, short document" (recovered) from an error (unrecoverable).
//
// The buffer is not copied wholesale; decoded byte fields are. Decoding
// distinct documents concurrently is safe, there is no shared state.
func DecodeDocument(data []byte, options *DecodeOptions) (*Document, error) {
	if options == nil {
		options = &DecodeOptions{}
	}
	order := options.ByteOrder
	if order == nil {
		order = binary.ByteOrder(binary.BigEndian)
	}
	c := NewCursor(data, order)
	doc := &Document{}
	var err error
	if doc.Header, err = decodeHeader(c); err != nil {
		return nil, err
	}
	if doc.Header.Zipped {
		// the rest of the buffer is a zlib stream holding the item
		// stream; inflate and continue over the inflated bytes
		body, err := inflateBody(c)
		if err != nil {
			return nil, &FormatError{Field: "zippedBody", Err: err}
		}
		c = NewCursor(body, order)
	}
	stats := &doc.Stats
	limit := doc.Header.ItemCount
	if options.MaxItems > 0 && uint32(options.MaxItems) < limit {
		limit = uint32(options.MaxItems)
	}
	bounded := doc.Header
	bounded.ItemCount = limit
	doc.Items = decodeItems(c, &bounded, stats)
	stats.Items = len(doc.Items)
	if doc.Header.ResourceCount > 0 {
		doc.Resources = decodeResources(c, &doc.Header, stats)
	}
	doc.mapItems()
	return doc, nil
}

func inflateBody(c *Cursor) ([]byte, error) {
	raw := c.buf[c.pos:]
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(zr, maxInflatedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if len(body) > maxInflatedBytes {
		return nil, fmt.Errorf("inflated body exceeds %d bytes", maxInflatedBytes)
	}
	return body, nil
}
