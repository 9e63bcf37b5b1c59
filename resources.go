package scrawl

// Resource is a trailing binary blob referenced by id from items.
// Only legacy documents carry a resource table; modern producers embed
// payloads in the items themselves.
type Resource struct {
	Type    uint16
	ID      uint32
	Length  int
	Payload []byte
}

const maxResourceLength = 1000000

// decodeResources decodes the trailing resource table, bounded by the
// header's resource count and end-of-buffer. It mirrors the item loop's
// discipline: a single bad resource is skipped via its declared length
// rather than aborting the remaining attempts.
func decodeResources(c *Cursor, h *Header, stats *DecodeStats) []Resource {
	resources := make([]Resource, 0, h.ResourceCount)
	for c.HasMore() && len(resources) < int(h.ResourceCount) {
		start := c.Tell()
		res, ok := decodeResource(c)
		if ok {
			resources = append(resources, res)
		} else {
			stats.ResourcesSkipped++
		}
		next := start + 2 + 4 + 4 + res.Length
		if res.Length < 0 || next > c.Len() {
			c.Seek(c.Len())
			break
		}
		if next <= start {
			next = start + 1
		}
		c.Seek(next)
	}
	return resources
}

func decodeResource(c *Cursor) (Resource, bool) {
	var r Resource
	typ, err := c.Uint16()
	if err != nil {
		return r, false
	}
	r.Type = typ
	if r.ID, err = c.Uint32(); err != nil {
		return r, false
	}
	length, err := c.Int32()
	if err != nil {
		return r, false
	}
	r.Length = int(length)
	if length < 0 || length > maxResourceLength {
		return r, false
	}
	if r.Payload, err = c.Bytes(int(length)); err != nil {
		return r, false
	}
	return r, true
}
