package scrawl

import "fmt"

// BoundsError is returned by Cursor reads that would run past the end of
// the buffer, or whose requested length fails a sanity check. The item
// stream loop treats it as a record-local failure and resynchronizes;
// only header decoding escalates it to a FormatError.
type BoundsError struct {
	Op     string // the read that failed, e.g. "uint32", "bytes"
	Offset int    // cursor position at the time of the read
	Want   int    // bytes requested
	Have   int    // bytes remaining (or the violated ceiling, for ceiling failures)
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("read %s at offset 0x%X: want %d bytes, have %d", e.Op, e.Offset, e.Want, e.Have)
}

// FormatError indicates the document header is structurally unusable -
// an unreadable id length, an out-of-range version or an unresolvable
// ambiguous field. Header fields gate every downstream layout decision,
// so a FormatError aborts the whole decode. Anything below the header
// degrades to fewer items instead.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid document header: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid document header: %s", e.Field)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrf(field string, format string, args ...any) *FormatError {
	return &FormatError{Field: field, Err: fmt.Errorf(format, args...)}
}
