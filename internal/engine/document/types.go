package document

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset is a position in a document measured in bytes from the start.
type ByteOffset int64

// RevisionID uniquely identifies a document state at a point in time,
// minted from a monotonically increasing counter the same way the rest of
// this engine tags generations and node IDs.
type RevisionID uint64

var revisionCounter uint64

// NextRevisionID mints a new unique revision ID.
func NextRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Point is a line/column position, both zero-indexed. Column counts bytes
// within the line; see PointUTF16 for the UTF-16-code-unit variant LSP-style
// clients need.
type Point struct {
	Line   uint32
	Column uint32
}

// String returns "line:column" (1-indexed, matching how editors display
// positions to users).
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// PointUTF16 is a line/column position where Column counts UTF-16 code
// units rather than bytes, the unit LSP's Position type uses.
type PointUTF16 struct {
	Line   uint32
	Column uint32
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// IsEmpty reports whether the range spans zero bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Len returns the number of bytes the range spans.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// String returns "[start,end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Edit describes a single textual change: replace Range with NewText.
// A pure insertion has Range.IsEmpty(); a pure deletion has NewText == "".
type Edit struct {
	Range   Range
	NewText string
}

// EditResult records what an applied Edit actually did, including the text
// it displaced, so callers (undo, tracking) can build an inverse change
// without re-reading the document.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
}
