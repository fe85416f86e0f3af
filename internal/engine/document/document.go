// Package document is the editable-buffer facade: it wires the piece tree
// (package tree), its storage pools (package pool), stable marks (package
// mark), and undo history (package undo) into a single type applications
// open, edit, and write back.
package document

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/texteng/internal/engine/iter"
	"github.com/dshills/texteng/internal/engine/mark"
	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
	"github.com/dshills/texteng/internal/engine/undo"
	"github.com/dshills/texteng/internal/search"
	"github.com/dshills/texteng/internal/writer"
)

// Errors returned by Document operations.
var (
	ErrOutOfRange    = errors.New("document: range out of bounds")
	ErrNoUndo        = errors.New("document: nothing to undo")
	ErrNoRedo        = errors.New("document: nothing to redo")
	ErrInvalidMark   = errors.New("document: mark not found")
	ErrNoBackingFile = errors.New("document: no backing file to save to")
)

// defaultCacheEntries sizes the mmap chunk cache new file-backed documents
// get by default; WithCacheEntries overrides it.
const defaultCacheEntries = 256

// Option configures a Document at construction.
type Option func(*documentOptions)

type documentOptions struct {
	autoSnapshot bool
	cacheEntries int
}

// WithAutoSnapshot controls whether every successful edit automatically
// records an undo snapshot (true) or whether the caller calls Snapshot
// explicitly to group several edits into one undo step (false, the
// default — editors generally want word- or command-grained undo, not a
// snapshot per keystroke).
func WithAutoSnapshot(auto bool) Option {
	return func(o *documentOptions) { o.autoSnapshot = auto }
}

// WithCacheEntries sizes the mmap chunk cache for file-backed documents.
func WithCacheEntries(n int) Option {
	return func(o *documentOptions) { o.cacheEntries = n }
}

// Document is a mutable, thread-safe editable buffer built on a piece tree.
type Document struct {
	mu     sync.Mutex
	pools  pool.Pools
	view   tree.View
	marks  *mark.Registry
	undo   *undo.Graph
	opts   documentOptions
	closed bool
}

func newDocument(view tree.View, pools pool.Pools, opts []Option) *Document {
	o := documentOptions{cacheEntries: defaultCacheEntries}
	for _, opt := range opts {
		opt(&o)
	}
	d := &Document{
		pools: pools,
		view:  view,
		marks: mark.NewRegistry(),
		opts:  o,
		undo:  undo.New(view),
	}
	return d
}

// New creates an empty Document.
func New(opts ...Option) *Document {
	pools := pool.Pools{Original: pool.NewOriginalFromBytes(nil), Add: pool.NewAdd(0)}
	return newDocument(tree.Empty(), pools, opts)
}

// NewFromString creates a Document whose initial content is s, stored in
// the add pool (there is no file-backed original to speak of).
func NewFromString(s string, opts ...Option) *Document {
	pools := pool.Pools{Original: pool.NewOriginalFromBytes(nil), Add: pool.NewAdd(len(s))}
	view := tree.Empty()
	if s != "" {
		off := pools.Add.AppendString(s)
		view = view.InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: uint64(len(s)), Generation: piece.NextGeneration()})
	}
	return newDocument(view, pools, opts)
}

// NewFromReader creates a Document by reading r fully into memory as the
// original pool. Use NewFromPath instead when the content is a real file
// large enough to want mmap.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	pools := pool.Pools{Original: pool.NewOriginalFromBytes(data), Add: pool.NewAdd(0)}
	view := tree.NewFromOriginal(uint64(len(data)))
	return newDocument(view, pools, opts), nil
}

// NewFromPath opens path and memory-maps it as the document's original
// pool, the zero-copy entry point for editing real files.
func NewFromPath(path string, opts ...Option) (*Document, error) {
	o := documentOptions{cacheEntries: defaultCacheEntries}
	for _, opt := range opts {
		opt(&o)
	}
	original, err := pool.NewOriginalFromPath(path, o.cacheEntries)
	if err != nil {
		return nil, err
	}
	pools := pool.Pools{Original: original, Add: pool.NewAdd(0)}
	view := tree.NewFromOriginal(original.Len())
	return newDocument(view, pools, opts), nil
}

// Close releases resources held by the document's original pool (e.g. an
// mmap'd file descriptor). Safe to call more than once.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.pools.Original.Close()
}

// Len returns the document's current byte length.
func (d *Document) Len() ByteOffset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ByteOffset(d.view.Len())
}

// Snapshot returns an immutable, cheap-to-retain view of the document's
// current content, independent of later edits.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return NewSnapshot(d.view, d.pools)
}

// Text materializes the full document content. Use sparingly for large
// documents.
func (d *Document) Text() string {
	return d.Snapshot().Text()
}

// Find returns a cursor over pattern's occurrences in the document's
// current content, in ascending offset order. cancel may be nil.
func (d *Document) Find(pattern []byte, cancel *atomic.Bool) *search.Cursor {
	d.mu.Lock()
	view, pools := d.view, d.pools
	d.mu.Unlock()
	return search.Forward(view, pools, pattern, cancel)
}

// FindReverse is like Find but yields matches in descending offset order,
// starting from the end of the document.
func (d *Document) FindReverse(pattern []byte, cancel *atomic.Bool) *search.Cursor {
	d.mu.Lock()
	view, pools := d.view, d.pools
	d.mu.Unlock()
	return search.Reverse(view, pools, pattern, cancel)
}

// Insert inserts text at offset and returns the EditResult.
func (d *Document) Insert(offset ByteOffset, text string) (EditResult, error) {
	return d.Replace(Range{Start: offset, End: offset}, text)
}

// Remove deletes [r.Start, r.End) and returns the EditResult.
func (d *Document) Remove(r Range) (EditResult, error) {
	return d.Replace(r, "")
}

// Append inserts text at the end of the document.
func (d *Document) Append(text string) (EditResult, error) {
	return d.Insert(d.Len(), text)
}

// Replace substitutes [r.Start, r.End) with text in a single edit.
func (d *Document) Replace(r Range, text string) (EditResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.replaceLocked(r, text)
}

func (d *Document) replaceLocked(r Range, text string) (EditResult, error) {
	length := ByteOffset(d.view.Len())
	if r.Start < 0 || r.End < r.Start || r.End > length {
		return EditResult{}, ErrOutOfRange
	}

	var oldText string
	if !r.IsEmpty() {
		oldText = NewSnapshot(d.view.Slice(uint64(r.Start), uint64(r.End)), d.pools).Text()
		d.view = d.view.RemoveRange(uint64(r.Start), uint64(r.End))
	}

	if text != "" {
		off := d.pools.Add.AppendString(text)
		d.view = d.view.InsertAt(uint64(r.Start), piece.Piece{
			Pool:       piece.Add,
			Offset:     off,
			Length:     uint64(len(text)),
			Generation: piece.NextGeneration(),
		})
	}

	result := EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: r.Start + ByteOffset(len(text))},
		OldText:  oldText,
	}

	if d.opts.autoSnapshot {
		d.undo.Snapshot(d.view)
	}

	return result, nil
}

// ApplyEdit applies a single Edit.
func (d *Document) ApplyEdit(e Edit) (EditResult, error) {
	return d.Replace(e.Range, e.NewText)
}

// ApplyEdits applies multiple edits atomically. Edits must be expressed
// against the document's ORIGINAL coordinates (before any of them are
// applied); they are internally sorted and applied back-to-front so
// earlier edits' offsets never need adjusting for later ones.
func (d *Document) ApplyEdits(edits []Edit) ([]EditResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sortEditsDescending(sorted)

	results := make([]EditResult, len(sorted))
	for i, e := range sorted {
		res, err := d.replaceLocked(e.Range, e.NewText)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func sortEditsDescending(edits []Edit) {
	for i := 1; i < len(edits); i++ {
		for j := i; j > 0 && edits[j].Range.Start > edits[j-1].Range.Start; j-- {
			edits[j], edits[j-1] = edits[j-1], edits[j]
		}
	}
}

// Snapshot-for-undo operations.

// RecordUndoPoint explicitly records the current state as an undo
// checkpoint, for callers using WithAutoSnapshot(false) to group edits.
func (d *Document) RecordUndoPoint() undo.NodeID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.undo.Snapshot(d.view)
}

// Undo reverts to the previous undo checkpoint.
func (d *Document) Undo() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.undo.Undo()
	if err != nil {
		return ErrNoUndo
	}
	d.view = v
	return nil
}

// Redo re-applies the most recently undone checkpoint.
func (d *Document) Redo() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.undo.Redo()
	if err != nil {
		return ErrNoRedo
	}
	d.view = v
	return nil
}

// CanUndo reports whether Undo would succeed.
func (d *Document) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.undo.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (d *Document) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.undo.CanRedo()
}

// Marks.

// CreateMark registers a stable mark at offset. before is stored as the
// mark's Boundary flag, which resolution does not consult.
func (d *Document) CreateMark(offset ByteOffset, before bool) mark.Mark {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.marks.Create(d.view, uint64(offset), before)
}

// ResolveMark reports a mark's current position in the document. A mark
// that is not in this document's registry (for example one removed by
// DeleteMark) resolves to the zero Result, with Found false.
func (d *Document) ResolveMark(m mark.Mark) mark.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.marks.Get(m.ID); !ok {
		return mark.Result{}
	}
	return mark.Resolve(d.view, m)
}

// DeleteMark removes a mark from the registry.
func (d *Document) DeleteMark(id mark.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marks.Delete(id)
}

// Coordinate conversion.

// OffsetToPoint converts a byte offset to a line/column Point.
func (d *Document) OffsetToPoint(offset ByteOffset) Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return offsetToPoint(d.view, d.pools, offset)
}

// PointToOffset converts a line/column Point to a byte offset.
func (d *Document) PointToOffset(p Point) ByteOffset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return pointToOffset(d.view, d.pools, p)
}

func offsetToPoint(view tree.View, pools pool.Pools, offset ByteOffset) Point {
	if offset < 0 {
		offset = 0
	}
	target := uint64(offset)
	lc := iter.Lines(view, pools)
	var line uint32
	for {
		start, end, term := lc.Current()
		if target >= start && target <= end {
			return Point{Line: line, Column: uint32(target - start)}
		}
		lineEndWithTerm := end + uint64(term.Len())
		if target < lineEndWithTerm || !lc.Next() {
			col := target - start
			if col > end-start {
				col = end - start
			}
			return Point{Line: line, Column: uint32(col)}
		}
		line++
	}
}

func pointToOffset(view tree.View, pools pool.Pools, p Point) ByteOffset {
	lc := iter.Lines(view, pools)
	var line uint32
	for {
		start, end, term := lc.Current()
		if line == p.Line {
			col := uint64(p.Column)
			lineLen := end - start
			if col > lineLen {
				col = lineLen
			}
			return ByteOffset(start + col)
		}
		if !lc.Next() {
			return ByteOffset(end + uint64(term.Len()))
		}
		line++
	}
}

// WriteTo writes the document's full content to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	view, pools := d.view, d.pools
	d.mu.Unlock()

	var total int64
	c := iter.Chunks(view, pools)
	for {
		chunk, ok := c.Current()
		if !ok {
			break
		}
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if !c.Next() {
			break
		}
	}
	return total, nil
}

// SaveAs writes the document's full content to path. If path names the
// same file the document was opened from via NewFromPath, it is rewritten
// in place without ever invalidating bytes a still-live piece needs to
// read from it; otherwise the content is streamed to a temp file and
// atomically renamed into place.
func (d *Document) SaveAs(path string) error {
	d.mu.Lock()
	view, pools := d.view, d.pools
	d.mu.Unlock()
	return writer.WriteTo(view, pools, path)
}

// Save writes the document back to the file it was opened from via
// NewFromPath. It returns ErrNoBackingFile if the document has no such
// file (it was built with New, NewFromString, or NewFromReader).
func (d *Document) Save() error {
	d.mu.Lock()
	original := d.pools.Original
	d.mu.Unlock()
	if original == nil {
		return ErrNoBackingFile
	}
	path, ok := original.Path()
	if !ok {
		return ErrNoBackingFile
	}
	return d.SaveAs(path)
}
