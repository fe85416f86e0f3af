// Package mark implements stable positions ("marks") that survive edits
// elsewhere in the document, resolved by walking the piece tree rather than
// by tracking a plain byte offset (which an unrelated edit would shift).
//
// Grounded directly on the sanedit piece tree's mark.rs: a Mark names a
// position inside a specific pool at the moment it was created, tagged
// with the piece's generation so that a later piece occupying the same
// pool range (e.g. after undo/redo re-creates identical content) is not
// mistaken for the original.
package mark

import (
	"sync/atomic"

	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/tree"
)

// ID uniquely identifies a registered Mark.
type ID uint64

var idCounter uint64

// NextID mints a new unique mark ID.
func NextID() ID {
	return ID(atomic.AddUint64(&idCounter, 1))
}

// Mark names a stable position by the pool/offset/generation it was
// created at, rather than by a plain byte offset that would drift under
// unrelated edits.
type Mark struct {
	ID         ID
	Pool       piece.Pool
	PoolOffset uint64
	Generation uint64
	// Boundary records the flag passed to Create. Create and Resolve do not
	// read it: a mark at a position that falls exactly between two pieces
	// is anchored the same way whichever value it carries.
	Boundary bool
	// endOfBuffer marks the special position at the very end of the
	// document, which has no piece to anchor to at all.
	endOfBuffer bool
}

// Result is the outcome of resolving a Mark against a View.
type Result struct {
	// Found is true if the mark's original content still exists at a
	// locatable position.
	Found bool
	// Position is the current byte offset: exact if Found, otherwise the
	// nearest reasonable fallback (the start of whatever now occupies the
	// mark's old pool range).
	Position uint64
}

// Registry owns the set of live marks for one document. It is not
// thread-safe; callers serialize access the same way they serialize edits
// (see package document).
type Registry struct {
	marks map[ID]Mark
}

// NewRegistry creates an empty mark registry.
func NewRegistry() *Registry {
	return &Registry{marks: make(map[ID]Mark)}
}

// Create registers a new mark at the given view position and returns it.
func (r *Registry) Create(view tree.View, pos uint64, boundary bool) Mark {
	if pos >= view.Len() {
		m := Mark{ID: NextID(), Boundary: boundary, endOfBuffer: true}
		r.marks[m.ID] = m
		return m
	}
	p, pieceStart, offInPiece, ok := view.PieceAt(pos)
	if !ok {
		m := Mark{ID: NextID(), Boundary: boundary, endOfBuffer: true}
		r.marks[m.ID] = m
		return m
	}
	_ = pieceStart
	m := Mark{
		ID:         NextID(),
		Pool:       p.Pool,
		PoolOffset: p.Offset + offInPiece,
		Generation: p.Generation,
		Boundary:   boundary,
	}
	r.marks[m.ID] = m
	return m
}

// Delete removes a mark from the registry.
func (r *Registry) Delete(id ID) {
	delete(r.marks, id)
}

// Get returns a registered mark by ID.
func (r *Registry) Get(id ID) (Mark, bool) {
	m, ok := r.marks[id]
	return m, ok
}

// Resolve locates m's current position in view. See Result for semantics.
func Resolve(view tree.View, m Mark) Result {
	if m.endOfBuffer {
		return Result{Found: true, Position: view.Len()}
	}

	// Phase 1: exact match — walk the view's pieces looking for one from
	// the same pool/generation whose range still contains PoolOffset.
	pieces := view.Pieces(nil)
	var acc uint64
	for _, p := range pieces {
		if p.Pool == m.Pool && p.Generation == m.Generation && p.Contains(m.PoolOffset) {
			return Result{Found: true, Position: acc + (m.PoolOffset - p.Offset)}
		}
		acc += p.Length
	}

	// Phase 2: the mark's content was deleted. Fall back to the nearest
	// piece whose pool range starts at or after the mark's original
	// offset, in document order — i.e. wherever the text that used to
	// follow the mark now begins.
	acc = 0
	for _, p := range pieces {
		if p.Pool == m.Pool && p.Offset >= m.PoolOffset {
			return Result{Found: false, Position: acc}
		}
		acc += p.Length
	}

	return Result{Found: false, Position: view.Len()}
}
