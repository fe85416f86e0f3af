package tree

import "github.com/dshills/texteng/internal/engine/piece"

// View is an immutable, cheap-to-clone handle onto a piece tree, optionally
// windowed to a sub-range. Views never copy or restructure the tree they
// point at: Slice just narrows the [start, end) window over the same
// shared arena, and iterators (package iter) are responsible for
// intersecting their walk with that window.
//
// InsertAt and RemoveRange are the only mutating operations, and they only
// make sense on the whole-document view a Document keeps as its current
// state — calling them on a Slice-narrowed View still edits the full
// underlying tree, not just the window, so Document never exposes a
// narrowed View to callers expecting to mutate it.
type View struct {
	a          *arena
	root       nodeID
	start, end uint64
}

// Empty returns a View over a brand-new, empty tree.
func Empty() View {
	return View{a: newArena(), root: nilID, start: 0, end: 0}
}

// NewFromOriginal builds a View containing a single piece spanning the
// whole of the original pool, the usual starting point when opening a
// buffer over existing content.
func NewFromOriginal(length uint64) View {
	a := newArena()
	if length == 0 {
		return View{a: a, root: nilID}
	}
	root := a.build(black, nilID, piece.Piece{Pool: piece.Original, Offset: 0, Length: length}, nilID)
	return View{a: a, root: root, start: 0, end: length}
}

// Len returns the number of bytes spanned by this view's window.
func (v View) Len() uint64 {
	return v.end - v.start
}

// fullLen returns the total length of the underlying tree, ignoring any
// window narrowing.
func (v View) fullLen() uint64 {
	return v.a.lenOf(v.root)
}

// Slice narrows the view to [start, end) of its current window. Bounds are
// clamped to the current window; it never grows a window.
func (v View) Slice(start, end uint64) View {
	if start > v.Len() {
		start = v.Len()
	}
	if end > v.Len() {
		end = v.Len()
	}
	if end < start {
		end = start
	}
	return View{a: v.a, root: v.root, start: v.start + start, end: v.start + end}
}

// PieceAt returns the piece containing window-relative offset pos, the
// offset of pos within that piece, and the piece's start offset relative
// to the view's window.
func (v View) PieceAt(pos uint64) (p piece.Piece, pieceStart uint64, offsetInPiece uint64, ok bool) {
	if pos >= v.Len() {
		return piece.Piece{}, 0, 0, false
	}
	id, off, found := findAt(v.a, v.root, v.start+pos)
	if !found {
		return piece.Piece{}, 0, 0, false
	}
	n := v.a.at(id)
	globalStart := (v.start + pos) - off
	return n.piece, globalStart - v.start, off, true
}

// InsertAt inserts p at offset pos of the whole underlying tree and returns
// the new full-tree View. A Slice-narrowed window does not shift pos (see
// the InsertAt/RemoveRange doc above).
func (v View) InsertAt(pos uint64, p piece.Piece) View {
	if p.IsEmpty() {
		return v
	}
	newRoot := insert(v.a, v.root, pos, p)
	newRoot = v.a.blacken(newRoot)
	newLen := v.fullLen() + p.Length
	return View{a: v.a, root: newRoot, start: 0, end: newLen}
}

// RemoveRange deletes [start, end) and returns the new full-tree View.
func (v View) RemoveRange(start, end uint64) View {
	if end <= start {
		return v
	}
	root := splitAt(v.a, v.root, start)
	root = splitAt(v.a, root, end)

	remaining := end - start
	for remaining > 0 {
		id, _, ok := findAt(v.a, root, start)
		if !ok {
			break
		}
		n := v.a.at(id)
		plen := n.piece.Length
		root = deleteAt(v.a, root, start)
		root = v.a.blacken(root)
		remaining -= plen
	}

	newLen := v.fullLen() - (end - start)
	return View{a: v.a, root: root, start: 0, end: newLen}
}

// Pieces appends every piece in the view's window, in order, to dst and
// returns the result. It is the building block iterators (package iter)
// use for chunk-level traversal; it allocates one slice entry per piece,
// never copying piece bytes.
func (v View) Pieces(dst []piece.Piece) []piece.Piece {
	return v.appendPieces(dst, v.root, 0)
}

// appendPieces walks id in-order, appending pieces that intersect the
// view's [start, end) window. baseOffset is id's subtree's starting offset
// in the full tree's coordinate space.
func (v View) appendPieces(dst []piece.Piece, id nodeID, baseOffset uint64) []piece.Piece {
	if id == nilID {
		return dst
	}
	n := v.a.at(id)
	leftLen := v.a.lenOf(n.left)
	pieceStart := baseOffset + leftLen
	pieceEnd := pieceStart + n.piece.Length

	if pieceEnd > v.start {
		dst = v.appendPieces(dst, n.left, baseOffset)
	}
	if pieceEnd > v.start && pieceStart < v.end {
		p := n.piece
		// Clip the piece to the window on either edge.
		if pieceStart < v.start {
			trim := v.start - pieceStart
			p.Offset += trim
			p.Length -= trim
			pieceStart = v.start
		}
		if pieceEnd > v.end {
			p.Length -= pieceEnd - v.end
		}
		dst = append(dst, p)
	}
	if pieceStart < v.end {
		dst = v.appendPieces(dst, n.right, pieceEnd)
	}
	return dst
}
