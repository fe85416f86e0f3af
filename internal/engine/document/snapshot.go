package document

import (
	"github.com/dshills/texteng/internal/engine/iter"
	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// Snapshot is an immutable, cheap-to-copy reference to a document's content
// at one point in time: a tree.View paired with the pools it resolves
// against. Because View never mutates in place (every edit returns a new
// View over the same arena), a Snapshot taken before an edit keeps reading
// exactly the bytes it was given, independent of later edits — this is what
// lets package tracking and package undo retain history cheaply.
type Snapshot struct {
	view  tree.View
	pools pool.Pools
}

// NewSnapshot pairs a view with the pools it resolves against.
func NewSnapshot(view tree.View, pools pool.Pools) Snapshot {
	return Snapshot{view: view, pools: pools}
}

// NewSnapshotFromString builds a Snapshot whose entire content is s, stored
// in a fresh add pool. Intended for tests and small throwaway documents;
// NewFromString on Document is the entry point for real use.
func NewSnapshotFromString(s string) Snapshot {
	add := pool.NewAdd(len(s))
	pools := pool.Pools{Original: pool.NewOriginalFromBytes(nil), Add: add}
	view := tree.Empty()
	if s != "" {
		off := add.AppendString(s)
		view = view.InsertAt(0, piece.Piece{
			Pool:       piece.Add,
			Offset:     off,
			Length:     uint64(len(s)),
			Generation: piece.NextGeneration(),
		})
	}
	return Snapshot{view: view, pools: pools}
}

// View returns the underlying tree.View.
func (s Snapshot) View() tree.View {
	return s.view
}

// Pools returns the pools this snapshot resolves against.
func (s Snapshot) Pools() pool.Pools {
	return s.pools
}

// Len returns the byte length of the snapshot's content.
func (s Snapshot) Len() int64 {
	return int64(s.view.Len())
}

// Text materializes the full content as a string. Use sparingly for large
// documents; prefer the iter package's cursors for streaming access.
func (s Snapshot) Text() string {
	if s.view.Len() == 0 {
		return ""
	}
	buf := make([]byte, 0, s.view.Len())
	c := iter.Chunks(s.view, s.pools)
	for {
		chunk, ok := c.Current()
		if !ok {
			break
		}
		buf = append(buf, chunk...)
		if !c.Next() {
			break
		}
	}
	return string(buf)
}

// LineCount returns the number of lines in the snapshot, counting a
// trailing unterminated line as one more line.
func (s Snapshot) LineCount() uint32 {
	if s.view.Len() == 0 {
		return 1
	}
	var n uint32
	lc := iter.Lines(s.view, s.pools)
	for {
		n++
		if !lc.Next() {
			break
		}
	}
	return n
}

// LineIterator walks a Snapshot's lines, materializing each line's text.
// Usage mirrors bufio.Scanner: call Next before the first Text.
type LineIterator struct {
	snap    Snapshot
	lc      *iter.LineCursor
	started bool
	done    bool
}

// Lines returns a LineIterator positioned before the first line.
func (s Snapshot) Lines() *LineIterator {
	return &LineIterator{snap: s, lc: iter.Lines(s.view, s.pools)}
}

// Next advances to the next line, reporting whether one exists.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return true
	}
	if !it.lc.Next() {
		it.done = true
		return false
	}
	return true
}

// Text returns the line Next most recently advanced to.
func (it *LineIterator) Text() string {
	start, end, _ := it.lc.Current()
	v := it.snap.view.Slice(uint64(start), uint64(end))
	return Snapshot{view: v, pools: it.snap.pools}.Text()
}
