package iter

import (
	"sort"

	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// ChunkCursor walks a view's pieces in order, handing back each piece's
// bytes directly out of its pool without copying. It is the only iterator
// layer with zero-copy reads; everything above it (bytes, runes,
// graphemes, lines) is built by composing ChunkCursor reads.
type ChunkCursor struct {
	pools   pool.Pools
	pieces  []piece.Piece
	offsets []uint64
	total   uint64
	idx     int
}

// Chunks creates a ChunkCursor over view, positioned at its start.
func Chunks(view tree.View, pools pool.Pools) *ChunkCursor {
	pieces := view.Pieces(nil)
	offsets := make([]uint64, len(pieces)+1)
	var acc uint64
	for i, p := range pieces {
		offsets[i] = acc
		acc += p.Length
	}
	offsets[len(pieces)] = acc
	return &ChunkCursor{pools: pools, pieces: pieces, offsets: offsets, total: acc}
}

// Position returns the byte offset of the start of the current chunk, or
// the view's total length if the cursor has run off the end.
func (c *ChunkCursor) Position() uint64 {
	if c.idx >= len(c.pieces) {
		return c.total
	}
	return c.offsets[c.idx]
}

// Current returns the bytes of the chunk under the cursor.
func (c *ChunkCursor) Current() ([]byte, bool) {
	if c.idx < 0 || c.idx >= len(c.pieces) {
		return nil, false
	}
	return c.pools.Slice(c.pieces[c.idx]), true
}

// Next advances to the following chunk, reporting whether one exists.
func (c *ChunkCursor) Next() bool {
	if c.idx >= len(c.pieces) {
		return false
	}
	c.idx++
	return c.idx < len(c.pieces)
}

// Prev moves back to the preceding chunk, reporting whether one exists.
func (c *ChunkCursor) Prev() bool {
	if c.idx <= 0 {
		return false
	}
	c.idx--
	return true
}

// Seek positions the cursor on the chunk containing byte offset pos.
func (c *ChunkCursor) Seek(pos uint64) {
	idx := sort.Search(len(c.pieces), func(i int) bool {
		return c.offsets[i+1] > pos
	})
	c.idx = idx
}

// AtEnd reports whether the cursor has advanced past the last chunk.
func (c *ChunkCursor) AtEnd() bool {
	return c.idx >= len(c.pieces)
}

// Clone returns an independent copy of the cursor at the same position.
// The underlying piece/offset slices are immutable and safely shared.
func (c *ChunkCursor) Clone() *ChunkCursor {
	cp := *c
	return &cp
}
