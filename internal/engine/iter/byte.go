package iter

import (
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// ByteCursor exposes single-byte granularity over a ChunkCursor, tracking
// the current offset within the active chunk so repeated single-byte steps
// don't re-slice the pool on every call.
type ByteCursor struct {
	chunks *ChunkCursor
	cur    []byte
	off    int // offset within cur
	pos    uint64
	total  uint64
}

// Bytes creates a ByteCursor over view, positioned at its start.
func Bytes(view tree.View, pools pool.Pools) *ByteCursor {
	c := &ByteCursor{chunks: Chunks(view, pools), total: view.Len()}
	c.loadChunk()
	return c
}

func (b *ByteCursor) loadChunk() {
	if cur, ok := b.chunks.Current(); ok {
		b.cur = cur
	} else {
		b.cur = nil
	}
	b.off = 0
}

// Position returns the current byte offset.
func (b *ByteCursor) Position() uint64 {
	return b.pos
}

// Current returns the byte under the cursor.
func (b *ByteCursor) Current() (byte, bool) {
	if b.off < len(b.cur) {
		return b.cur[b.off], true
	}
	return 0, false
}

// Next advances one byte, reporting whether a byte remains under the
// cursor afterward.
func (b *ByteCursor) Next() bool {
	if b.pos >= b.total {
		return false
	}
	b.off++
	b.pos++
	for b.off >= len(b.cur) {
		if !b.chunks.Next() {
			b.cur = nil
			return false
		}
		b.loadChunk()
	}
	return true
}

// Prev steps back one byte.
func (b *ByteCursor) Prev() bool {
	if b.pos == 0 {
		return false
	}
	b.pos--
	for b.cur == nil || b.off == 0 {
		if !b.chunks.Prev() {
			b.cur = nil
			return false
		}
		cur, _ := b.chunks.Current()
		b.cur = cur
		b.off = len(cur)
	}
	b.off--
	return true
}

// Seek positions the cursor at byte offset pos.
func (b *ByteCursor) Seek(pos uint64) {
	if pos > b.total {
		pos = b.total
	}
	b.chunks.Seek(pos)
	b.pos = pos
	b.loadChunk()
	b.off = int(pos - b.chunks.Position())
}

// AtEnd reports whether the cursor is past the last byte.
func (b *ByteCursor) AtEnd() bool {
	return b.pos >= b.total
}

// Clone returns an independent copy of the cursor at the same position.
func (b *ByteCursor) Clone() *ByteCursor {
	cp := *b
	cp.chunks = b.chunks.Clone()
	return &cp
}

// PeekN returns up to n bytes starting at the cursor's position without
// moving it, used by CharCursor to decode across chunk boundaries.
func (b *ByteCursor) PeekN(n int) []byte {
	cp := b.Clone()
	buf := make([]byte, 0, n)
	for len(buf) < n {
		v, ok := cp.Current()
		if !ok {
			break
		}
		buf = append(buf, v)
		if !cp.Next() {
			break
		}
	}
	return buf
}
