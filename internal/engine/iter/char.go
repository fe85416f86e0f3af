package iter

import (
	"unicode/utf8"

	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// CharCursor decodes UTF-8 runes over a ByteCursor, buffering up to
// utf8.UTFMax bytes across chunk boundaries so a rune never has to be
// materialized contiguously in the pool itself. Invalid byte sequences
// decode to utf8.RuneError and advance exactly one byte, matching the
// standard library's own recovery convention.
type CharCursor struct {
	bytes *ByteCursor
}

// Chars creates a CharCursor over view, positioned at its start.
func Chars(view tree.View, pools pool.Pools) *CharCursor {
	return &CharCursor{bytes: Bytes(view, pools)}
}

// Position returns the current byte offset.
func (c *CharCursor) Position() uint64 {
	return c.bytes.Position()
}

// Current decodes the rune under the cursor without moving it.
func (c *CharCursor) Current() (rune, int, bool) {
	if c.bytes.AtEnd() {
		return 0, 0, false
	}
	buf := c.bytes.PeekN(utf8.UTFMax)
	if len(buf) == 0 {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(buf)
	return r, size, true
}

// Next advances past the current rune, reporting whether another rune
// follows.
func (c *CharCursor) Next() bool {
	_, size, ok := c.Current()
	if !ok {
		return false
	}
	if size == 0 {
		size = 1
	}
	for i := 0; i < size; i++ {
		if !c.bytes.Next() {
			break
		}
	}
	return !c.bytes.AtEnd()
}

// Prev steps back to the previous rune boundary. Since UTF-8 is
// self-synchronizing, it walks back over continuation bytes (10xxxxxx)
// until it finds a lead byte or the start of the buffer.
func (c *CharCursor) Prev() bool {
	if c.bytes.Position() == 0 {
		return false
	}
	if !c.bytes.Prev() {
		return false
	}
	for i := 0; i < utf8.UTFMax-1; i++ {
		v, ok := c.bytes.Current()
		if !ok || v&0xC0 != 0x80 {
			break
		}
		if !c.bytes.Prev() {
			break
		}
	}
	return true
}

// Seek positions the cursor at byte offset pos, which should fall on a
// rune boundary; decoding from a non-boundary offset degrades gracefully
// to RuneError like any other invalid sequence.
func (c *CharCursor) Seek(pos uint64) {
	c.bytes.Seek(pos)
}

// AtEnd reports whether the cursor is past the last rune.
func (c *CharCursor) AtEnd() bool {
	return c.bytes.AtEnd()
}
