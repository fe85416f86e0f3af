// Package search finds a byte pattern inside a view using
// Boyer-Moore-Horspool, forward and reverse, without ever materializing
// the view's content contiguously.
package search

import (
	"errors"
	"sync/atomic"

	"github.com/dshills/texteng/internal/engine/iter"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// ErrCancelled is reported by a Cursor once its cancel flag is observed
// set. It is not a fatal error; it just means the search stopped early.
var ErrCancelled = errors.New("search: cancelled")

const alphabetSize = 256

// Cursor walks a view yielding the start offsets of pattern's occurrences,
// one at a time, in the cursor's direction of travel.
type Cursor struct {
	bytes   *iter.ByteCursor
	pattern []byte
	shift   [alphabetSize]int
	cancel  *atomic.Bool
	reverse bool
	pos     uint64
	total   uint64
	cur     uint64
	ok      bool
	err     error
}

// Forward returns a Cursor that reports pattern's occurrences in view in
// ascending offset order, starting from the view's beginning. cancel may
// be nil, in which case the search never cancels.
func Forward(view tree.View, pools pool.Pools, pattern []byte, cancel *atomic.Bool) *Cursor {
	c := newCursor(view, pools, pattern, cancel, false)
	c.advance()
	return c
}

// Reverse returns a Cursor that reports pattern's occurrences in view in
// descending offset order, starting from the view's end.
func Reverse(view tree.View, pools pool.Pools, pattern []byte, cancel *atomic.Bool) *Cursor {
	c := newCursor(view, pools, pattern, cancel, true)
	c.advance()
	return c
}

func newCursor(view tree.View, pools pool.Pools, pattern []byte, cancel *atomic.Bool, reverse bool) *Cursor {
	c := &Cursor{
		bytes:   iter.Bytes(view, pools),
		pattern: pattern,
		cancel:  cancel,
		reverse: reverse,
		total:   view.Len(),
	}
	buildShiftTable(&c.shift, pattern, reverse)
	if reverse {
		c.pos = c.total
	}
	return c
}

// buildShiftTable fills shift with the Horspool bad-character table: for
// each byte value, how far the window can slide before that byte (read
// from the window's trailing edge in the search direction) could align
// with the pattern again. Bytes not in the pattern get the full pattern
// length, the maximum possible slide.
func buildShiftTable(shift *[alphabetSize]int, pattern []byte, reverse bool) {
	n := len(pattern)
	for i := range shift {
		shift[i] = n
	}
	if n == 0 {
		return
	}
	if reverse {
		for i := n - 1; i > 0; i-- {
			shift[pattern[i]] = i
		}
	} else {
		for i := 0; i < n-1; i++ {
			b := pattern[i]
			shift[b] = n - 1 - i
		}
	}
}

// Current returns the start offset of the match under the cursor.
func (c *Cursor) Current() (uint64, bool) {
	return c.cur, c.ok
}

// Next advances to the next match that does not overlap the current one,
// reporting whether one was found.
func (c *Cursor) Next() bool {
	if !c.ok {
		return false
	}
	n := uint64(len(c.pattern))
	if c.reverse {
		if c.cur < n {
			c.ok = false
			return false
		}
		c.pos = c.cur - n
	} else {
		c.pos = c.cur + n
	}
	c.advance()
	return c.ok
}

// Err returns ErrCancelled if the search stopped because its cancel flag
// was observed set, and nil otherwise (including when the cursor simply
// ran out of matches).
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) advance() {
	n := len(c.pattern)
	if n == 0 || n > int(c.total) {
		c.ok = false
		return
	}
	if c.reverse {
		c.advanceReverse()
		return
	}
	c.advanceForward()
}

func (c *Cursor) advanceForward() {
	n := uint64(len(c.pattern))
	last := c.total - n
	for c.pos <= last {
		if c.cancelled() {
			return
		}
		window := c.peekAt(c.pos, len(c.pattern))
		if equalTail(window, c.pattern) {
			c.cur = c.pos
			c.ok = true
			return
		}
		tail := window[len(window)-1]
		c.pos += uint64(c.shift[tail])
	}
	c.ok = false
}

func (c *Cursor) advanceReverse() {
	n := uint64(len(c.pattern))
	for {
		if c.cancelled() {
			return
		}
		if c.pos+n > c.total {
			if c.pos == 0 {
				c.ok = false
				return
			}
			c.pos--
			continue
		}
		window := c.peekAt(c.pos, len(c.pattern))
		if equalTail(window, c.pattern) {
			c.cur = c.pos
			c.ok = true
			return
		}
		head := window[0]
		step := uint64(c.shift[head])
		if step == 0 {
			step = 1
		}
		if step > c.pos {
			c.ok = false
			return
		}
		c.pos -= step
	}
}

// peekAt returns up to n bytes starting at offset pos without disturbing
// the cursor's own position, reusing ByteCursor.PeekN's cross-chunk carry
// so the pattern never needs to be decoded out of a contiguous buffer.
func (c *Cursor) peekAt(pos uint64, n int) []byte {
	c.bytes.Seek(pos)
	return c.bytes.PeekN(n)
}

func equalTail(window, pattern []byte) bool {
	if len(window) != len(pattern) {
		return false
	}
	for i := len(pattern) - 1; i >= 0; i-- {
		if window[i] != pattern[i] {
			return false
		}
	}
	return true
}

func (c *Cursor) cancelled() bool {
	if c.cancel == nil {
		return false
	}
	if c.cancel.Load() {
		c.ok = false
		c.err = ErrCancelled
		return true
	}
	return false
}
