package iter

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// peekWindow bounds how many bytes GraphemeCursor looks ahead to find one
// cluster boundary. UAX #29 clusters are almost always a handful of bytes;
// this only needs to be generous enough to cover long ZWJ emoji sequences
// and regional-indicator flag pairs.
const peekWindow = 64

// GraphemeCursor walks user-perceived character boundaries per Unicode
// UAX #29, delegating the break-rule table to github.com/rivo/uniseg
// rather than hand-rolling GB1-GB13/GB999 (ZWJ emoji sequences, regional
// indicator flag pairs, and the rest).
type GraphemeCursor struct {
	bytes *ByteCursor
	state int
}

// Graphemes creates a GraphemeCursor over view, positioned at its start.
func Graphemes(view tree.View, pools pool.Pools) *GraphemeCursor {
	return &GraphemeCursor{bytes: Bytes(view, pools), state: -1}
}

// Position returns the current byte offset.
func (g *GraphemeCursor) Position() uint64 {
	return g.bytes.Position()
}

// Current returns the bytes of the cluster under the cursor.
func (g *GraphemeCursor) Current() ([]byte, bool) {
	if g.bytes.AtEnd() {
		return nil, false
	}
	buf := g.bytes.PeekN(peekWindow)
	if len(buf) == 0 {
		return nil, false
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(buf, g.state)
	return cluster, true
}

// Next advances past the current cluster, reporting whether another
// follows.
func (g *GraphemeCursor) Next() bool {
	if g.bytes.AtEnd() {
		return false
	}
	buf := g.bytes.PeekN(peekWindow)
	if len(buf) == 0 {
		return false
	}
	cluster, _, _, newState := uniseg.FirstGraphemeCluster(buf, g.state)
	g.state = newState
	n := len(cluster)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if !g.bytes.Next() {
			break
		}
	}
	return !g.bytes.AtEnd()
}

// Seek positions the cursor at byte offset pos and resets the uniseg break
// state, which only ever depends on a short lookbehind that reconstructing
// from pos is not worth the cost of — the very next Next() call re-derives
// state from the bytes actually at pos.
func (g *GraphemeCursor) Seek(pos uint64) {
	g.bytes.Seek(pos)
	g.state = -1
}

// AtEnd reports whether the cursor is past the last cluster.
func (g *GraphemeCursor) AtEnd() bool {
	return g.bytes.AtEnd()
}
