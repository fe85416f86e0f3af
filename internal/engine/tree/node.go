package tree

import "github.com/dshills/texteng/internal/engine/piece"

// nodeID indexes into an arena's node slice. Using an index instead of a
// pointer keeps nodes as plain values (no GC pointer-chasing, no risk of
// accidental cycles from back-pointers) and lets a View pin an old root by
// storing nothing more than an int and a pointer to the shared arena.
type nodeID int32

const (
	// nilID is the black empty leaf, matching the red-black literature's "E".
	nilID nodeID = -1
	// bbID is the double-black empty leaf produced transiently during
	// delete rebalancing, matching the literature's "EE".
	bbID nodeID = -2
)

// node is one entry in a Tree's arena. Children are sums over the
// subtree's piece lengths only (see SPEC_FULL.md 4.2) — line/grapheme
// metrics live one layer up, in package iter.
type node struct {
	piece      piece.Piece
	color      color
	left       nodeID
	right      nodeID
	subtreeLen uint64
}

// arena holds every node ever created for a family of Trees descended from
// one another by copy-on-write edits. Nodes are appended, never mutated or
// freed — an older View simply keeps referencing nodes further back in the
// slice, which remain valid for as long as any View pins the arena.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{}
}

// alloc appends n and returns its new nodeID.
func (a *arena) alloc(n node) nodeID {
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) at(id nodeID) node {
	return a.nodes[id]
}

func (a *arena) colorOf(id nodeID) color {
	switch {
	case id == nilID:
		return black
	case id == bbID:
		return doubleBlack
	default:
		return a.nodes[id].color
	}
}

func (a *arena) leftOf(id nodeID) nodeID {
	if id < 0 {
		return nilID
	}
	return a.nodes[id].left
}

func (a *arena) rightOf(id nodeID) nodeID {
	if id < 0 {
		return nilID
	}
	return a.nodes[id].right
}

func (a *arena) lenOf(id nodeID) uint64 {
	if id < 0 {
		return 0
	}
	return a.nodes[id].subtreeLen
}

func (a *arena) pieceOf(id nodeID) piece.Piece {
	return a.nodes[id].piece
}

// build constructs a new node, recomputing its subtree length from its
// children, and appends it to the arena.
func (a *arena) build(c color, left nodeID, p piece.Piece, right nodeID) nodeID {
	return a.alloc(node{
		piece:      p,
		color:      c,
		left:       left,
		right:      right,
		subtreeLen: a.lenOf(left) + p.Length + a.lenOf(right),
	})
}

// recolor appends a copy of the node at id with a different color.
func (a *arena) recolor(id nodeID, c color) nodeID {
	if id < 0 {
		if c == black {
			return nilID
		}
		return bbID
	}
	n := a.nodes[id]
	n.color = c
	return a.alloc(n)
}

// blacken returns id recolored one step blacker (see color.blacker), or the
// appropriate sentinel leaf if id is itself a leaf.
func (a *arena) blacken(id nodeID) nodeID {
	return a.recolor(id, a.colorOf(id).blacker())
}

// redden returns id recolored one step redder (see color.redder).
func (a *arena) redden(id nodeID) nodeID {
	return a.recolor(id, a.colorOf(id).redder())
}

// isBB reports whether id is a double-black node or the double-black leaf.
func (a *arena) isBB(id nodeID) bool {
	return a.colorOf(id) == doubleBlack
}
