// Package undo implements the undo/redo history as a DAG of snapshot
// nodes rather than a linear stack, so that undoing twice and then making
// a new edit does not discard the abandoned branch — it stays reachable by
// walking back down through its parent.
package undo

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/texteng/internal/engine/tree"
)

// ErrNoParent is returned by Undo when current is the root node.
var ErrNoParent = errors.New("undo: no parent node")

// ErrNoChild is returned by Redo/RedoTo when current has no children,
// or when RedoTo names a child that does not belong to current.
var ErrNoChild = errors.New("undo: no child node")

// NodeID uniquely identifies a node in the undo graph.
type NodeID uint64

var idCounter uint64

// NextNodeID mints a new unique node ID.
func NextNodeID() NodeID {
	return NodeID(atomic.AddUint64(&idCounter, 1))
}

// Node is one snapshot in the undo graph: an immutable View plus its
// position among its siblings.
type Node struct {
	ID        NodeID
	View      tree.View
	Parent    NodeID // zero for the root
	Children  []NodeID
	Timestamp time.Time
}

// NodeInfo is a read-only summary of a Node, returned by introspection
// methods so callers can't mutate graph internals.
type NodeInfo struct {
	ID        NodeID
	Parent    NodeID
	Children  []NodeID
	Timestamp time.Time
}

// Graph holds every snapshot taken during an editing session and tracks
// which one is current. It is grown, never pruned: every node created
// during a session stays reachable for the session's lifetime, which is
// what makes it the authoritative undo history rather than a bounded
// cache of recent edits. The zero NodeID never names a real node; it
// marks "no parent" for the root.
type Graph struct {
	mu      sync.Mutex
	nodes   map[NodeID]*Node
	root    NodeID
	current NodeID
}

// New creates a Graph rooted at the given initial view.
func New(initial tree.View) *Graph {
	g := &Graph{nodes: make(map[NodeID]*Node)}
	root := &Node{ID: NextNodeID(), View: initial, Timestamp: timeNow()}
	g.nodes[root.ID] = root
	g.root = root.ID
	g.current = root.ID
	return g
}

// timeNow is a seam kept so tests can observe deterministic timestamps if
// they need to; production code always wants the real clock.
var timeNow = time.Now

// Snapshot records view as a new child of the current node and makes it
// current. Returns the new node's ID.
func (g *Graph) Snapshot(view tree.View) NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := &Node{ID: NextNodeID(), View: view, Parent: g.current, Timestamp: timeNow()}
	g.nodes[n.ID] = n
	if parent, ok := g.nodes[g.current]; ok {
		parent.Children = append(parent.Children, n.ID)
	}
	g.current = n.ID
	return n.ID
}

// Undo moves current to its parent, returning the resulting View. Returns
// ErrNoParent if current is the root.
func (g *Graph) Undo() (tree.View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur := g.nodes[g.current]
	if cur.ID == g.root {
		return tree.View{}, ErrNoParent
	}
	g.current = cur.Parent
	return g.nodes[g.current].View, nil
}

// Redo moves current to its child with the largest NodeID — the most
// recently created branch — returning the resulting View. Returns
// ErrNoChild if current has no children.
func (g *Graph) Redo() (tree.View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur := g.nodes[g.current]
	if len(cur.Children) == 0 {
		return tree.View{}, ErrNoChild
	}
	var best NodeID
	for _, id := range cur.Children {
		if id > best {
			best = id
		}
	}
	g.current = best
	return g.nodes[g.current].View, nil
}

// RedoTo moves current to a specific child, for callers that want to pick
// an abandoned branch rather than the most recent one.
func (g *Graph) RedoTo(child NodeID) (tree.View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur := g.nodes[g.current]
	for _, id := range cur.Children {
		if id == child {
			g.current = child
			return g.nodes[child].View, nil
		}
	}
	return tree.View{}, ErrNoChild
}

// Current returns the View at the current node.
func (g *Graph) Current() tree.View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodes[g.current].View
}

// CurrentID returns the current node's ID.
func (g *Graph) CurrentID() NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// CanUndo reports whether the current node has a parent.
func (g *Graph) CanUndo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != g.root
}

// CanRedo reports whether the current node has any children.
func (g *Graph) CanRedo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes[g.current].Children) > 0
}

// Info returns a read-only summary of a node.
func (g *Graph) Info(id NodeID) (NodeInfo, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return NodeInfo{}, false
	}
	children := make([]NodeID, len(n.Children))
	copy(children, n.Children)
	return NodeInfo{ID: n.ID, Parent: n.Parent, Children: children, Timestamp: n.Timestamp}, true
}

// Size returns the number of nodes currently retained.
func (g *Graph) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}
