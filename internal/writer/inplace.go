package writer

import (
	"fmt"
	"os"

	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// op is one step of an in-place rewrite: overwrite target with the given
// bytes. bytes is fixed before the first write: either an owned copy or a
// window into the live mapping that is read when the op's WriteAt runs, in
// which case topoOrder places the op before any op that overwrites its
// source range.
type op struct {
	target [2]uint64
	bytes  []byte
}

// writeInPlace rewrites path's content to match view without disturbing
// bytes a still-live piece needs to read before they're overwritten.
//
// Phase one plans: walk view's pieces in order, compute where each lands
// in the rewritten file, and build the read-before-write dependency graph
// between pieces sourced from the original file. Phase two applies: grow
// the file if it gets longer, execute the writes in topological order,
// then truncate the file if it got shorter.
func writeInPlace(view tree.View, pools pool.Pools, path string) error {
	pieces := view.Pieces(nil)

	placements := make([]piecePlacement, len(pieces))
	var cursor uint64
	for i, p := range pieces {
		placements[i] = piecePlacement{p: p, target: [2]uint64{cursor, cursor + p.Length}}
		cursor += p.Length
	}
	finalSize := cursor

	order, cyclic := topoOrder(placements)
	if len(cyclic) > 0 {
		log.Debugf("in-place write to %s: breaking %d cyclic piece dependency(ies) by materializing their bytes up front", path, len(cyclic))
	}

	// Slice on an mmap'd pool returns a window into the live mapping, not
	// an owned copy: reading it is deferred until WriteAt actually walks
	// the bytes. That's fine for the acyclic part of the order, since a
	// topological order guarantees every piece that still needs to read a
	// byte range executes its own WriteAt — and so does its read — before
	// whichever later op would overwrite that range. Two kinds of piece
	// have no such guarantee, so their bytes are copied out of the mapping
	// right now, before the file is touched: pieces caught in a cycle, and
	// pieces whose target overlaps their own source at a different offset
	// (their own WriteAt would overwrite bytes it has not yet read).
	cyclicSet := make(map[int]bool, len(cyclic))
	for _, idx := range cyclic {
		cyclicSet[idx] = true
	}
	ops := make([]op, len(order))
	for i, idx := range order {
		pl := placements[idx]
		raw := pools.Slice(pl.p)
		src := pl.p.Offset
		movesOntoItself := src != pl.target[0] && overlaps(src, src+pl.p.Length, pl.target[0], pl.target[1])
		if pl.p.Pool == piece.Original && (cyclicSet[idx] || movesOntoItself) {
			raw = append([]byte(nil), raw...)
		}
		ops[i] = op{target: pl.target, bytes: raw}
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("writer: open %s for in-place write: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("writer: stat %s: %w", path, err)
	}
	if uint64(info.Size()) < finalSize {
		if err := f.Truncate(int64(finalSize)); err != nil {
			return fmt.Errorf("writer: extend %s to %d bytes: %w", path, finalSize, err)
		}
		log.Debugf("in-place write to %s: extended to %d bytes", path, finalSize)
	}

	for _, o := range ops {
		if _, err := f.WriteAt(o.bytes, int64(o.target[0])); err != nil {
			return fmt.Errorf("writer: overwrite [%d,%d): %w", o.target[0], o.target[1], err)
		}
	}

	if uint64(info.Size()) > finalSize {
		if err := f.Truncate(int64(finalSize)); err != nil {
			return fmt.Errorf("writer: truncate %s to %d bytes: %w", path, finalSize, err)
		}
		log.Debugf("in-place write to %s: truncated to %d bytes", path, finalSize)
	}

	return f.Sync()
}

// topoOrder returns placement indices ordered so that, for every
// original-pool piece i and every other piece j whose target range
// overlaps i's source range, i (the one being read) is ordered before j
// (the one doing the overwriting). It returns the indices involved in any cycle separately;
// those pieces have already had their bytes resolved eagerly by the
// caller (via pools.Slice, called before the file is touched), so once
// they're in the op list they carry no remaining file dependency and can
// simply be appended after the acyclic part of the order.
func topoOrder(placements []piecePlacement) (order []int, cyclic []int) {
	n := len(placements)
	adj := make([][]int, n)
	indegree := make([]int, n)

	for i, pi := range placements {
		if pi.p.Pool != piece.Original {
			continue
		}
		srcStart, srcEnd := pi.p.Offset, pi.p.Offset+pi.p.Length
		for j, pj := range placements {
			if i == j {
				continue
			}
			if overlaps(srcStart, srcEnd, pj.target[0], pj.target[1]) {
				adj[i] = append(adj[i], j)
				indegree[j]++
			}
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	visited := make([]bool, n)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		visited[i] = true
		order = append(order, i)
		for _, j := range adj[i] {
			indegree[j]--
			if indegree[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if len(order) < n {
		for i := 0; i < n; i++ {
			if !visited[i] {
				cyclic = append(cyclic, i)
				order = append(order, i)
			}
		}
	}

	return order, cyclic
}

func overlaps(aStart, aEnd, bStart, bEnd uint64) bool {
	return aStart < bEnd && bStart < aEnd
}
