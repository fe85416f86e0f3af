package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

func TestTopoOrderAcyclic(t *testing.T) {
	// original[0,5) -> target[0,5); add-pool text -> target[5,19);
	// original[5,11) -> target[19,25): C must precede B.
	placements := []piecePlacement{
		{p: piece.Piece{Pool: piece.Original, Offset: 0, Length: 5}, target: [2]uint64{0, 5}},
		{p: piece.Piece{Pool: piece.Add, Offset: 0, Length: 14}, target: [2]uint64{5, 19}},
		{p: piece.Piece{Pool: piece.Original, Offset: 5, Length: 6}, target: [2]uint64{19, 25}},
	}
	order, cyclic := topoOrder(placements)
	if len(cyclic) != 0 {
		t.Fatalf("expected no cycle, got %v", cyclic)
	}
	posOf := func(idx int) int {
		for i, v := range order {
			if v == idx {
				return i
			}
		}
		t.Fatalf("index %d missing from order %v", idx, order)
		return -1
	}
	if posOf(2) > posOf(1) {
		t.Fatalf("piece C (index 2) must be ordered before piece B (index 1), got order %v", order)
	}
}

func TestTopoOrderBreaksCycle(t *testing.T) {
	// Two original-pool pieces whose positions are swapped: each one's
	// source range exactly overlaps the other's target range.
	placements := []piecePlacement{
		{p: piece.Piece{Pool: piece.Original, Offset: 2, Length: 2}, target: [2]uint64{0, 2}},
		{p: piece.Piece{Pool: piece.Original, Offset: 0, Length: 2}, target: [2]uint64{2, 4}},
	}
	order, cyclic := topoOrder(placements)
	if len(order) != len(placements) {
		t.Fatalf("expected every index to appear in order, got %v", order)
	}
	if len(cyclic) != 2 {
		t.Fatalf("expected both indices caught in the cycle, got %v", cyclic)
	}
}

func TestWriteInPlaceBreaksCycleCorrectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swap.txt")
	if err := os.WriteFile(path, []byte("AABB"), 0o644); err != nil {
		t.Fatal(err)
	}

	original, err := pool.NewOriginalFromPath(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer original.Close()
	pools := pool.Pools{Original: original, Add: pool.NewAdd(0)}

	// Build a view with the two halves swapped: "BBAA".
	v := tree.Empty()
	v = v.InsertAt(0, piece.Piece{Pool: piece.Original, Offset: 2, Length: 2, Generation: piece.NextGeneration()})
	v = v.InsertAt(2, piece.Piece{Pool: piece.Original, Offset: 0, Length: 2, Generation: piece.NextGeneration()})

	if err := writeInPlace(v, pools, path); err != nil {
		t.Fatalf("writeInPlace failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "BBAA" {
		t.Fatalf("got %q, want %q", got, "BBAA")
	}
}
