package tree

import (
	"testing"

	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
)

// text materializes v's content by walking its pieces directly, without
// depending on package iter (which itself depends on tree).
func text(v View, pools pool.Pools) string {
	var b []byte
	for _, p := range v.Pieces(nil) {
		b = append(b, pools.Slice(p)...)
	}
	return string(b)
}

func addPools(s string) (pool.Pools, *pool.Add) {
	add := pool.NewAdd(len(s))
	return pool.Pools{Original: pool.NewOriginalFromBytes(nil), Add: add}, add
}

func TestEmptyView(t *testing.T) {
	v := Empty()
	if v.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", v.Len())
	}
	if len(v.Pieces(nil)) != 0 {
		t.Fatal("expected no pieces")
	}
}

func TestNewFromOriginal(t *testing.T) {
	v := NewFromOriginal(11)
	if v.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", v.Len())
	}
	pools := pool.Pools{Original: pool.NewOriginalFromBytes([]byte("hello world")), Add: pool.NewAdd(0)}
	if got := text(v, pools); got != "hello world" {
		t.Fatalf("text = %q, want %q", got, "hello world")
	}
}

func TestInsertAtStart(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 5})

	off2 := add.AppendString("ab")
	v = v.InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off2, Length: 2})

	if got := text(v, pools); got != "abhello" {
		t.Fatalf("text = %q, want %q", got, "abhello")
	}
}

func TestInsertAtMiddlePreservesTail(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello world")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 11})

	off2 := add.AppendString(", dear reader,")
	v = v.InsertAt(5, piece.Piece{Pool: piece.Add, Offset: off2, Length: 14})

	want := "hello, dear reader, world"
	if got := text(v, pools); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if v.Len() != uint64(len(want)) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(want))
	}
}

func TestInsertAtEnd(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 5})

	off2 := add.AppendString(" world")
	v = v.InsertAt(v.Len(), piece.Piece{Pool: piece.Add, Offset: off2, Length: 6})

	if got := text(v, pools); got != "hello world" {
		t.Fatalf("text = %q, want %q", got, "hello world")
	}
}

func TestRemoveRangeMiddle(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello, dear reader, world")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: uint64(len("hello, dear reader, world"))})

	v = v.RemoveRange(5, 19)

	want := "hello world"
	if got := text(v, pools); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if v.Len() != uint64(len(want)) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(want))
	}
}

func TestRemoveRangeWhole(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 5})

	v = v.RemoveRange(0, 5)

	if v.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", v.Len())
	}
	if got := text(v, pools); got != "" {
		t.Fatalf("text = %q, want empty", got)
	}
}

func TestManyInsertsStayBalanced(t *testing.T) {
	pools, add := addPools("")
	v := Empty()
	var want []byte
	for i := 0; i < 200; i++ {
		off := add.AppendString("x")
		v = v.InsertAt(v.Len(), piece.Piece{Pool: piece.Add, Offset: off, Length: 1})
		want = append(want, 'x')
	}
	if got := text(v, pools); got != string(want) {
		t.Fatalf("text length = %d, want %d", len(got), len(want))
	}
	if v.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", v.Len())
	}
	if !checkRBInvariants(v) {
		t.Fatal("red-black invariants violated after 200 appends")
	}
}

func TestSliceWindowsPieces(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello world")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 11})

	sub := v.Slice(6, 11)
	if got := text(sub, pools); got != "world" {
		t.Fatalf("text = %q, want %q", got, "world")
	}
	if sub.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", sub.Len())
	}
}

func TestSliceClampsOutOfRange(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hi")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 2})

	sub := v.Slice(1, 100)
	if got := text(sub, pools); got != "i" {
		t.Fatalf("text = %q, want %q", got, "i")
	}
}

func TestPieceAt(t *testing.T) {
	pools, add := addPools("")
	off := add.AppendString("hello")
	v := Empty().InsertAt(0, piece.Piece{Pool: piece.Add, Offset: off, Length: 5})
	off2 := add.AppendString("world")
	v = v.InsertAt(v.Len(), piece.Piece{Pool: piece.Add, Offset: off2, Length: 5})

	p, pieceStart, offInPiece, ok := v.PieceAt(7)
	if !ok {
		t.Fatal("expected a piece at offset 7")
	}
	if pieceStart != 5 || offInPiece != 2 {
		t.Fatalf("pieceStart=%d offInPiece=%d, want 5,2", pieceStart, offInPiece)
	}
	got := string(pools.Slice(p))
	if got != "world" {
		t.Fatalf("piece text = %q, want %q", got, "world")
	}
}

func TestPieceAtOutOfRange(t *testing.T) {
	v := NewFromOriginal(5)
	if _, _, _, ok := v.PieceAt(5); ok {
		t.Fatal("expected PieceAt at the view's length to report not found")
	}
}
