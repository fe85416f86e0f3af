package piece

import "testing"

func TestEndAndIsEmpty(t *testing.T) {
	p := Piece{Pool: Add, Offset: 10, Length: 5}
	if p.End() != 15 {
		t.Fatalf("End() = %d, want 15", p.End())
	}
	if p.IsEmpty() {
		t.Fatal("expected non-empty piece")
	}
	if !(Piece{Length: 0}).IsEmpty() {
		t.Fatal("expected zero-length piece to be empty")
	}
}

func TestContains(t *testing.T) {
	p := Piece{Offset: 5, Length: 3} // [5,8)
	cases := map[uint64]bool{4: false, 5: true, 7: true, 8: false}
	for offset, want := range cases {
		if got := p.Contains(offset); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestSplitPreservesGenerationAndLength(t *testing.T) {
	p := Piece{Pool: Original, Offset: 10, Length: 10, Generation: 42}
	left, right := p.Split(4)

	if left != (Piece{Pool: Original, Offset: 10, Length: 4, Generation: 42}) {
		t.Fatalf("left = %+v, unexpected", left)
	}
	if right != (Piece{Pool: Original, Offset: 14, Length: 6, Generation: 42}) {
		t.Fatalf("right = %+v, unexpected", right)
	}
	if left.Length+right.Length != p.Length {
		t.Fatalf("split halves don't sum to original length: %d + %d != %d", left.Length, right.Length, p.Length)
	}
}

func TestPoolString(t *testing.T) {
	if Original.String() != "original" {
		t.Fatalf("Original.String() = %q, want %q", Original.String(), "original")
	}
	if Add.String() != "add" {
		t.Fatalf("Add.String() = %q, want %q", Add.String(), "add")
	}
}

func TestNextGenerationIsMonotonicAndUnique(t *testing.T) {
	a := NextGeneration()
	b := NextGeneration()
	if b <= a {
		t.Fatalf("NextGeneration() not increasing: %d then %d", a, b)
	}
}
