// Package piece defines the piece value type referenced by the piece tree.
//
// A Piece never owns bytes itself; it names a half-open byte range inside
// one of the two storage pools (the read-only original pool or the
// append-only add pool). Pieces are small, comparable, copyable values —
// the tree stores them by value in its arena, never by pointer.
package piece

import (
	"fmt"
	"sync/atomic"
)

// Pool identifies which storage pool a Piece's bytes live in.
type Pool uint8

const (
	// Original identifies the read-only pool backing the buffer's initial
	// content (typically a memory-mapped file or a loaded byte slice).
	Original Pool = iota
	// Add identifies the append-only pool holding bytes inserted after the
	// buffer was opened.
	Add
)

// String implements fmt.Stringer.
func (p Pool) String() string {
	switch p {
	case Original:
		return "original"
	case Add:
		return "add"
	default:
		return fmt.Sprintf("Pool(%d)", uint8(p))
	}
}

// Piece names a byte range [Offset, Offset+Length) inside Pool.
//
// Generation disambiguates pieces that would otherwise be byte-for-byte
// identical references (the same pool, offset, and length), which happens
// when the same text is inserted at the same place more than once; it lets
// a Mark (see package mark) tell two such insertions apart.
type Piece struct {
	Pool       Pool
	Offset     uint64
	Length     uint64
	Generation uint64
}

// End returns the exclusive end offset of the piece within its pool.
func (p Piece) End() uint64 {
	return p.Offset + p.Length
}

// IsEmpty reports whether the piece spans zero bytes.
func (p Piece) IsEmpty() bool {
	return p.Length == 0
}

// Contains reports whether poolOffset falls within [Offset, End()).
func (p Piece) Contains(poolOffset uint64) bool {
	return poolOffset >= p.Offset && poolOffset < p.End()
}

// Split divides the piece at the given byte offset relative to the start
// of the piece (0 < at < Length), returning the left and right halves.
// Both halves keep the piece's Generation: a split does not create a new
// logical insertion, just a narrower view of the same one.
func (p Piece) Split(at uint64) (left, right Piece) {
	left = Piece{Pool: p.Pool, Offset: p.Offset, Length: at, Generation: p.Generation}
	right = Piece{Pool: p.Pool, Offset: p.Offset + at, Length: p.Length - at, Generation: p.Generation}
	return left, right
}

// generationCounter mints monotonically increasing generation numbers,
// the same atomic-counter idiom used for RevisionID/SnapshotID.
var generationCounter uint64

// NextGeneration returns a new unique generation number.
func NextGeneration() uint64 {
	return atomic.AddUint64(&generationCounter, 1)
}
