// Package pool implements the two storage pools behind a piece tree: the
// read-only Original pool (loaded once, never mutated — typically a
// memory-mapped file) and the append-only Add pool (grows with every
// insertion, never rewritten in place).
//
// Neither pool ever reorders or mutates bytes once they are visible to a
// reader. A Piece (package piece) names a half-open range inside one pool;
// this package is only responsible for turning such a range into a []byte.
package pool
