// Package tree implements the piece tree: a red-black tree keyed by
// cumulative byte length, whose leaves-to-root order gives the document's
// byte sequence as the in-order concatenation of piece ranges.
//
// Deletion uses the four-color scheme (Red, Black, DoubleBlack,
// NegativeBlack) for purely functional rebalancing, so every mutation
// produces a new View sharing as much of the old tree's structure as
// possible rather than mutating nodes another View may still be reading.
package tree
