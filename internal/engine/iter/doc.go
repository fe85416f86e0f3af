// Package iter provides the layered cursor stack over a piece tree view:
// chunks (raw piece byte slices) -> bytes -> runes -> grapheme clusters ->
// lines. Each layer is a value type that owns, rather than embeds, the
// layer below it, per SPEC_FULL.md 4.4 — a CharCursor, a GraphemeCursor
// and a LineCursor each drive their own ByteCursor, which drives a
// ChunkCursor.
package iter
