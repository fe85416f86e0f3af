// Package writer serializes a piece-tree view back to disk.
//
// The common case — writing to a fresh path, or to a document that was
// never opened from a memory-mapped file — just streams chunks to a temp
// file and renames it into place. Writing a mmap-backed document back to
// its own path is the hard case: a naive overwrite could clobber bytes a
// still-live piece needs to read, since those pieces reference the old
// file content directly rather than owning a copy. WriteTo detects that
// case and falls back to a two-phase in-place rewrite.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/texteng/internal/engine/iter"
	"github.com/dshills/texteng/internal/engine/piece"
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLoggerf("texteng.writer")

// WriteTo serializes view to path. If pools' original pool is not
// file-backed, or path names a different file than that pool's backing
// file, the view is streamed to a temp file and atomically renamed into
// place. If path is exactly the file backing the original pool, WriteTo
// performs an in-place rewrite instead, since a plain stream-and-rename
// would first need to read the old file through the same mapping it is
// about to replace.
func WriteTo(view tree.View, pools pool.Pools, path string) error {
	if backing, ok := backingPath(pools); ok && samePath(backing, path) {
		return writeInPlace(view, pools, path)
	}
	return writeViaTemp(view, pools, path)
}

func backingPath(pools pool.Pools) (string, bool) {
	if pools.Original == nil {
		return "", false
	}
	return pools.Original.Path()
}

func samePath(a, b string) bool {
	ra, errA := filepath.Abs(a)
	rb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ra == rb
}

// writeViaTemp streams view's content to a temp file in target's
// directory and renames it over target, so a crash mid-write never
// leaves a truncated file at path.
func writeViaTemp(view tree.View, pools pool.Pools, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".texteng-write-*")
	if err != nil {
		return fmt.Errorf("writer: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := streamChunks(view, pools, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writer: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writer: rename into place: %w", err)
	}
	return nil
}

func streamChunks(view tree.View, pools pool.Pools, f *os.File) error {
	c := iter.Chunks(view, pools)
	for {
		chunk, ok := c.Current()
		if !ok {
			break
		}
		if _, err := f.Write(chunk); err != nil {
			return fmt.Errorf("writer: write chunk: %w", err)
		}
		if !c.Next() {
			break
		}
	}
	return nil
}

// piecePlacement is one piece of view paired with the byte range it will
// occupy in the rewritten file.
type piecePlacement struct {
	p      piece.Piece
	target [2]uint64 // [start, end) within the target file
}
