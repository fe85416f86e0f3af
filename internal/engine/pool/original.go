package pool

import (
	"os"

	"github.com/tliron/commonlog"
	"golang.org/x/sys/unix"
)

var log = commonlog.GetLoggerf("texteng.pool")

// Original is the read-only pool backing a buffer's initial content.
// Implementations never mutate or reorder the bytes they hand out; callers
// may retain the returned slice for as long as the Original is open.
type Original interface {
	// Slice returns the bytes in [offset, offset+length). It may block on a
	// page fault for file-backed pools.
	Slice(offset, length uint64) []byte
	// Len returns the total size of the pool in bytes.
	Len() uint64
	// Close releases any underlying resources (file descriptors, mappings).
	Close() error
	// Path returns the backing file path and true if this pool is
	// file-backed, or ("", false) for an in-memory pool.
	Path() (string, bool)
}

// memoryOriginal backs the original pool with a plain in-memory byte slice,
// used when content is supplied via NewFromReader/NewFromString rather than
// a path on disk.
type memoryOriginal struct {
	data []byte
}

// NewOriginalFromBytes wraps an in-memory byte slice as an Original pool.
// The caller must not mutate data after this call.
func NewOriginalFromBytes(data []byte) Original {
	return &memoryOriginal{data: data}
}

func (m *memoryOriginal) Slice(offset, length uint64) []byte {
	return m.data[offset : offset+length]
}

func (m *memoryOriginal) Len() uint64 {
	return uint64(len(m.data))
}

func (m *memoryOriginal) Close() error {
	return nil
}

func (m *memoryOriginal) Path() (string, bool) {
	return "", false
}

// mmapOriginal backs the original pool with a memory-mapped, read-only view
// of a file on disk. Reads never copy: Slice returns a sub-slice of the
// mapping directly, optionally passing through a ChunkCache for locality.
type mmapOriginal struct {
	file  *os.File
	path  string
	data  []byte
	cache *ChunkCache
}

// NewOriginalFromPath opens path and maps it read-only. cacheEntries sizes
// the optional byte-range cache (see ChunkCache); pass 0 to disable it.
func NewOriginalFromPath(path string, cacheEntries int) (Original, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IOError{Path: path, Err: err}
	}

	size := info.Size()
	if size == 0 {
		// mmap of a zero-length file fails on most platforms; there is
		// nothing to map, so hand back an empty in-memory pool instead.
		f.Close()
		return &memoryOriginal{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, &IOError{Path: path, Err: err}
	}

	o := &mmapOriginal{file: f, path: path, data: data}
	if cacheEntries > 0 {
		o.cache = NewChunkCache(cacheEntries)
	}
	log.Debugf("mmapped %s read-only (%d bytes, cache entries=%d)", path, size, cacheEntries)
	return o, nil
}

func (m *mmapOriginal) Slice(offset, length uint64) []byte {
	if m.cache == nil {
		log.Debugf("cold read from %s: offset=%d length=%d (no cache)", m.path, offset, length)
		return m.data[offset : offset+length]
	}
	if cached, ok := m.cache.Get(offset, length); ok {
		return cached
	}
	log.Debugf("cold read from %s: offset=%d length=%d (cache miss)", m.path, offset, length)
	b := m.data[offset : offset+length]
	m.cache.Put(offset, length, b)
	return b
}

func (m *mmapOriginal) Len() uint64 {
	return uint64(len(m.data))
}

func (m *mmapOriginal) Close() error {
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return err
		}
		m.data = nil
	}
	return m.file.Close()
}

func (m *mmapOriginal) Path() (string, bool) {
	return m.path, true
}
