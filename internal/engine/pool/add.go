package pool

import "sync"

// Add is the append-only pool holding bytes inserted after a buffer was
// opened. Appends are serialized; reads of already-appended bytes need no
// synchronization because a Piece never references bytes beyond the length
// the Add pool had at the moment the piece was created (the single-writer
// model this whole engine assumes — see Piece generations in package
// piece).
type Add struct {
	mu   sync.Mutex
	data []byte
}

// NewAdd creates an empty add pool. initialCap pre-allocates capacity to
// reduce reallocation during a long editing session; pass 0 for no
// preallocation.
func NewAdd(initialCap int) *Add {
	return &Add{data: make([]byte, 0, initialCap)}
}

// Append writes b to the end of the pool and returns the offset it was
// written at.
func (a *Add) Append(b []byte) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	offset := uint64(len(a.data))
	a.data = append(a.data, b...)
	return offset
}

// AppendString is a convenience wrapper over Append for string input.
func (a *Add) AppendString(s string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	offset := uint64(len(a.data))
	a.data = append(a.data, s...)
	return offset
}

// Slice returns the bytes in [offset, offset+length). The caller must not
// mutate the returned slice.
func (a *Add) Slice(offset, length uint64) []byte {
	return a.data[offset : offset+length]
}

// Len returns the current size of the pool in bytes.
func (a *Add) Len() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return uint64(len(a.data))
}
