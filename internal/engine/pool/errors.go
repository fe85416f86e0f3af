package pool

import (
	"errors"
	"fmt"
)

// ErrClosed indicates an operation on a pool that has already been closed.
var ErrClosed = errors.New("pool: closed")

// IOError wraps a failure opening or mapping a file-backed original pool.
type IOError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("pool: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
