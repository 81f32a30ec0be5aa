package process

import (
	"errors"
	"fmt"
)

var (
	ErrArchUnsupported = errors.New("architecture unsupported")
	ErrAddressInvalid  = errors.New("address invalid")
	ErrRegionOverlap   = errors.New("region overlap")
	ErrSizeUnsupported = errors.New("integer size unsupported")
	ErrProcessDetached = errors.New("process detached")
)

// MemoryError reports a remote read that could not be satisfied in full.
type MemoryError struct {
	addr uint64
	size uint64
	err  error
}

func NewMemoryError(addr, size uint64, err error) *MemoryError {
	return &MemoryError{addr, size, err}
}

func (e *MemoryError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("memory read failed for 0x%x: %v", e.addr, e.err)
	}
	return fmt.Sprintf("memory read failed for 0x%x", e.addr)
}

func (e *MemoryError) Unwrap() error {
	return e.err
}

func (e *MemoryError) Address() uint64 {
	return e.addr
}

func (e *MemoryError) Size() uint64 {
	return e.size
}
