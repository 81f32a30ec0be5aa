package process

import "unsafe"

// Process is a halted debuggee. Implementations only need to be safe for use
// while the target is stopped.
type Process interface {
	Arch() Arch
	ByteOrder() ByteOrder
	MemRegions() ([]MemRegion, error)
	MemRead(addr, size uint64) ([]byte, error)
	MemReadPtr(addr, size uint64, ptr unsafe.Pointer) error
}
