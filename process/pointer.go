package process

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

type Pointer struct {
	proc Process
	addr uint64
}

func ToPointer(proc Process, addr uint64) Pointer {
	return Pointer{proc, addr}
}

func (p Pointer) IsNil() bool {
	return p.addr == 0
}

func (p Pointer) Address() uint64 {
	return p.addr
}

func (p Pointer) Process() Process {
	return p.proc
}

func (p Pointer) Add(offset uint64) Pointer {
	return Pointer{p.proc, p.addr + offset}
}

func (p Pointer) Sub(offset uint64) Pointer {
	return Pointer{p.proc, p.addr - offset}
}

func (p Pointer) MemRead(size uint64) ([]byte, error) {
	if p.proc == nil {
		return nil, ErrProcessDetached
	}
	return p.proc.MemRead(p.addr, size)
}

func (p Pointer) MemReadPtr(size uint64, ptr unsafe.Pointer) error {
	if p.proc == nil {
		return ErrProcessDetached
	}
	return p.proc.MemReadPtr(p.addr, size, ptr)
}

func (p Pointer) ReadUint(size uint64) (uint64, error) {
	switch size {
	case 1, 2, 4, 8:
	default:
		return 0, ErrSizeUnsupported
	}
	b, err := p.MemRead(size)
	if err != nil {
		return 0, err
	}
	return DecodeUint(b, p.proc.ByteOrder())
}

func (p Pointer) ReadInt(size uint64) (int64, error) {
	v, err := p.ReadUint(size)
	if err != nil {
		return 0, err
	}
	return SignExtend(v, size), nil
}

func (p Pointer) MemReadPointer() (ptr Pointer, err error) {
	if p.proc == nil {
		err = ErrProcessDetached
		return
	}
	size, err := p.proc.Arch().PointerSize()
	if err != nil {
		return
	}
	addr, err := p.ReadUint(size)
	if err != nil {
		return
	}
	ptr.proc, ptr.addr = p.proc, addr
	return
}

func (p Pointer) ReadAt(b []byte, off int64) (n int, err error) {
	if len(b) == 0 {
		return 0, nil
	}
	err = p.Add(uint64(off)).MemReadPtr(uint64(len(b)), unsafe.Pointer(unsafe.SliceData(b)))
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

func DecodeUint(b []byte, bo ByteOrder) (uint64, error) {
	order := bo.binary()
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	}
	return 0, ErrSizeUnsupported
}

// SignExtend treats the low size bytes of v as a two's complement integer.
func SignExtend[U constraints.Unsigned](v U, size uint64) int64 {
	shift := 64 - size*8
	return int64(uint64(v)<<shift) >> shift
}
