package process

import (
	"encoding/binary"
	"fmt"
)

type ByteOrder int

const (
	BO_LITTLE_ENDIAN ByteOrder = iota
	BO_BIG_ENDIAN
)

func (bo ByteOrder) binary() binary.ByteOrder {
	if bo == BO_BIG_ENDIAN {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

type MemProt int

const (
	MEM_PROT_NONE MemProt = 0
	MEM_PROT_READ MemProt = 1 << (iota - 1)
	MEM_PROT_WRITE
	MEM_PROT_EXEC

	MEM_PROT_ALL = MEM_PROT_READ | MEM_PROT_WRITE | MEM_PROT_EXEC
)

type MemRegion struct {
	Addr, Size uint64
	Prot       MemProt
}

func (r MemRegion) End() uint64 {
	return r.Addr + r.Size
}

func (r MemRegion) Contains(addr uint64) bool {
	return addr >= r.Addr && addr < r.End()
}

func (r MemRegion) String() string {
	return fmt.Sprintf("%016X-%016X %s", r.Addr, r.End(), r.Prot)
}

func (prot MemProt) String() string {
	b := []byte("---")
	if prot&MEM_PROT_READ != 0 {
		b[0] = 'r'
	}
	if prot&MEM_PROT_WRITE != 0 {
		b[1] = 'w'
	}
	if prot&MEM_PROT_EXEC != 0 {
		b[2] = 'x'
	}
	return string(b)
}
