package process

import (
	"slices"
	"sync"
	"unsafe"
)

const imagePageSize = 0x1000

type segment struct {
	MemRegion
	data []byte
}

// Image is a debuggee captured as a set of mapped byte regions.
type Image struct {
	arch    Arch
	order   ByteOrder
	mapAddr uint64
	mu      sync.RWMutex
	segs    []*segment
}

var _ Process = (*Image)(nil)

func NewImage(arch Arch, order ByteOrder) *Image {
	return &Image{arch: arch, order: order, mapAddr: 0x400000}
}

func (img *Image) Arch() Arch {
	return img.arch
}

func (img *Image) ByteOrder() ByteOrder {
	return img.order
}

func (img *Image) Map(addr uint64, data []byte, prot MemProt) error {
	size := uint64(len(data))
	if size == 0 || addr+size < addr {
		return ErrAddressInvalid
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.mapLocked(addr, data, prot)
}

func (img *Image) mapLocked(addr uint64, data []byte, prot MemProt) error {
	size := uint64(len(data))
	for _, seg := range img.segs {
		if addr < seg.End() && seg.Addr < addr+size {
			return ErrRegionOverlap
		}
	}
	seg := &segment{MemRegion{addr, size, prot}, slices.Clone(data)}
	i, _ := slices.BinarySearchFunc(img.segs, addr, func(s *segment, addr uint64) int {
		switch {
		case s.Addr < addr:
			return -1
		case s.Addr > addr:
			return 1
		}
		return 0
	})
	img.segs = slices.Insert(img.segs, i, seg)
	if end := pageAlign(addr + size); end > img.mapAddr {
		img.mapAddr = end
	}
	return nil
}

// MapAlloc maps data at the next free page and returns the region it landed in.
func (img *Image) MapAlloc(data []byte, prot MemProt) (MemRegion, error) {
	size := uint64(len(data))
	img.mu.Lock()
	defer img.mu.Unlock()
	addr := img.mapAddr
	if size == 0 || addr+size < addr {
		return MemRegion{}, ErrAddressInvalid
	}
	if err := img.mapLocked(addr, data, prot); err != nil {
		return MemRegion{}, err
	}
	return MemRegion{addr, size, prot}, nil
}

func (img *Image) Unmap(addr uint64) error {
	img.mu.Lock()
	defer img.mu.Unlock()
	i := slices.IndexFunc(img.segs, func(s *segment) bool { return s.Addr == addr })
	if i == -1 {
		return ErrAddressInvalid
	}
	img.segs = slices.Delete(img.segs, i, i+1)
	return nil
}

func (img *Image) MemRegions() ([]MemRegion, error) {
	img.mu.RLock()
	defer img.mu.RUnlock()
	regions := make([]MemRegion, len(img.segs))
	for i, seg := range img.segs {
		regions[i] = seg.MemRegion
	}
	return regions, nil
}

func (img *Image) MemRead(addr, size uint64) ([]byte, error) {
	img.mu.RLock()
	defer img.mu.RUnlock()
	if err := img.check(addr, size); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	img.copy(addr, data)
	return data, nil
}

func (img *Image) MemReadPtr(addr, size uint64, ptr unsafe.Pointer) error {
	img.mu.RLock()
	defer img.mu.RUnlock()
	if err := img.check(addr, size); err != nil {
		return err
	}
	img.copy(addr, unsafe.Slice((*byte)(ptr), size))
	return nil
}

func (img *Image) find(addr uint64) *segment {
	i, found := slices.BinarySearchFunc(img.segs, addr, func(s *segment, addr uint64) int {
		switch {
		case s.End() <= addr:
			return -1
		case s.Addr > addr:
			return 1
		}
		return 0
	})
	if !found {
		return nil
	}
	return img.segs[i]
}

func (img *Image) check(addr, size uint64) error {
	if addr+size < addr {
		return NewMemoryError(addr, size, ErrAddressInvalid)
	}
	for cur, end := addr, addr+size; cur < end; {
		seg := img.find(cur)
		if seg == nil || seg.Prot&MEM_PROT_READ == 0 {
			return NewMemoryError(addr, size, nil)
		}
		cur = seg.End()
	}
	return nil
}

func (img *Image) copy(addr uint64, b []byte) {
	for len(b) > 0 {
		seg := img.find(addr)
		n := copy(b, seg.data[addr-seg.Addr:])
		b = b[n:]
		addr += uint64(n)
	}
}

func pageAlign(a uint64) uint64 {
	return (a + imagePageSize - 1) &^ (imagePageSize - 1)
}
