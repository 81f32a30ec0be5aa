//go:build linux

package process

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Proc reads a live process through process_vm_readv. The caller is expected
// to keep the target stopped while values are formatted.
type Proc struct {
	pid  int
	arch Arch
}

var _ Process = (*Proc)(nil)

func Attach(pid int) (*Proc, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("attach %d: %w", pid, ErrProcessDetached)
	}
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return nil, fmt.Errorf("attach %d: %w", pid, err)
	}
	arch := HostArch()
	if arch == ARCH_UNKNOWN {
		return nil, ErrArchUnsupported
	}
	return &Proc{pid, arch}, nil
}

func (p *Proc) Pid() int {
	return p.pid
}

func (p *Proc) Arch() Arch {
	return p.arch
}

func (p *Proc) ByteOrder() ByteOrder {
	return BO_LITTLE_ENDIAN
}

func (p *Proc) MemRead(addr, size uint64) ([]byte, error) {
	if err := p.check(addr, size); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	err := p.readv(addr, data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Proc) MemReadPtr(addr, size uint64, ptr unsafe.Pointer) error {
	if size > math.MaxInt || addr+size < addr {
		return NewMemoryError(addr, size, ErrAddressInvalid)
	}
	return p.readv(addr, unsafe.Slice((*byte)(ptr), size))
}

// check requires [addr, addr+size) to lie in readable mappings so that a
// garbage length fails before anything is allocated for it.
func (p *Proc) check(addr, size uint64) error {
	if size > math.MaxInt || addr+size < addr {
		return NewMemoryError(addr, size, ErrAddressInvalid)
	}
	if size == 0 {
		return nil
	}
	regions, err := p.MemRegions()
	if err != nil {
		return NewMemoryError(addr, size, err)
	}
	cur, end := addr, addr+size
	for _, region := range regions {
		if region.Contains(cur) {
			if region.Prot&MEM_PROT_READ == 0 {
				break
			}
			cur = region.End()
			if cur >= end {
				return nil
			}
		}
	}
	return NewMemoryError(addr, size, nil)
}

func (p *Proc) readv(addr uint64, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &b[0]}}
	local[0].SetLen(len(b))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(b)}}
	n, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return NewMemoryError(addr, uint64(len(b)), err)
	} else if n != len(b) {
		return NewMemoryError(addr, uint64(len(b)), io.ErrUnexpectedEOF)
	}
	return nil
}

func (p *Proc) MemRegions() ([]MemRegion, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", p.pid))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMaps(f)
}

// parseMaps reads the /proc/<pid>/maps format:
// 00400000-0040b000 r-xp 00000000 08:02 173521 /usr/bin/cat
func parseMaps(r io.Reader) ([]MemRegion, error) {
	var regions []MemRegion
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		lo, hi, ok := strings.Cut(fields[0], "-")
		if !ok {
			return nil, fmt.Errorf("maps: malformed range %q", fields[0])
		}
		start, err := strconv.ParseUint(lo, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("maps: %w", err)
		}
		end, err := strconv.ParseUint(hi, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("maps: %w", err)
		}
		var prot MemProt
		perms := fields[1]
		if strings.IndexByte(perms, 'r') != -1 {
			prot |= MEM_PROT_READ
		}
		if strings.IndexByte(perms, 'w') != -1 {
			prot |= MEM_PROT_WRITE
		}
		if strings.IndexByte(perms, 'x') != -1 {
			prot |= MEM_PROT_EXEC
		}
		regions = append(regions, MemRegion{Addr: start, Size: end - start, Prot: prot})
	}
	return regions, scanner.Err()
}
