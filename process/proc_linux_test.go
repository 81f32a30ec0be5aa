//go:build linux

package process

import (
	"errors"
	"os"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestProcSelf(t *testing.T) {
	proc, err := Attach(os.Getpid())
	require.NoError(t, err)

	data := []byte("live memory")
	got, err := proc.MemRead(uint64(uintptr(unsafe.Pointer(&data[0]))), uint64(len(data)))
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENOSYS) {
		t.Skip("process_vm_readv not permitted here")
	}
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = proc.MemRead(0, 8)
	assert.Error(t, err)

	regions, err := proc.MemRegions()
	require.NoError(t, err)
	assert.NotEmpty(t, regions)
}

func TestProcHugeRead(t *testing.T) {
	proc, err := Attach(os.Getpid())
	require.NoError(t, err)

	data := []byte("short")
	addr := uint64(uintptr(unsafe.Pointer(&data[0])))
	for _, size := range []uint64{^uint64(0), 1 << 62, 1 << 40} {
		_, err := proc.MemRead(addr, size)
		var memErr *MemoryError
		require.True(t, errors.As(err, &memErr), "size %#x", size)
		assert.Equal(t, size, memErr.Size())
	}
	var buf [8]byte
	err = proc.MemReadPtr(addr, ^uint64(0), unsafe.Pointer(&buf[0]))
	assert.ErrorIs(t, err, ErrAddressInvalid)
}

func TestAttachInvalid(t *testing.T) {
	_, err := Attach(0)
	assert.ErrorIs(t, err, ErrProcessDetached)
}

func TestParseMaps(t *testing.T) {
	maps := `00400000-0040b000 r-xp 00000000 08:02 173521 /usr/bin/cat
0060a000-0060b000 rw-p 0000a000 08:02 173521 /usr/bin/cat
7ffd5c1e2000-7ffd5c203000 ---p 00000000 00:00 0 [stack]
`
	regions, err := parseMaps(strings.NewReader(maps))
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, MemRegion{Addr: 0x400000, Size: 0xb000, Prot: MEM_PROT_READ | MEM_PROT_EXEC}, regions[0])
	assert.Equal(t, MEM_PROT_READ|MEM_PROT_WRITE, regions[1].Prot)
	assert.Equal(t, MEM_PROT_NONE, regions[2].Prot)

	_, err = parseMaps(strings.NewReader("zzzz r-xp\n"))
	assert.Error(t, err)
}
