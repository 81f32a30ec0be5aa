package process

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageMemRead(t *testing.T) {
	img := NewImage(ARCH_X86_64, BO_LITTLE_ENDIAN)
	require.NoError(t, img.Map(0x1000, []byte("hello"), MEM_PROT_READ))
	require.NoError(t, img.Map(0x1005, []byte(", world"), MEM_PROT_READ|MEM_PROT_WRITE))
	require.NoError(t, img.Map(0x2000, []byte("secret"), MEM_PROT_NONE))

	t.Run("single region", func(t *testing.T) {
		data, err := img.MemRead(0x1001, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte("ell"), data)
	})

	t.Run("adjacent regions", func(t *testing.T) {
		data, err := img.MemRead(0x1000, 12)
		require.NoError(t, err)
		assert.Equal(t, "hello, world", string(data))
	})

	t.Run("unmapped", func(t *testing.T) {
		_, err := img.MemRead(0x1008, 16)
		var memErr *MemoryError
		require.True(t, errors.As(err, &memErr))
		assert.Equal(t, uint64(0x1008), memErr.Address())
		assert.Equal(t, uint64(16), memErr.Size())
		assert.Equal(t, "memory read failed for 0x1008", err.Error())
	})

	t.Run("unreadable", func(t *testing.T) {
		_, err := img.MemRead(0x2000, 1)
		assert.Error(t, err)
	})

	t.Run("wrapping range", func(t *testing.T) {
		_, err := img.MemRead(^uint64(0), 2)
		assert.ErrorIs(t, err, ErrAddressInvalid)
	})

	t.Run("read at offset", func(t *testing.T) {
		buf := make([]byte, 5)
		n, err := ToPointer(img, 0x1000).ReadAt(buf, 7)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(buf))
	})
}

func TestImageMap(t *testing.T) {
	img := NewImage(ARCH_ARM64, BO_LITTLE_ENDIAN)
	require.NoError(t, img.Map(0x1000, make([]byte, 0x10), MEM_PROT_READ))
	assert.ErrorIs(t, img.Map(0x100f, []byte{1}, MEM_PROT_READ), ErrRegionOverlap)
	assert.ErrorIs(t, img.Map(0x3000, nil, MEM_PROT_READ), ErrAddressInvalid)

	region, err := img.MapAlloc([]byte{1, 2, 3}, MEM_PROT_READ)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x400000), region.Addr)
	next, err := img.MapAlloc([]byte{4}, MEM_PROT_READ)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x401000), next.Addr)

	regions, err := img.MemRegions()
	require.NoError(t, err)
	assert.Len(t, regions, 3)
	assert.Equal(t, uint64(0x1000), regions[0].Addr)

	require.NoError(t, img.Unmap(0x1000))
	assert.ErrorIs(t, img.Unmap(0x1000), ErrAddressInvalid)
	_, err = img.MemRead(0x1000, 1)
	assert.Error(t, err)
}

func TestImageMapAllocConcurrent(t *testing.T) {
	img := NewImage(ARCH_X86_64, BO_LITTLE_ENDIAN)
	const n = 32
	regions := make([]MemRegion, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			regions[i], errs[i] = img.MapAlloc([]byte{byte(i)}, MEM_PROT_READ)
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[regions[i].Addr], "region %s handed out twice", regions[i])
		seen[regions[i].Addr] = true
		data, err := img.MemRead(regions[i].Addr, 1)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, data)
	}
	mapped, err := img.MemRegions()
	require.NoError(t, err)
	assert.Len(t, mapped, n)
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int64(-1), SignExtend(uint8(0xff), 1))
	assert.Equal(t, int64(127), SignExtend(uint8(0x7f), 1))
	assert.Equal(t, int64(-32768), SignExtend(uint16(0x8000), 2))
	assert.Equal(t, int64(-2), SignExtend(uint32(0xfffffffe), 4))
	assert.Equal(t, int64(-2), SignExtend(uint64(0xfffffffffffffffe), 8))
	assert.Equal(t, int64(0x12), SignExtend(uint64(0xff12), 1))
}

func TestPointerIntegers(t *testing.T) {
	le := NewImage(ARCH_X86_64, BO_LITTLE_ENDIAN)
	require.NoError(t, le.Map(0x1000, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, MEM_PROT_READ))
	be := NewImage(ARCH_ARM, BO_BIG_ENDIAN)
	require.NoError(t, be.Map(0x1000, []byte{0x00, 0x00, 0x10, 0x20}, MEM_PROT_READ))

	v, err := ToPointer(le, 0x1000).ReadUint(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xfffffffffffffffe), v)

	i, err := ToPointer(le, 0x1000).ReadInt(4)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i)

	i, err = ToPointer(le, 0x1000).ReadInt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i)

	_, err = ToPointer(le, 0x1000).ReadUint(3)
	assert.ErrorIs(t, err, ErrSizeUnsupported)

	ptr, err := ToPointer(be, 0x1000).MemReadPointer()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1020), ptr.Address())

	_, err = Pointer{}.MemRead(1)
	assert.ErrorIs(t, err, ErrProcessDetached)
}

func TestArchPointerSize(t *testing.T) {
	size, err := ARCH_X86.PointerSize()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), size)
	_, err = ARCH_UNKNOWN.PointerSize()
	assert.ErrorIs(t, err, ErrArchUnsupported)
	assert.Equal(t, "r-x", (MEM_PROT_READ | MEM_PROT_EXEC).String())
}
