package adt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/debugger/host"
	"github.com/wnxd/adtfmt/process"
)

func newImage() *process.Image {
	return process.NewImage(process.ARCH_X86_64, process.BO_LITTLE_ENDIAN)
}

// putPair maps a {pointer, isize} pair and returns its address.
func putPair(t *testing.T, img *process.Image, ptr uint64, size int64, extra ...uint64) uint64 {
	raw := binary.LittleEndian.AppendUint64(nil, ptr)
	raw = binary.LittleEndian.AppendUint64(raw, uint64(size))
	for _, e := range extra {
		raw = binary.LittleEndian.AppendUint64(raw, e)
	}
	region, err := img.MapAlloc(raw, process.MEM_PROT_READ)
	require.NoError(t, err)
	return region.Addr
}

func putBytes(t *testing.T, img *process.Image, data []byte) uint64 {
	region, err := img.MapAlloc(data, process.MEM_PROT_READ)
	require.NoError(t, err)
	return region.Addr
}

func stringView(t *testing.T, img *process.Image, ptr uint64, size int64) debugger.Value {
	typ, err := StringViewType(img.Arch())
	require.NoError(t, err)
	return host.NewValue(img, "sv", typ, putPair(t, img, ptr, size))
}
