package encoding

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wnxd/adtfmt/debugger"
)

type view struct {
	Data *uint8 `adt:"m_pData,char"`
	Size int    `adt:"m_size"`
}

type padded struct {
	Flag   bool
	Value  int64
	Small  uint16
	Hidden string `adt:"-"`
}

type node struct {
	Next  *node `adt:"pNext"`
	Value int32 `adt:"value"`
}

type opaque struct {
	Handle unsafe.Pointer `adt:"m_handle"`
	Inner  view           `adt:"m_inner"`
}

func TestLayoutPointerWidth(t *testing.T) {
	for _, tc := range []struct {
		ptrSize uint64
		offset  uint64
		size    uint64
	}{
		{8, 8, 16},
		{4, 4, 8},
	} {
		typ := Layout("adt::StringView", view{}, tc.ptrSize)
		assert.Equal(t, "adt::StringView", typ.Name())
		assert.Equal(t, debugger.KIND_STRUCT, typ.Kind())
		assert.Equal(t, tc.size, typ.Size())

		data, ok := typ.Field("m_pData")
		require.True(t, ok)
		assert.Equal(t, uint64(0), data.Offset)
		assert.Equal(t, "char *", data.Type.Name())
		pointee, ok := data.Type.Pointee()
		require.True(t, ok)
		assert.Equal(t, "char", pointee.Name())
		assert.Equal(t, uint64(1), pointee.Size())

		size, ok := typ.Field("m_size")
		require.True(t, ok)
		assert.Equal(t, tc.offset, size.Offset)
		assert.Equal(t, debugger.KIND_INT, size.Type.Kind())
		assert.Equal(t, tc.ptrSize, size.Type.Size())
	}
}

func TestLayoutAlignment(t *testing.T) {
	typ := LayoutFor[padded]("padded", 8)
	fields := typ.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "Flag", fields[0].Name)
	assert.Equal(t, uint64(0), fields[0].Offset)
	assert.Equal(t, uint64(8), fields[1].Offset)
	assert.Equal(t, "i64", fields[1].Type.Name())
	assert.Equal(t, uint64(16), fields[2].Offset)
	assert.Equal(t, uint64(24), typ.Size())
	_, ok := typ.Field("Hidden")
	assert.False(t, ok)
}

func TestLayoutRecursive(t *testing.T) {
	typ := Layout("node", &node{}, 8)
	next, ok := typ.Field("pNext")
	require.True(t, ok)
	assert.Equal(t, "node *", next.Type.Name())
	pointee, ok := next.Type.Pointee()
	require.True(t, ok)
	assert.Equal(t, "node", pointee.Name())
	assert.Equal(t, uint64(16), pointee.Size())
}

func TestLayoutNested(t *testing.T) {
	typ := LayoutFor[opaque]("opaque", 4)
	handle, ok := typ.Field("m_handle")
	require.True(t, ok)
	_, ok = handle.Type.Pointee()
	assert.False(t, ok)
	assert.Equal(t, "void *", handle.Type.Name())

	inner, ok := typ.Field("m_inner")
	require.True(t, ok)
	assert.Equal(t, uint64(4), inner.Offset)
	assert.Equal(t, "view", inner.Type.Name())
	assert.Equal(t, uint64(12), typ.Size())
}

func TestLayoutCached(t *testing.T) {
	assert.Same(t, LayoutFor[view]("v", 8), LayoutFor[view]("v", 8))
	assert.NotSame(t, LayoutFor[view]("v", 8), LayoutFor[view]("v", 4))
}
