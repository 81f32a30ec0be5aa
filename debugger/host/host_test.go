package host

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wnxd/adtfmt/debugger"
)

func TestNew(t *testing.T) {
	var out bytes.Buffer
	h, err := New(WithOutput(&out))
	require.NoError(t, err)
	defer h.Close()
	assert.Same(t, &out, h.Output())
	assert.NotNil(t, h.Logger())
	assert.Empty(t, h.Loaded())
}

func TestNewDefaults(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	defer h.Close()
	require.NotNil(t, h.Output())
	h.Logger().Debugw("discarded")
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, log)
	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	char := UintType("char", 1)
	ptr := PointerType(char, 8)
	assert.Equal(t, "char *", ptr.Name())
	assert.Equal(t, debugger.KIND_POINTER, ptr.Kind())
	pointee, ok := ptr.Pointee()
	require.True(t, ok)
	assert.Same(t, char, pointee)

	assert.Equal(t, debugger.KIND_BOOL, BoolType("bool").Kind())
	assert.Equal(t, debugger.KIND_FLOAT, FloatType("f64", 8).Kind())
	assert.Equal(t, uint64(4), IntType("i32", 4).Size())

	st := StructType("S", 16, debugger.Field{Name: "a", Offset: 8, Type: ptr})
	f, ok := st.Field("a")
	require.True(t, ok)
	assert.Equal(t, uint64(8), f.Offset)
}
