package adt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wnxd/adtfmt/debugger"
)

// VecLayout names the fields of a vector-like value. MaxChildren caps the
// number of children a provider reports; zero means no cap.
type VecLayout struct {
	DataField   string
	SizeField   string
	MaxChildren int
}

var DefaultVecLayout = VecLayout{
	DataField:   "m_pData",
	SizeField:   "m_size",
	MaxChildren: DefaultMaxChildren,
}

// VecProvider exposes the backing storage of a vector as indexed children.
// It captures the data pointer and element count once; a changed vector
// needs a new provider.
type VecProvider struct {
	data  debugger.Value
	elem  debugger.Type
	size  int
	limit int
}

var _ debugger.SyntheticProvider = (*VecProvider)(nil)

func NewVecProvider(v debugger.Value) (debugger.SyntheticProvider, error) {
	return DefaultVecLayout.Provider(v)
}

func (l VecLayout) Provider(v debugger.Value) (debugger.SyntheticProvider, error) {
	p, err := l.newProvider(v)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (l VecLayout) newProvider(v debugger.Value) (*VecProvider, error) {
	data, ok := v.ChildMemberWithName(l.DataField)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", debugger.ErrMalformedValue, v.Name(), l.DataField)
	}
	size, ok := v.ChildMemberWithName(l.SizeField)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", debugger.ErrMalformedValue, v.Name(), l.SizeField)
	}
	elem, ok := data.Type().Pointee()
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", debugger.ErrNotPointer, l.DataField, data.Type().Name())
	}
	if elem.Size() == 0 {
		return nil, fmt.Errorf("%w: element type %s has no size", debugger.ErrMalformedValue, elem.Name())
	}
	n, err := size.Signed()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", debugger.ErrMalformedValue, l.SizeField, err)
	} else if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", debugger.ErrMalformedValue, n)
	}
	return &VecProvider{data, elem, int(n), l.MaxChildren}, nil
}

// Count is the element count clamped to the layout's child cap.
func (p *VecProvider) Count() int {
	if p.limit > 0 && p.size > p.limit {
		return p.limit
	}
	return p.size
}

// Len is the element count read from the value.
func (p *VecProvider) Len() int {
	return p.size
}

func (p *VecProvider) ChildAt(idx int) (debugger.Value, error) {
	if idx < 0 || idx >= p.size {
		return nil, fmt.Errorf("%w: %d of %d", debugger.ErrIndexOutOfRange, idx, p.size)
	}
	offset := uint64(idx) * p.elem.Size()
	return p.data.ChildAtOffset(ChildName(idx), offset, p.elem)
}

func (p *VecProvider) IndexForName(name string) int {
	return IndexForName(name)
}

func ChildName(idx int) string {
	return "[" + strconv.Itoa(idx) + "]"
}

// IndexForName parses "[n]" and returns -1 for anything else.
func IndexForName(name string) int {
	s, ok := strings.CutPrefix(name, "[")
	if !ok {
		return -1
	}
	s, ok = strings.CutSuffix(s, "]")
	if !ok {
		return -1
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return -1
	}
	return idx
}

// Summary renders `size=N`, the element count of the vector.
func (l VecLayout) Summary(v debugger.Value) string {
	p, err := l.newProvider(v)
	if err != nil {
		return fmt.Sprintf("<error: %s>", err)
	}
	return "size=" + strconv.Itoa(p.Len())
}
