package debugger

import (
	"slices"

	"github.com/wnxd/adtfmt/debugger"
)

type basicType struct {
	name string
	kind debugger.Kind
	size uint64
}

type pointerType struct {
	basicType
	pointee debugger.Type
}

type structType struct {
	basicType
	fields []debugger.Field
}

func NewBasicType(name string, kind debugger.Kind, size uint64) debugger.Type {
	return &basicType{name, kind, size}
}

func NewPointerType(pointee debugger.Type, size uint64) debugger.Type {
	name := "void *"
	if pointee != nil {
		name = pointee.Name() + " *"
	}
	return &pointerType{basicType{name, debugger.KIND_POINTER, size}, pointee}
}

func NewStructType(name string, size uint64, fields ...debugger.Field) debugger.Type {
	return &structType{basicType{name, debugger.KIND_STRUCT, size}, slices.Clone(fields)}
}

func (t *basicType) Name() string {
	return t.name
}

func (t *basicType) Kind() debugger.Kind {
	return t.kind
}

func (t *basicType) Size() uint64 {
	return t.size
}

func (t *basicType) Pointee() (debugger.Type, bool) {
	return nil, false
}

func (t *basicType) Fields() []debugger.Field {
	return nil
}

func (t *basicType) Field(name string) (debugger.Field, bool) {
	return debugger.Field{}, false
}

func (t *pointerType) Pointee() (debugger.Type, bool) {
	return t.pointee, t.pointee != nil
}

func (t *structType) Fields() []debugger.Field {
	return slices.Clone(t.fields)
}

func (t *structType) Field(name string) (debugger.Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return debugger.Field{}, false
}
