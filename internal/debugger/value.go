package debugger

import (
	"fmt"

	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/process"
)

type value struct {
	proc process.Process
	name string
	typ  debugger.Type
	addr uint64
}

func NewValue(proc process.Process, name string, typ debugger.Type, addr uint64) debugger.Value {
	return &value{proc, name, typ, addr}
}

func (v *value) Name() string {
	return v.name
}

func (v *value) Type() debugger.Type {
	return v.typ
}

func (v *value) Address() uint64 {
	return v.addr
}

func (v *value) Process() process.Process {
	return v.proc
}

func (v *value) Pointer() process.Pointer {
	return process.ToPointer(v.proc, v.addr)
}

func (v *value) ChildMemberWithName(name string) (debugger.Value, bool) {
	if v.typ.Kind() != debugger.KIND_STRUCT {
		return nil, false
	}
	f, ok := v.typ.Field(name)
	if !ok {
		return nil, false
	}
	return &value{v.proc, f.Name, f.Type, v.addr + f.Offset}, true
}

func (v *value) Unsigned() (uint64, error) {
	if !v.typ.Kind().IsInteger() {
		return 0, fmt.Errorf("%s: %w", v.typ.Name(), debugger.ErrTypeNotScalar)
	}
	return v.Pointer().ReadUint(v.typ.Size())
}

func (v *value) Signed() (int64, error) {
	if !v.typ.Kind().IsInteger() {
		return 0, fmt.Errorf("%s: %w", v.typ.Name(), debugger.ErrTypeNotScalar)
	}
	return v.Pointer().ReadInt(v.typ.Size())
}

func (v *value) ChildAtOffset(name string, offset uint64, typ debugger.Type) (debugger.Value, error) {
	base := v.addr
	if v.typ.Kind() == debugger.KIND_POINTER {
		addr, err := v.Unsigned()
		if err != nil {
			return nil, err
		}
		base = addr
	}
	return &value{v.proc, name, typ, base + offset}, nil
}

func (v *value) String() string {
	return fmt.Sprintf("(%s) %s @ 0x%x", v.typ.Name(), v.name, v.addr)
}
