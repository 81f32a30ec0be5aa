package debugger

import "github.com/wnxd/adtfmt/process"

// Value is a typed view over debuggee memory. Field lookups report absence
// through their second result rather than an error.
type Value interface {
	Name() string
	Type() Type
	Address() uint64
	Process() process.Process
	ChildMemberWithName(name string) (Value, bool)
	Unsigned() (uint64, error)
	Signed() (int64, error)
	// ChildAtOffset creates a value of typ at offset bytes from the value's
	// storage, or from the pointee when the value is a pointer.
	ChildAtOffset(name string, offset uint64, typ Type) (Value, error)
}

func UnsignedOr(v Value, fail uint64) uint64 {
	n, err := v.Unsigned()
	if err != nil {
		return fail
	}
	return n
}

func SignedOr(v Value, fail int64) int64 {
	n, err := v.Signed()
	if err != nil {
		return fail
	}
	return n
}
