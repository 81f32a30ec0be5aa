package debugger

type Kind int

const (
	KIND_INVALID Kind = iota
	KIND_BOOL
	KIND_INT
	KIND_UINT
	KIND_FLOAT
	KIND_POINTER
	KIND_STRUCT
)

func (k Kind) String() string {
	switch k {
	case KIND_BOOL:
		return "bool"
	case KIND_INT:
		return "int"
	case KIND_UINT:
		return "uint"
	case KIND_FLOAT:
		return "float"
	case KIND_POINTER:
		return "pointer"
	case KIND_STRUCT:
		return "struct"
	}
	return "invalid"
}

func (k Kind) IsInteger() bool {
	switch k {
	case KIND_BOOL, KIND_INT, KIND_UINT, KIND_POINTER:
		return true
	}
	return false
}

type Field struct {
	Name   string
	Offset uint64
	Type   Type
}

type Type interface {
	Name() string
	Kind() Kind
	Size() uint64
	// Pointee reports the target type of a pointer. A void pointer has none.
	Pointee() (Type, bool)
	Fields() []Field
	Field(name string) (Field, bool)
}
