package encoding

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/modern-go/reflect2"
	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/debugger/host"
)

// TagName is the struct tag read by Layout: `adt:"m_pData"` renames the
// field, `adt:"m_pData,char"` also names its type, `adt:"-"` drops it.
const TagName = "adt"

type layoutKey struct {
	ptrSize uint64
	rtype   uintptr
	name    string
}

type layoutData struct {
	typ   debugger.Type
	align uint64
}

var layoutProcess sync.Map

// Layout derives the target type mirrored by the Go struct val. Pointer-width
// fields (int, uint, uintptr and pointers) take ptrSize bytes.
func Layout(name string, val any, ptrSize uint64) debugger.Type {
	typ := reflect2.TypeOf(val)
	if typ.Kind() == reflect.Pointer {
		typ = typ.(reflect2.PtrType).Elem()
	}
	return getLayoutData(typ, name, ptrSize).typ
}

func LayoutFor[T any](name string, ptrSize uint64) debugger.Type {
	return getLayoutData(reflect2.Type2(reflect.TypeOf((*T)(nil)).Elem()), name, ptrSize).typ
}

func getLayoutData(typ reflect2.Type, name string, ptrSize uint64) *layoutData {
	if name == "" {
		name = typeName(typ)
	}
	key := layoutKey{ptrSize, typ.RType(), name}
	if v, ok := layoutProcess.Load(key); ok {
		return v.(*layoutData)
	}
	data := layout(typ, name, ptrSize)
	v, _ := layoutProcess.LoadOrStore(key, data)
	return v.(*layoutData)
}

func layout(typ reflect2.Type, name string, ptrSize uint64) *layoutData {
	switch typ.Kind() {
	case reflect.Bool:
		return &layoutData{host.BoolType(name), 1}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		size := uint64(typ.Type1().Size())
		return &layoutData{host.IntType(name, size), size}
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		size := uint64(typ.Type1().Size())
		return &layoutData{host.UintType(name, size), size}
	case reflect.Float32, reflect.Float64:
		size := uint64(typ.Type1().Size())
		return &layoutData{host.FloatType(name, size), size}
	case reflect.Int:
		return &layoutData{host.IntType(name, ptrSize), ptrSize}
	case reflect.Uint, reflect.Uintptr:
		return &layoutData{host.UintType(name, ptrSize), ptrSize}
	case reflect.UnsafePointer:
		return &layoutData{host.PointerType(nil, ptrSize), ptrSize}
	case reflect.Pointer:
		elem := typ.(reflect2.PtrType).Elem()
		return &layoutData{&lazyPointer{elem: elem, name: name, ptrSize: ptrSize}, ptrSize}
	case reflect.Struct:
		return layoutStruct(typ.(reflect2.StructType), name, ptrSize)
	}
	panic(fmt.Sprintf("encoding: unsupported type %s", typ))
}

func layoutStruct(typ reflect2.StructType, name string, ptrSize uint64) *layoutData {
	count := typ.NumField()
	fields := make([]debugger.Field, 0, count)
	var offset uint64
	maxAlign := uint64(1)
	for i := 0; i < count; i++ {
		field := typ.Field(i)
		fieldName, fieldType, skip := parseTag(field)
		if skip {
			continue
		}
		var data *layoutData
		if field.Type().Kind() == reflect.Pointer {
			elem := field.Type().(reflect2.PtrType).Elem()
			data = &layoutData{&lazyPointer{elem: elem, elemName: fieldType, ptrSize: ptrSize}, ptrSize}
		} else {
			data = getLayoutData(field.Type(), fieldType, ptrSize)
		}
		offset = debugger.Align(offset, data.align)
		fields = append(fields, debugger.Field{Name: fieldName, Offset: offset, Type: data.typ})
		offset += data.typ.Size()
		maxAlign = max(maxAlign, data.align)
	}
	size := debugger.Align(offset, maxAlign)
	return &layoutData{host.StructType(name, size, fields...), maxAlign}
}

func parseTag(field reflect2.StructField) (name, typeName string, skip bool) {
	tag := field.Tag().Get(TagName)
	if tag == "-" {
		return "", "", true
	}
	name, typeName, _ = strings.Cut(tag, ",")
	if name == "" {
		name = field.Name()
	}
	return
}

func typeName(typ reflect2.Type) string {
	switch typ.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int8:
		return "i8"
	case reflect.Int16:
		return "i16"
	case reflect.Int32:
		return "i32"
	case reflect.Int64:
		return "i64"
	case reflect.Int:
		return "isize"
	case reflect.Uint8:
		return "u8"
	case reflect.Uint16:
		return "u16"
	case reflect.Uint32:
		return "u32"
	case reflect.Uint64:
		return "u64"
	case reflect.Uint, reflect.Uintptr:
		return "usize"
	case reflect.Float32:
		return "f32"
	case reflect.Float64:
		return "f64"
	case reflect.UnsafePointer:
		return "void *"
	case reflect.Pointer:
		return typeName(typ.(reflect2.PtrType).Elem()) + " *"
	}
	return typ.Type1().Name()
}
