package encoding

import (
	"sync"

	"github.com/modern-go/reflect2"
	"github.com/wnxd/adtfmt/debugger"
)

// lazyPointer resolves its pointee on first use so self-referential
// structs do not recurse while being laid out.
type lazyPointer struct {
	elem     reflect2.Type
	elemName string
	name     string
	ptrSize  uint64
	once     sync.Once
	pointee  debugger.Type
}

func (p *lazyPointer) resolve() debugger.Type {
	p.once.Do(func() {
		p.pointee = getLayoutData(p.elem, p.elemName, p.ptrSize).typ
	})
	return p.pointee
}

func (p *lazyPointer) Name() string {
	if p.name != "" {
		return p.name
	}
	if p.elemName != "" {
		return p.elemName + " *"
	}
	return typeName(p.elem) + " *"
}

func (p *lazyPointer) Kind() debugger.Kind {
	return debugger.KIND_POINTER
}

func (p *lazyPointer) Size() uint64 {
	return p.ptrSize
}

func (p *lazyPointer) Pointee() (debugger.Type, bool) {
	return p.resolve(), true
}

func (p *lazyPointer) Fields() []debugger.Field {
	return nil
}

func (p *lazyPointer) Field(name string) (debugger.Field, bool) {
	return debugger.Field{}, false
}
