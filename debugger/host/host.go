package host

import (
	"io"

	"github.com/wnxd/adtfmt/debugger"
	internal "github.com/wnxd/adtfmt/internal/debugger"
	"github.com/wnxd/adtfmt/process"
	"go.uber.org/zap"
)

type Host interface {
	io.Closer
	debugger.Debugger
	Loaded() []string
}

type options struct {
	out io.Writer
	log *zap.SugaredLogger
}

type Option func(*options)

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

func New(opts ...Option) (Host, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	dbg := new(internal.Dbg)
	if err := dbg.Init(o.out, o.log); err != nil {
		return nil, err
	}
	return dbg, nil
}

func NewLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

func NewValue(proc process.Process, name string, typ debugger.Type, addr uint64) debugger.Value {
	return internal.NewValue(proc, name, typ, addr)
}

func BoolType(name string) debugger.Type {
	return internal.NewBasicType(name, debugger.KIND_BOOL, 1)
}

func IntType(name string, size uint64) debugger.Type {
	return internal.NewBasicType(name, debugger.KIND_INT, size)
}

func UintType(name string, size uint64) debugger.Type {
	return internal.NewBasicType(name, debugger.KIND_UINT, size)
}

func FloatType(name string, size uint64) debugger.Type {
	return internal.NewBasicType(name, debugger.KIND_FLOAT, size)
}

// PointerType returns a pointer to pointee; a nil pointee yields void *.
func PointerType(pointee debugger.Type, size uint64) debugger.Type {
	return internal.NewPointerType(pointee, size)
}

func StructType(name string, size uint64, fields ...debugger.Field) debugger.Type {
	return internal.NewStructType(name, size, fields...)
}
