package debugger

import (
	"io"

	"go.uber.org/zap"
)

// InitFunc is run once when an extension is loaded into the debugger.
type InitFunc = func(dbg Debugger) error

type Debugger interface {
	Output() io.Writer
	Logger() *zap.SugaredLogger
	Load(name string, init InitFunc) error
	FormatterManager
}
