package debugger

import (
	"io"

	"github.com/wnxd/adtfmt/debugger"
	"go.uber.org/zap"
)

type Dbg struct {
	out io.Writer
	log *zap.SugaredLogger
	formatManager
	moduleManager
}

var _ debugger.Debugger = (*Dbg)(nil)

func (dbg *Dbg) Init(out io.Writer, log *zap.SugaredLogger) error {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	dbg.out = out
	dbg.log = log
	dbg.formatManager.ctor(log)
	dbg.moduleManager.ctor()
	return nil
}

func (dbg *Dbg) Close() error {
	dbg.moduleManager.dtor()
	dbg.formatManager.dtor()
	// stderr sinks report EINVAL on sync
	dbg.log.Sync()
	return nil
}

func (dbg *Dbg) Output() io.Writer {
	return dbg.out
}

func (dbg *Dbg) Logger() *zap.SugaredLogger {
	return dbg.log
}

func (dbg *Dbg) Load(name string, init debugger.InitFunc) error {
	return dbg.moduleManager.load(dbg, name, init)
}
