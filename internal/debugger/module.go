package debugger

import (
	"fmt"
	"slices"
	"sync"

	"github.com/wnxd/adtfmt/debugger"
)

type moduleManager struct {
	mu     sync.Mutex
	loaded []string
}

func (mm *moduleManager) ctor() {
}

func (mm *moduleManager) dtor() {
	mm.mu.Lock()
	mm.loaded = nil
	mm.mu.Unlock()
}

func (mm *moduleManager) load(dbg *Dbg, name string, init debugger.InitFunc) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if slices.Contains(mm.loaded, name) {
		return fmt.Errorf("%s: %w", name, debugger.ErrExtensionLoaded)
	}
	dbg.log.Debugw("loading extension", "name", name)
	if err := init(dbg); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	mm.loaded = append(mm.loaded, name)
	return nil
}

func (mm *moduleManager) Loaded() []string {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return slices.Clone(mm.loaded)
}
