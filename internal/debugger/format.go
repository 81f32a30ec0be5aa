package debugger

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/wnxd/adtfmt/debugger"
	"go.uber.org/zap"
)

// maxChildren bounds Children for providers that report an unchecked count.
const maxChildren = 1 << 16

type binding[F any] struct {
	match debugger.Match
	test  func(string) bool
	fn    F
}

type formatManager struct {
	log        *zap.SugaredLogger
	mu         sync.RWMutex
	summaries  []binding[debugger.SummaryFormatter]
	synthetics []binding[debugger.SyntheticCtor]
}

func (fm *formatManager) ctor(log *zap.SugaredLogger) {
	fm.log = log
}

func (fm *formatManager) dtor() {
	fm.mu.Lock()
	fm.summaries = nil
	fm.synthetics = nil
	fm.mu.Unlock()
}

func (fm *formatManager) AddSummary(match debugger.Match, fn debugger.SummaryFormatter) error {
	test, err := compileMatch(match)
	if err != nil {
		return err
	}
	fm.mu.Lock()
	fm.summaries = append(fm.summaries, binding[debugger.SummaryFormatter]{match, test, fn})
	fm.mu.Unlock()
	fm.log.Debugw("summary added", "match", match.String())
	return nil
}

func (fm *formatManager) AddSynthetic(match debugger.Match, ctor debugger.SyntheticCtor) error {
	test, err := compileMatch(match)
	if err != nil {
		return err
	}
	fm.mu.Lock()
	fm.synthetics = append(fm.synthetics, binding[debugger.SyntheticCtor]{match, test, ctor})
	fm.mu.Unlock()
	fm.log.Debugw("synthetic added", "match", match.String())
	return nil
}

func (fm *formatManager) FindSummary(typeName string) (debugger.SummaryFormatter, bool) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return find(fm.summaries, typeName)
}

func (fm *formatManager) FindSynthetic(typeName string) (debugger.SyntheticCtor, bool) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return find(fm.synthetics, typeName)
}

func (fm *formatManager) Summary(v debugger.Value) (string, bool) {
	fn, ok := fm.FindSummary(v.Type().Name())
	if !ok {
		return "", false
	}
	return fn(v), true
}

// Children materializes the synthetic children of v. A provider that rejects
// the value yields no children together with its error.
func (fm *formatManager) Children(v debugger.Value) ([]debugger.Value, error) {
	typeName := v.Type().Name()
	ctor, ok := fm.FindSynthetic(typeName)
	if !ok {
		return nil, fmt.Errorf("%s: %w", typeName, debugger.ErrNoProvider)
	}
	provider, err := ctor(v)
	if err != nil {
		fm.log.Warnw("synthetic provider rejected value", "name", v.Name(), "type", typeName, "error", err)
		return nil, err
	}
	count := provider.Count()
	if count > maxChildren {
		fm.log.Debugw("synthetic children truncated", "name", v.Name(), "type", typeName, "count", count)
		count = maxChildren
	}
	var children []debugger.Value
	for i := 0; i < count; i++ {
		child, err := provider.ChildAt(i)
		if err != nil {
			return children, err
		}
		children = append(children, child)
	}
	return children, nil
}

func find[F any](bindings []binding[F], typeName string) (fn F, ok bool) {
	for _, b := range bindings {
		if b.match.Kind == debugger.MATCH_EXACT && b.test(typeName) {
			return b.fn, true
		}
	}
	for _, b := range bindings {
		if b.match.Kind != debugger.MATCH_EXACT && b.test(typeName) {
			return b.fn, true
		}
	}
	return
}

func compileMatch(match debugger.Match) (func(string) bool, error) {
	if match.Pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", debugger.ErrPatternInvalid)
	}
	switch match.Kind {
	case debugger.MATCH_EXACT:
		return func(name string) bool { return name == match.Pattern }, nil
	case debugger.MATCH_REGEX:
		re, err := regexp.Compile(match.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", debugger.ErrPatternInvalid, err)
		}
		return re.MatchString, nil
	case debugger.MATCH_GLOB:
		if !doublestar.ValidatePattern(match.Pattern) {
			return nil, fmt.Errorf("%w: %q", debugger.ErrPatternInvalid, match.Pattern)
		}
		return func(name string) bool {
			ok, _ := doublestar.Match(match.Pattern, name)
			return ok
		}, nil
	}
	return nil, fmt.Errorf("%w: kind %d", debugger.ErrPatternInvalid, match.Kind)
}
