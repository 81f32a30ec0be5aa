// Package script runs summary formatters written in Lua. A script defines a
// global function summary(v) returning the display string for v.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wnxd/adtfmt/debugger"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

const (
	EntryPoint     = "summary"
	DefaultTimeout = 100 * time.Millisecond
)

var (
	ErrNoEntryPoint = errors.New("script does not define summary(v)")
	ErrNoResult     = errors.New("summary returned no string")
)

var openLibs = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are the base library entries that reach outside the state.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Summary{name, proto, DefaultTimeout}, nil
}

func (s *Summary) Name() string {
	return s.name
}

func (s *Summary) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Format is a debugger.SummaryFormatter. Script failures are rendered inline.
func (s *Summary) Format(v debugger.Value) string {
	out, err := s.Run(context.Background(), v)
	if err != nil {
		return fmt.Sprintf("<error: %s>", errorText(err))
	}
	return out
}

// Run evaluates the script in a fresh state so invocations share nothing.
func (s *Summary) Run(ctx context.Context, v debugger.Value) (string, error) {
	L := newState()
	defer L.Close()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	L.SetContext(ctx)

	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, 0, nil); err != nil {
		return "", err
	}
	fn, ok := L.GetGlobal(EntryPoint).(*lua.LFunction)
	if !ok {
		return "", ErrNoEntryPoint
	}
	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, wrapValue(L, v))
	if err != nil {
		return "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	switch ret := ret.(type) {
	case lua.LString:
		return string(ret), nil
	case lua.LNumber, lua.LBool:
		return ret.String(), nil
	}
	return "", ErrNoResult
}

func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range openLibs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func errorText(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		err = errors.New(apiErr.Object.String())
	}
	text, _, _ := strings.Cut(err.Error(), "\n")
	return text
}
