package script

import (
	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/process"
	lua "github.com/yuin/gopher-lua"
)

const valueTypeName = "adt.value"

var valueMethods = map[string]lua.LGFunction{
	"name":     valueName,
	"type":     valueType,
	"address":  valueAddress,
	"child":    valueChild,
	"unsigned": valueUnsigned,
	"signed":   valueSigned,
	"read":     valueRead,
}

func wrapValue(L *lua.LState, v debugger.Value) lua.LValue {
	mt := L.GetTypeMetatable(valueTypeName)
	if mt == lua.LNil {
		table := L.NewTypeMetatable(valueTypeName)
		L.SetField(table, "__index", L.SetFuncs(L.NewTable(), valueMethods))
		mt = table
	}
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, mt)
	return ud
}

func checkValue(L *lua.LState) debugger.Value {
	ud := L.CheckUserData(1)
	if v, ok := ud.Value.(debugger.Value); ok {
		return v
	}
	L.ArgError(1, "value expected")
	return nil
}

func valueName(L *lua.LState) int {
	L.Push(lua.LString(checkValue(L).Name()))
	return 1
}

func valueType(L *lua.LState) int {
	L.Push(lua.LString(checkValue(L).Type().Name()))
	return 1
}

func valueAddress(L *lua.LState) int {
	L.Push(lua.LNumber(checkValue(L).Address()))
	return 1
}

func valueChild(L *lua.LState) int {
	v := checkValue(L)
	child, ok := v.ChildMemberWithName(L.CheckString(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(wrapValue(L, child))
	return 1
}

func valueUnsigned(L *lua.LState) int {
	n, err := checkValue(L).Unsigned()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(n))
	return 1
}

func valueSigned(L *lua.LState) int {
	n, err := checkValue(L).Signed()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(n))
	return 1
}

// read(addr, len) reads from the process owning the value.
func valueRead(L *lua.LState) int {
	v := checkValue(L)
	addr := uint64(L.CheckNumber(2))
	size := uint64(L.CheckNumber(3))
	data, err := process.ToPointer(v.Process(), addr).MemRead(size)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(data))
	return 1
}
