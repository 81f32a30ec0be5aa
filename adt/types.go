package adt

import (
	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/encoding"
	"github.com/wnxd/adtfmt/process"
)

const (
	StringViewTypeName = "adt::StringView"
	StringTypeName     = "adt::String"
	VecTypeName        = "adt::Vec"
)

// StringView mirrors adt::StringView.
type StringView struct {
	Data *uint8 `adt:"m_pData,char"`
	Size int    `adt:"m_size"`
}

// String mirrors adt::String: a StringView prefix followed by its capacity.
type String struct {
	Data *uint8 `adt:"m_pData,char"`
	Size int    `adt:"m_size"`
	Cap  int    `adt:"m_cap"`
}

// Vec mirrors adt::Vec<T>.
type Vec[T any] struct {
	Data *T  `adt:"m_pData"`
	Size int `adt:"m_size"`
	Cap  int `adt:"m_cap"`
}

func StringViewType(arch process.Arch) (debugger.Type, error) {
	size, err := arch.PointerSize()
	if err != nil {
		return nil, err
	}
	return encoding.LayoutFor[StringView](StringViewTypeName, size), nil
}

func StringType(arch process.Arch) (debugger.Type, error) {
	size, err := arch.PointerSize()
	if err != nil {
		return nil, err
	}
	return encoding.LayoutFor[String](StringTypeName, size), nil
}

// VecType lays out adt::Vec<elemName> holding T elements.
func VecType[T any](elemName string, arch process.Arch) (debugger.Type, error) {
	size, err := arch.PointerSize()
	if err != nil {
		return nil, err
	}
	return encoding.LayoutFor[Vec[T]](VecTypeName+"<"+elemName+">", size), nil
}
