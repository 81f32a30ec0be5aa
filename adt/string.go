package adt

import (
	"fmt"
	"unicode/utf8"

	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/process"
)

const (
	InvalidStringView = "Invalid StringView object"
	EmptyString       = `""`
	NullString        = "nullptr"
)

// DecodeError reports bytes that were read but are not valid UTF-8.
type DecodeError struct {
	offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d", e.offset)
}

func (e *DecodeError) Offset() int {
	return e.offset
}

type LengthError struct {
	length uint64
	limit  uint64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("string length %d exceeds limit %d", e.length, e.limit)
}

// StringSummary renders a pointer/length pair as `(len): "text"`.
type StringSummary struct {
	DataField string
	SizeField string
	// MaxLength bounds a single read; zero means no bound.
	MaxLength uint64
}

var DefaultStringSummary = StringSummary{
	DataField: "m_pData",
	SizeField: "m_size",
	MaxLength: DefaultMaxLength,
}

func SummarizeString(v debugger.Value) string {
	return DefaultStringSummary.Format(v)
}

func (s StringSummary) Format(v debugger.Value) string {
	data, dataOk := v.ChildMemberWithName(s.DataField)
	size, sizeOk := v.ChildMemberWithName(s.SizeField)
	if !dataOk || !sizeOk {
		return InvalidStringView
	}

	length := debugger.UnsignedOr(size, 0)
	if length == 0 {
		return EmptyString
	}

	addr := debugger.UnsignedOr(data, 0)
	if addr == 0 {
		return NullString
	}

	text, err := s.read(v.Process(), addr, length)
	if err != nil {
		return fmt.Sprintf("<error: %s>", err)
	}
	return fmt.Sprintf(`(%d): "%s"`, length, text)
}

func (s StringSummary) read(proc process.Process, addr, length uint64) (string, error) {
	if s.MaxLength != 0 && length > s.MaxLength {
		return "", &LengthError{length, s.MaxLength}
	}
	b, err := process.ToPointer(proc, addr).MemRead(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &DecodeError{invalidOffset(b)}
	}
	return string(b), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return len(b)
}
