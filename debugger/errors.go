package debugger

import "errors"

var (
	ErrMalformedValue  = errors.New("malformed value")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeNotScalar   = errors.New("type not scalar")
	ErrNotPointer      = errors.New("not a pointer")
	ErrPatternInvalid  = errors.New("pattern invalid")
	ErrNoProvider      = errors.New("no synthetic provider")
	ErrExtensionLoaded = errors.New("extension already loaded")
)
