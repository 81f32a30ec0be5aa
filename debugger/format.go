package debugger

import (
	"fmt"
	"strings"
)

type SummaryFormatter = func(v Value) string

type SyntheticProvider interface {
	Count() int
	ChildAt(idx int) (Value, error)
	// IndexForName returns -1 when name does not denote a child.
	IndexForName(name string) int
}

type SyntheticCtor = func(v Value) (SyntheticProvider, error)

type MatchKind int

const (
	MATCH_EXACT MatchKind = iota
	MATCH_REGEX
	MATCH_GLOB
)

func (k MatchKind) String() string {
	switch k {
	case MATCH_REGEX:
		return "regex"
	case MATCH_GLOB:
		return "glob"
	}
	return "exact"
}

func (k MatchKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MatchKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "exact":
		*k = MATCH_EXACT
	case "regex":
		*k = MATCH_REGEX
	case "glob":
		*k = MATCH_GLOB
	default:
		return fmt.Errorf("%w: unknown match kind %q", ErrPatternInvalid, text)
	}
	return nil
}

type Match struct {
	Pattern string    `yaml:"pattern"`
	Kind    MatchKind `yaml:"kind"`
}

func Exact(name string) Match {
	return Match{name, MATCH_EXACT}
}

func Regex(pattern string) Match {
	return Match{pattern, MATCH_REGEX}
}

func Glob(pattern string) Match {
	return Match{pattern, MATCH_GLOB}
}

func (m Match) String() string {
	if m.Kind == MATCH_EXACT {
		return m.Pattern
	}
	return fmt.Sprintf("%s (%s)", m.Pattern, m.Kind)
}

// FormatterManager binds formatters to type names. Exact bindings win over
// pattern bindings; patterns are tried in registration order.
type FormatterManager interface {
	AddSummary(match Match, fn SummaryFormatter) error
	AddSynthetic(match Match, ctor SyntheticCtor) error
	FindSummary(typeName string) (SummaryFormatter, bool)
	FindSynthetic(typeName string) (SyntheticCtor, bool)
	Summary(v Value) (string, bool)
	Children(v Value) ([]Value, error)
}
