package domain

import "strings"

type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeDark:
		return ModeDark
	case ModeLight:
		return ModeLight
	default:
		return ""
	}
}

type LineKind string

const (
	LineKindOutput   LineKind = "output"
	LineKindInput    LineKind = "input"
	LineKindPrompt   LineKind = "prompt"
	LineKindProgress LineKind = "progress"
)

// ParseLineKind returns the empty LineKind when raw names no known kind, so
// an unknown kind inherits like any other malformed attribute.
func ParseLineKind(raw string) LineKind {
	switch kind := LineKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case LineKindOutput, LineKindInput, LineKindPrompt, LineKindProgress:
		return kind
	default:
		return ""
	}
}

func (k LineKind) Typed() bool {
	return k == LineKindInput || k == LineKindPrompt
}

type WindowConfig struct {
	Mode       Mode
	Kind       LineKind
	Attributes Attributes
	Init       bool
	Static     bool
}
