package domain

import (
	"strings"
	"time"
)

const (
	DefaultStartDelay          = 600 * time.Millisecond
	DefaultLineDelay           = 100 * time.Millisecond
	DefaultTypedLineDelay      = 600 * time.Millisecond
	DefaultTypingDelay         = 80 * time.Millisecond
	DefaultProgressTypingDelay = 30 * time.Millisecond
	DefaultProgressChar        = "█"
	DefaultProgressPercent     = 100
	DefaultCursor              = "▋"
	DefaultInputChar           = "$"
	DefaultPromptChar          = ">>>"
)

type EffectiveWindowConfig struct {
	Mode       Mode
	StartDelay time.Duration
	Init       bool
	Static     bool
}

func ResolveWindow(window WindowConfig) EffectiveWindowConfig {
	cfg := EffectiveWindowConfig{
		Mode:       window.Mode,
		StartDelay: DefaultStartDelay,
		Init:       window.Init,
		Static:     window.Static,
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeDark
	}
	if window.Attributes.StartDelay != nil {
		cfg.StartDelay = *window.Attributes.StartDelay
	}

	return cfg
}

type EffectiveLineConfig struct {
	Kind            LineKind
	LineDelay       time.Duration
	TypingDelay     time.Duration
	ProgressChar    string
	ProgressPercent int
	Cursor          string
	InputChar       string
	PromptChar      string
	Directory       string
	PS1             string
	HasPS1          bool
}

// Resolve computes the effective configuration of one line. Each field takes
// the line's own value, then the window's, then a default that may depend on
// the line kind.
func Resolve(line Line, window WindowConfig) EffectiveLineConfig {
	kind := line.Kind
	if kind == "" {
		kind = window.Kind
	}
	if kind == "" {
		kind = LineKindOutput
	}

	l, w := line.Attributes, window.Attributes
	cfg := EffectiveLineConfig{
		Kind:            kind,
		LineDelay:       durationOr(defaultLineDelay(kind), l.LineDelay, w.LineDelay),
		TypingDelay:     durationOr(defaultTypingDelay(kind), l.TypingDelay, w.TypingDelay),
		ProgressChar:    stringOr(DefaultProgressChar, l.ProgressChar, w.ProgressChar),
		ProgressPercent: intOr(DefaultProgressPercent, l.ProgressPercent, w.ProgressPercent),
		Cursor:          stringOr(DefaultCursor, l.Cursor, w.Cursor),
		PromptChar:      stringOr(DefaultPromptChar, l.PromptChar, w.PromptChar),
	}

	if ps1 := firstNonEmpty(l.PS1, w.PS1); ps1 != "" {
		cfg.PS1 = ps1
		cfg.HasPS1 = true
		return cfg
	}

	cfg.Directory = stringOr("", l.Directory, w.Directory)
	cfg.InputChar = stringOr(DefaultInputChar, l.InputChar, w.InputChar)

	return cfg
}

func (c *EffectiveLineConfig) ZeroDelays() {
	c.LineDelay = 0
	c.TypingDelay = 0
}

func (c EffectiveLineConfig) PrefixMarkup() string {
	switch c.Kind {
	case LineKindInput:
		if c.HasPS1 {
			return `<span class="ps1">` + EscapeMarkup(c.PS1) + `</span>`
		}
		var b strings.Builder
		if c.Directory != "" {
			b.WriteString(`<span class="directory">` + EscapeMarkup(c.Directory) + `</span>`)
		}
		b.WriteString(`<span class="input-char">` + EscapeMarkup(c.InputChar) + `</span>`)
		return b.String()
	case LineKindPrompt:
		return `<span class="prompt-char">` + EscapeMarkup(c.PromptChar) + `</span>`
	default:
		return ""
	}
}

func (c EffectiveLineConfig) CursorMarkup() string {
	return EscapeMarkup(c.Cursor)
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;")

func EscapeMarkup(value string) string {
	return markupEscaper.Replace(value)
}

func defaultLineDelay(kind LineKind) time.Duration {
	if kind.Typed() {
		return DefaultTypedLineDelay
	}
	return DefaultLineDelay
}

func defaultTypingDelay(kind LineKind) time.Duration {
	if kind == LineKindProgress {
		return DefaultProgressTypingDelay
	}
	return DefaultTypingDelay
}

func firstDuration(values ...*time.Duration) *time.Duration {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func firstString(values ...*string) *string {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func firstNonEmpty(values ...*string) string {
	for _, value := range values {
		if value != nil && *value != "" {
			return *value
		}
	}
	return ""
}

func durationOr(fallback time.Duration, values ...*time.Duration) time.Duration {
	if value := firstDuration(values...); value != nil {
		return *value
	}
	return fallback
}

func stringOr(fallback string, values ...*string) string {
	if value := firstString(values...); value != nil {
		return *value
	}
	return fallback
}

func intOr(fallback int, values ...*int) int {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}
	return fallback
}
