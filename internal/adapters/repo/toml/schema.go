package toml

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/termdemo/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Window  *windowSchema `toml:"window,omitempty"`
	Lines   []lineSchema  `toml:"lines,omitempty"`
	// Image is a table when declared once; an array of tables is kept so
	// that a second declaration can be reported.
	Image any `toml:"image,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported script schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// AttributesSchema is exported so the TOML codec flattens it into the
// embedding table. It keeps raw values: delays and percentages may be written
// as numbers or numeric strings and malformed ones must not fail decoding.
type AttributesSchema struct {
	StartDelay      any `toml:"start_delay,omitempty"`
	LineDelay       any `toml:"line_delay,omitempty"`
	TypingDelay     any `toml:"typing_delay,omitempty"`
	ImageDelay      any `toml:"image_delay,omitempty"`
	ImageTime       any `toml:"image_time,omitempty"`
	ProgressChar    any `toml:"progress_char,omitempty"`
	ProgressPercent any `toml:"progress_percent,omitempty"`
	Cursor          any `toml:"cursor,omitempty"`
	InputChar       any `toml:"input_char,omitempty"`
	PromptChar      any `toml:"prompt_char,omitempty"`
	Directory       any `toml:"directory,omitempty"`
	PS1             any `toml:"ps1,omitempty"`
}

type windowSchema struct {
	Mode   string `toml:"mode,omitempty"`
	Kind   string `toml:"kind,omitempty"`
	Init   bool   `toml:"init,omitempty"`
	Static bool   `toml:"static,omitempty"`
	AttributesSchema
}

type lineSchema struct {
	Kind    string `toml:"kind,omitempty"`
	Content string `toml:"content"`
	AttributesSchema
}

func (s AttributesSchema) raw() map[string]any {
	return map[string]any{
		domain.AttrStartDelay:      s.StartDelay,
		domain.AttrLineDelay:       s.LineDelay,
		domain.AttrTypingDelay:     s.TypingDelay,
		domain.AttrImageDelay:      s.ImageDelay,
		domain.AttrImageTime:       s.ImageTime,
		domain.AttrProgressChar:    s.ProgressChar,
		domain.AttrProgressPercent: s.ProgressPercent,
		domain.AttrCursor:          s.Cursor,
		domain.AttrInputChar:       s.InputChar,
		domain.AttrPromptChar:      s.PromptChar,
		domain.AttrDirectory:       s.Directory,
		domain.AttrPS1:             s.PS1,
	}
}

func toAttributesSchema(attrs domain.Attributes) AttributesSchema {
	var s AttributesSchema

	s.StartDelay = durationValue(attrs.StartDelay)
	s.LineDelay = durationValue(attrs.LineDelay)
	s.TypingDelay = durationValue(attrs.TypingDelay)
	s.ImageDelay = durationValue(attrs.ImageDelay)
	if attrs.ImageTime != nil {
		if attrs.ImageTime.Infinite {
			s.ImageTime = "infinite"
		} else {
			s.ImageTime = durationValue(&attrs.ImageTime.Duration)
		}
	}
	s.ProgressChar = stringValue(attrs.ProgressChar)
	if attrs.ProgressPercent != nil {
		s.ProgressPercent = int64(*attrs.ProgressPercent)
	}
	s.Cursor = stringValue(attrs.Cursor)
	s.InputChar = stringValue(attrs.InputChar)
	s.PromptChar = stringValue(attrs.PromptChar)
	s.Directory = stringValue(attrs.Directory)
	s.PS1 = stringValue(attrs.PS1)

	return s
}

func durationValue(d *time.Duration) any {
	if d == nil {
		return nil
	}

	ms := float64(*d) / float64(time.Millisecond)
	if ms == math.Trunc(ms) {
		return int64(ms)
	}
	return ms
}

func stringValue(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}

type imageSchema struct {
	Source string `toml:"src"`
	Alt    string `toml:"alt,omitempty"`
	Index  int64  `toml:"index"`
	AttributesSchema
}
