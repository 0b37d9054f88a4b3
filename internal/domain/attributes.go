package domain

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	AttrStartDelay      = "start_delay"
	AttrLineDelay       = "line_delay"
	AttrTypingDelay     = "typing_delay"
	AttrImageDelay      = "image_delay"
	AttrImageTime       = "image_time"
	AttrProgressChar    = "progress_char"
	AttrProgressPercent = "progress_percent"
	AttrCursor          = "cursor"
	AttrInputChar       = "input_char"
	AttrPromptChar      = "prompt_char"
	AttrDirectory       = "directory"
	AttrPS1             = "ps1"

	infiniteImageTime = "infinite"
)

type ImageTime struct {
	Duration time.Duration
	Infinite bool
}

// Attributes holds the overridable timing and appearance fields shared by
// windows, lines and images. A nil field was not declared or did not parse.
type Attributes struct {
	StartDelay      *time.Duration
	LineDelay       *time.Duration
	TypingDelay     *time.Duration
	ImageDelay      *time.Duration
	ImageTime       *ImageTime
	ProgressChar    *string
	ProgressPercent *int
	Cursor          *string
	InputChar       *string
	PromptChar      *string
	Directory       *string
	PS1             *string
}

// ParseAttributes converts raw declared values into Attributes. Values that
// cannot be read are dropped rather than reported.
func ParseAttributes(raw map[string]any) Attributes {
	var attrs Attributes

	attrs.StartDelay = parseDelay(raw[AttrStartDelay])
	attrs.LineDelay = parseDelay(raw[AttrLineDelay])
	attrs.TypingDelay = parseDelay(raw[AttrTypingDelay])
	attrs.ImageDelay = parseDelay(raw[AttrImageDelay])
	attrs.ImageTime = parseImageTime(raw[AttrImageTime])
	attrs.ProgressPercent = parsePercent(raw[AttrProgressPercent])

	attrs.ProgressChar = parseNonEmpty(raw[AttrProgressChar])
	attrs.Cursor = parseString(raw[AttrCursor])
	attrs.InputChar = parseString(raw[AttrInputChar])
	attrs.PromptChar = parseString(raw[AttrPromptChar])
	attrs.Directory = parseString(raw[AttrDirectory])
	attrs.PS1 = parseNonEmpty(raw[AttrPS1])

	return attrs
}

func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		value = v
	}

	number, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}

	return number, true
}

func parseDelay(value any) *time.Duration {
	ms, ok := parseNumber(value)
	if !ok || ms < 0 {
		return nil
	}

	delay := time.Duration(math.Round(ms * float64(time.Millisecond)))
	return &delay
}

func parseImageTime(value any) *ImageTime {
	if s, ok := value.(string); ok && strings.EqualFold(strings.TrimSpace(s), infiniteImageTime) {
		return &ImageTime{Infinite: true}
	}

	delay := parseDelay(value)
	if delay == nil {
		return nil
	}

	return &ImageTime{Duration: *delay}
}

func parsePercent(value any) *int {
	number, ok := parseNumber(value)
	if !ok || number < 0 || number > 100 {
		return nil
	}

	percent := int(math.Round(number))
	return &percent
}

func parseString(value any) *string {
	if value == nil {
		return nil
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return nil
	}

	return &s
}

func parseNonEmpty(value any) *string {
	s := parseString(value)
	if s == nil || *s == "" {
		return nil
	}

	return s
}
