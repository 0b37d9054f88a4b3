package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributesNumbers(t *testing.T) {
	attrs := ParseAttributes(map[string]any{
		AttrStartDelay:  int64(250),
		AttrLineDelay:   " 40 ",
		AttrTypingDelay: 12.5,
		AttrImageDelay:  "x",
	})

	require.NotNil(t, attrs.StartDelay)
	assert.Equal(t, 250*time.Millisecond, *attrs.StartDelay)
	require.NotNil(t, attrs.LineDelay)
	assert.Equal(t, 40*time.Millisecond, *attrs.LineDelay)
	require.NotNil(t, attrs.TypingDelay)
	assert.Equal(t, 12500*time.Microsecond, *attrs.TypingDelay)
	assert.Nil(t, attrs.ImageDelay)
}

func TestParseAttributesRejectsMalformedNumbers(t *testing.T) {
	for _, raw := range []any{"", "abc", true, -5, "NaN", []int{1}} {
		attrs := ParseAttributes(map[string]any{AttrLineDelay: raw})
		assert.Nil(t, attrs.LineDelay, "raw %#v", raw)
	}
}

func TestParseAttributesStrings(t *testing.T) {
	attrs := ParseAttributes(map[string]any{
		AttrDirectory:    "~/src",
		AttrPS1:          "",
		AttrProgressChar: "",
		AttrPromptChar:   42,
	})

	require.NotNil(t, attrs.Directory)
	assert.Equal(t, "~/src", *attrs.Directory)
	assert.Nil(t, attrs.PS1)
	assert.Nil(t, attrs.ProgressChar)
	require.NotNil(t, attrs.PromptChar)
	assert.Equal(t, "42", *attrs.PromptChar)
	assert.Nil(t, attrs.Cursor)
}

func TestParseAttributesImageTime(t *testing.T) {
	attrs := ParseAttributes(map[string]any{AttrImageTime: "infinite"})
	require.NotNil(t, attrs.ImageTime)
	assert.True(t, attrs.ImageTime.Infinite)

	attrs = ParseAttributes(map[string]any{AttrImageTime: "1500"})
	require.NotNil(t, attrs.ImageTime)
	assert.Equal(t, ImageTime{Duration: 1500 * time.Millisecond}, *attrs.ImageTime)

	attrs = ParseAttributes(map[string]any{AttrImageTime: "forever"})
	assert.Nil(t, attrs.ImageTime)
}

func TestParseLineKindAndMode(t *testing.T) {
	assert.Equal(t, LineKindProgress, ParseLineKind(" Progress "))
	assert.Equal(t, LineKind(""), ParseLineKind("banner"))
	assert.Equal(t, ModeLight, ParseMode("LIGHT"))
	assert.Equal(t, Mode(""), ParseMode("sepia"))
}
