package screen

import (
	"github.com/bnema/termdemo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Named style parts. Segment classes from line markup are looked up in the
// same table, so a script may use any of these (or its own) as span class.
const (
	PartContainer  = "container"
	PartFast       = "fast"
	PartRestart    = "restart"
	PartDirectory  = "directory"
	PartInputChar  = "input-char"
	PartPromptChar = "prompt-char"
	PartImage      = "image"
	PartImageIcon  = "image-icon"

	partText     = ""
	partPS1      = "ps1"
	partCursor   = "cursor"
	partProgress = "progress"
	partAccent   = "accent"
	partSuccess  = "success"
	partError    = "error"
	partChrome   = "chrome"
)

// Parts lists the style parts that configuration may override.
var Parts = []string{
	PartContainer,
	PartFast,
	PartRestart,
	PartDirectory,
	PartInputChar,
	PartPromptChar,
	PartImage,
	PartImageIcon,
}

type palette struct {
	text, faint, border, accent, success, failure, prompt, directory, image string
}

var palettes = map[domain.Mode]palette{
	domain.ModeDark: {
		text: "252", faint: "241", border: "240", accent: "39", success: "114",
		failure: "203", prompt: "212", directory: "75", image: "176",
	},
	domain.ModeLight: {
		text: "236", faint: "246", border: "250", accent: "25", success: "28",
		failure: "160", prompt: "127", directory: "26", image: "90",
	},
}

// Theme maps style parts to lipgloss styles for one mode.
type Theme struct {
	mode  domain.Mode
	parts map[string]lipgloss.Style
}

// NewTheme builds the default styles of mode and applies overrides, a map
// of part name to lipgloss colour.
func NewTheme(mode domain.Mode, overrides map[string]string) Theme {
	p, ok := palettes[mode]
	if !ok {
		mode = domain.ModeDark
		p = palettes[mode]
	}

	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	parts := map[string]lipgloss.Style{
		partText:       fg(p.text),
		partChrome:     fg(p.faint),
		partPS1:        fg(p.success).Bold(true),
		partCursor:     fg(p.text),
		partProgress:   fg(p.accent),
		partAccent:     fg(p.accent).Bold(true),
		partSuccess:    fg(p.success),
		partError:      fg(p.failure),
		PartContainer:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.border)).Padding(0, 1),
		PartFast:       fg(p.accent).Bold(true),
		PartRestart:    fg(p.success).Bold(true),
		PartDirectory:  fg(p.directory),
		PartInputChar:  fg(p.faint),
		PartPromptChar: fg(p.prompt),
		PartImage:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(p.image)).Foreground(lipgloss.Color(p.image)).Padding(1, 2),
		PartImageIcon:  fg(p.image),
	}

	for part, color := range overrides {
		if color == "" {
			continue
		}
		style := parts[part]
		switch part {
		case PartContainer, PartImage:
			style = style.BorderForeground(lipgloss.Color(color))
		default:
			style = style.Foreground(lipgloss.Color(color))
		}
		parts[part] = style
	}

	return Theme{mode: mode, parts: parts}
}

func (t Theme) Mode() domain.Mode {
	return t.mode
}

// Style returns the style of part, or the plain text style for unknown
// parts.
func (t Theme) Style(part string) lipgloss.Style {
	if style, ok := t.parts[part]; ok {
		return style
	}
	return t.parts[partText]
}
