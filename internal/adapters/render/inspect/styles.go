package inspect

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	index      lipgloss.Style
	kind       lipgloss.Style
	detail     lipgloss.Style
	prefix     lipgloss.Style
	text       lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	image      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		index:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		kind:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		prefix:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		text:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		image:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("176")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
