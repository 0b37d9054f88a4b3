package inspect

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/termdemo/internal/adapters/markup"
	"github.com/bnema/termdemo/internal/application"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

type RenderOptions struct {
	// BarWidth is the width of the progress previews; zero uses the default.
	BarWidth int
}

func composeReport(inspection application.Inspection, body []string, s styles) string {
	lines := []string{
		s.title.Render("Script: " + inspection.Script),
		s.header.Render(windowSummary(inspection.Window)),
		s.header.Render(fmt.Sprintf("lines: %d", len(inspection.Lines))),
	}

	if len(body) == 0 {
		lines = append(lines, s.empty.Render("No lines declared."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func windowSummary(window domain.EffectiveWindowConfig) string {
	return fmt.Sprintf("mode: %s  start delay: %s  static: %s  init: %s",
		window.Mode, formatDelay(window.StartDelay), yesNo(window.Static), yesNo(window.Init))
}

func renderLine(line application.LineInspection, opts RenderOptions, s styles) string {
	cfg := line.Config
	head := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.index.Render(fmt.Sprintf("#%d", line.Index)),
		" ",
		s.kind.Render(fmt.Sprintf("%-8s", cfg.Kind)),
		" ",
		s.detail.Render(fmt.Sprintf("line %s  typing %s", formatDelay(cfg.LineDelay), formatDelay(cfg.TypingDelay))),
	)

	var content string
	switch cfg.Kind {
	case domain.LineKindProgress:
		content = renderProgressBar(cfg.ProgressChar, cfg.ProgressPercent, barWidth(opts), s) +
			" " + s.detail.Render(fmt.Sprintf("%d%%", cfg.ProgressPercent))
	default:
		parts := make([]string, 0, 2)
		if prefix := markup.PlainText(cfg.PrefixMarkup()); prefix != "" {
			parts = append(parts, s.prefix.Render(prefix))
		}
		parts = append(parts, s.text.Render(line.Text))
		content = strings.Join(parts, " ")
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, "    "+content)
}

func renderImage(image application.ImageInspection, s styles) string {
	shown := "until restored"
	if !image.Config.Time.Infinite {
		shown = formatDelay(image.Config.Time.Duration)
	}

	return s.image.Render(fmt.Sprintf("[image] %s  delay %s  shown %s",
		image.Source, formatDelay(image.Config.Delay), shown))
}

func renderProgressBar(char string, percent, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(clampPercent(percent)) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat(char, filled)),
		s.barEmpty.Render(strings.Repeat(" ", width-filled)),
		s.barBracket.Render("]"),
	)
}

func barWidth(opts RenderOptions) int {
	if opts.BarWidth > 0 {
		return opts.BarWidth
	}
	return defaultBarWidth
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatDelay(d time.Duration) string {
	if d%time.Millisecond == 0 {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
