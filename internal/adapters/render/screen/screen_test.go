package screen

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bnema/termdemo/internal/application"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScript(lines ...string) domain.Script {
	script := domain.Script{Name: "demo", Window: &domain.WindowConfig{}}
	for _, text := range lines {
		script.Lines = append(script.Lines, domain.Line{Segments: []domain.Segment{{Text: text}}})
	}
	return script
}

func TestScreenStartsWithHiddenLines(t *testing.T) {
	t.Parallel()

	s := New(testScript("hello"), Options{Width: 30, Height: 8})

	assert.Equal(t, "", s.LineText(0))
	assert.NotContains(t, s.Frame(), "hello")
	assert.Contains(t, s.Frame(), "demo")
}

func TestScreenTypedLine(t *testing.T) {
	t.Parallel()

	script := testScript("")
	script.Lines[0].Segments = []domain.Segment{{Text: "ls "}, {Style: "accent", Text: "-la"}}
	s := New(script, Options{Width: 40, Height: 8})

	cfg := domain.Resolve(domain.Line{Kind: domain.LineKindInput}, domain.WindowConfig{})
	s.ConfigureLine(0, cfg.PrefixMarkup(), cfg.CursorMarkup())
	s.SetPrefixVisible(0, true)
	s.SetSegmentText(0, 0, "")
	s.SetSegmentText(0, 1, "")
	s.SetLineVisible(0, true)
	s.SetCursor(0, true)
	assert.Equal(t, "$ ▋", s.LineText(0))

	for _, unit := range []string{"l", "s", " "} {
		s.AppendSegmentText(0, 0, unit)
	}
	s.AppendSegmentText(0, 1, "-la")
	s.SetCursor(0, false)

	assert.Equal(t, "$ ls -la", s.LineText(0))
	assert.Contains(t, s.View(), "$ ls -la")
}

func TestScreenIgnoresOutOfRangeIndexes(t *testing.T) {
	t.Parallel()

	s := New(testScript("a"), Options{})
	s.SetLineVisible(5, true)
	s.SetSegmentText(0, 3, "x")
	s.AppendSegmentText(-1, 0, "x")

	assert.Equal(t, 1, s.LineCount())
	assert.Equal(t, "", s.LineText(5))
}

func TestScreenProgressTextReplacesSegments(t *testing.T) {
	t.Parallel()

	s := New(testScript("ignored"), Options{Width: 30})
	s.SetLineText(0, "██ 50%")
	s.SetLineVisible(0, true)

	assert.Equal(t, "██ 50%", s.LineText(0))
}

func TestScreenWrapsLongLinesAndReportsBounds(t *testing.T) {
	t.Parallel()

	// content width is 10 cells
	s := New(testScript("0123456789abcdefghijklmno", "short"), Options{Width: 14, Height: 5})
	s.SetLineVisible(0, true)

	top, height := s.LineBounds(0)
	assert.Equal(t, 0, top)
	assert.Equal(t, 3, height)

	top, height = s.LineBounds(1)
	assert.Equal(t, 3, top)
	assert.Equal(t, 1, height)

	assert.Equal(t, 2, s.Height())
	assert.Equal(t, 2, s.MaxScrollTop())
}

func TestScreenNewlineStartsNewRow(t *testing.T) {
	t.Parallel()

	s := New(testScript("first\nsecond", "third"), Options{Width: 20, Height: 5})
	s.SetLineVisible(0, true)
	s.SetLineVisible(1, true)

	top, height := s.LineBounds(0)
	assert.Equal(t, 0, top)
	assert.Equal(t, 2, height)

	top, height = s.LineBounds(1)
	assert.Equal(t, 2, top)
	assert.Equal(t, 1, height)
	assert.Equal(t, 1, s.MaxScrollTop())

	frame := strings.Split(s.Frame(), "\n")
	var body []string
	for _, row := range frame {
		for _, word := range []string{"first", "second", "third"} {
			if strings.Contains(row, word) {
				body = append(body, word)
			}
		}
	}
	assert.Equal(t, []string{"first", "second", "third"}, body)
}

func TestScreenScrollClamps(t *testing.T) {
	t.Parallel()

	s := New(testScript("a", "b", "c", "d", "e"), Options{Width: 20, Height: 5})

	s.ScrollTo(10)
	assert.Equal(t, 3, s.ScrollTop())

	s.ScrollTo(2)
	assert.Equal(t, 2, s.ScrollTop())

	s.ScrollTo(-4)
	assert.Equal(t, 0, s.ScrollTop())
}

func TestScreenUpdateViewportScrollsOnKeys(t *testing.T) {
	t.Parallel()

	s := New(testScript("a", "b", "c", "d", "e"), Options{Width: 20, Height: 5})
	s.UpdateViewport(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 1, s.ScrollTop())
}

func TestScreenLineWidthExcludesPrefix(t *testing.T) {
	t.Parallel()

	s := New(testScript("a"), Options{Width: 24})
	assert.Equal(t, 20, s.LineWidth(0))

	s.ConfigureLine(0, `<span class="prompt-char">&gt;&gt;&gt;</span>`, "▋")
	assert.Equal(t, 16, s.LineWidth(0))
}

func TestScreenTextWidthCountsCells(t *testing.T) {
	t.Parallel()

	s := New(testScript(), Options{})
	assert.Equal(t, 3, s.TextWidth("abc"))
	assert.Equal(t, 4, s.TextWidth("漢字"))
}

func TestScreenControlsAndImage(t *testing.T) {
	t.Parallel()

	script := testScript("a")
	script.Image = &domain.Image{Source: "shot.png", Alt: "screenshot", Index: 1}
	s := New(script, Options{Width: 70, Height: 12})

	view := s.View()
	assert.Contains(t, view, "▣ screenshot")
	assert.NotContains(t, view, "fast-forward")

	s.SetControlVisible(ports.ControlFast, true)
	assert.Contains(t, s.View(), "fast-forward")
	assert.True(t, s.ControlVisible(ports.ControlFast))

	s.SetControlVisible(ports.ControlFast, false)
	s.SetControlVisible(ports.ControlRestart, true)
	assert.Contains(t, s.View(), "restart")
	assert.NotContains(t, s.View(), "fast-forward")

	s.SetImageMaximized(true)
	assert.True(t, s.ImageMaximized())
	assert.Contains(t, s.View(), "shot.png")
}

func TestThemeOverrides(t *testing.T) {
	t.Parallel()

	theme := NewTheme(domain.ModeLight, map[string]string{PartFast: "#ff0000", PartContainer: "#00ff00"})

	assert.Equal(t, domain.ModeLight, theme.Mode())
	assert.Equal(t, lipgloss.Color("#ff0000"), theme.Style(PartFast).GetForeground())
	assert.Equal(t, lipgloss.Color("#00ff00"), theme.Style(PartContainer).GetBorderTopForeground())
	assert.Equal(t, theme.Style(partText), theme.Style("unknown-class"))
}

func TestThemeUnknownModeFallsBackToDark(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.ModeDark, NewTheme("", nil).Mode())
}

func TestScreenPlaysStaticWindow(t *testing.T) {
	t.Parallel()

	script := testScript("one", "two")
	script.Window.Static = true
	script.Lines[0].Kind = domain.LineKindInput
	percent := 100
	script.Lines = append(script.Lines, domain.Line{
		Kind:       domain.LineKindProgress,
		Attributes: domain.Attributes{ProgressPercent: &percent},
	})
	s := New(script, Options{Width: 30, Height: 10})

	window, err := application.NewWindow(script, application.WindowDeps{Surface: s, Viewport: s})
	require.NoError(t, err)
	t.Cleanup(window.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	window.StartIfVisible(ctx)
	require.NoError(t, window.Wait(ctx))

	assert.Equal(t, "$ one", s.LineText(0))
	assert.Equal(t, "two", s.LineText(1))
	assert.True(t, strings.HasSuffix(s.LineText(2), "100%"))
	assert.False(t, s.ControlVisible(ports.ControlRestart))
	assert.False(t, s.ControlVisible(ports.ControlFast))
}
