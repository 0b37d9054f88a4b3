// Package screen holds the drawable state of one terminal window: the
// lines as the playback engine left them, the controls and the image. It
// implements the Surface and Viewport ports and renders with lipgloss.
package screen

import (
	"strings"
	"sync"

	"github.com/bnema/termdemo/internal/adapters/markup"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// border and horizontal padding of the container
	chromeWidth = 4
	// border plus the title bar
	chromeHeight = 3
)

type Options struct {
	// Width and Height are the outer size of the window in cells.
	Width  int
	Height int
	// Styles overrides style parts by name with a lipgloss colour.
	Styles map[string]string
}

type lineState struct {
	visible       bool
	prefixVisible bool
	cursor        bool
	typing        bool

	prefix   []domain.Segment
	cursorAt string
	segments []domain.Segment

	// text replaces the segments once set, as progress lines do.
	text    string
	hasText bool
}

type Screen struct {
	mu sync.Mutex

	title    string
	image    *domain.Image
	theme    Theme
	width    int
	height   int
	lines    []lineState
	controls map[ports.Control]bool
	imageMax bool

	vp    viewport.Model
	dirty bool
	rows  []string
	// bounds[i] is the first row and height of line i.
	bounds [][2]int
}

var (
	_ ports.Surface  = (*Screen)(nil)
	_ ports.Viewport = (*Screen)(nil)
)

func New(script domain.Script, opts Options) *Screen {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	s := &Screen{
		title:    script.Name,
		image:    script.Image,
		theme:    NewTheme(domain.ResolveWindow(script.WindowOrDefault()).Mode, opts.Styles),
		lines:    make([]lineState, len(script.Lines)),
		controls: map[ports.Control]bool{},
		dirty:    true,
	}
	for i, line := range script.Lines {
		s.lines[i].segments = append([]domain.Segment(nil), line.Segments...)
	}

	s.vp = viewport.New(0, 0)
	s.vp.MouseWheelEnabled = true
	s.resizeLocked(opts.Width, opts.Height)

	return s
}

// Resize sets the outer size of the window, keeping the scroll position
// where possible.
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resizeLocked(width, height)
}

func (s *Screen) resizeLocked(width, height int) {
	s.width = max(width-chromeWidth, 1)
	s.height = max(height-chromeHeight, 1)
	s.vp.Width = s.width
	s.vp.Height = s.height
	s.dirty = true
	s.refreshLocked()
}

func (s *Screen) Theme() Theme {
	return s.theme
}

func (s *Screen) ConfigureLine(line int, prefixMarkup, cursorMarkup string) {
	s.update(line, func(l *lineState) {
		l.prefix = parseMarkup(prefixMarkup)
		l.cursorAt = markup.PlainText(cursorMarkup)
	})
}

func (s *Screen) SetLineVisible(line int, visible bool) {
	s.update(line, func(l *lineState) { l.visible = visible })
}

func (s *Screen) SetPrefixVisible(line int, visible bool) {
	s.update(line, func(l *lineState) { l.prefixVisible = visible })
}

func (s *Screen) SetSegmentText(line, segment int, text string) {
	s.update(line, func(l *lineState) {
		if segment >= 0 && segment < len(l.segments) {
			l.segments[segment].Text = text
		}
	})
}

func (s *Screen) AppendSegmentText(line, segment int, unit string) {
	s.update(line, func(l *lineState) {
		if segment >= 0 && segment < len(l.segments) {
			l.segments[segment].Text += unit
		}
	})
}

func (s *Screen) SetLineText(line int, text string) {
	s.update(line, func(l *lineState) {
		l.text = text
		l.hasText = true
	})
}

func (s *Screen) SetCursor(line int, on bool) {
	s.update(line, func(l *lineState) { l.cursor = on })
}

func (s *Screen) SetTyping(line int, on bool) {
	s.update(line, func(l *lineState) { l.typing = on })
}

func (s *Screen) SetControlVisible(control ports.Control, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controls[control] = visible
}

func (s *Screen) SetImageMaximized(maximized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imageMax = maximized
}

func (s *Screen) LineWidth(line int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line < 0 || line >= len(s.lines) {
		return s.width
	}

	width := s.width
	if prefix := s.lines[line].prefix; len(prefix) > 0 {
		width -= cellsWidth(segmentCells(prefix)) + 1
	}
	return max(width, 1)
}

func (s *Screen) TextWidth(text string) int {
	return textWidth(text)
}

func (s *Screen) ScrollTop() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	return s.vp.YOffset
}

func (s *Screen) ScrollTo(top int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	s.vp.SetYOffset(top)
}

func (s *Screen) MaxScrollTop() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	return max(len(s.rows)-s.height, 0)
}

func (s *Screen) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.height
}

func (s *Screen) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}

func (s *Screen) LineBounds(line int) (top, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	if line < 0 || line >= len(s.bounds) {
		return len(s.rows), 0
	}
	return s.bounds[line][0], s.bounds[line][1]
}

// UpdateViewport lets the embedded viewport handle scroll keys and mouse
// wheel events.
func (s *Screen) UpdateViewport(msg tea.Msg) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

// LineText is the plain text a line currently shows, empty when hidden.
func (s *Screen) LineText(line int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line < 0 || line >= len(s.lines) || !s.lines[line].visible {
		return ""
	}

	var b strings.Builder
	for _, c := range s.lineCells(&s.lines[line]) {
		b.WriteString(c.text)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *Screen) Typing(line int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return line >= 0 && line < len(s.lines) && s.lines[line].typing
}

func (s *Screen) ControlVisible(control ports.Control) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.controls[control]
}

func (s *Screen) ImageMaximized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.imageMax
}

func (s *Screen) update(line int, apply func(*lineState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line < 0 || line >= len(s.lines) {
		return
	}
	apply(&s.lines[line])
	s.dirty = true
}

// refreshLocked re-lays the rows after a line changed so that scroll
// bounds follow the content.
func (s *Screen) refreshLocked() {
	if !s.dirty {
		return
	}
	s.dirty = false

	s.rows = s.rows[:0]
	s.bounds = s.bounds[:0]
	for i := range s.lines {
		l := &s.lines[i]
		wrapped := wrapCells(s.lineCells(l), s.width)
		s.bounds = append(s.bounds, [2]int{len(s.rows), len(wrapped)})
		for _, row := range wrapped {
			if l.visible {
				s.rows = append(s.rows, s.renderRow(row))
			} else {
				s.rows = append(s.rows, strings.Repeat(" ", s.width))
			}
		}
	}

	offset := s.vp.YOffset
	s.vp.SetContent(strings.Join(s.rows, "\n"))
	s.vp.SetYOffset(offset)
}

func parseMarkup(raw string) []domain.Segment {
	segments, err := markup.Parse(raw)
	if err != nil {
		return []domain.Segment{{Text: raw}}
	}
	return segments
}
