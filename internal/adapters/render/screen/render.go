package screen

import (
	"strings"

	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	titleDots = "● ● ●"
	imageIcon = "▣"
)

// cell is one grapheme cluster and the style part it is drawn with.
type cell struct {
	text  string
	part  string
	width int
}

func textWidth(text string) int {
	width := 0
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		width += runewidth.StringWidth(graphemes.Str())
	}
	return width
}

func appendCells(cells []cell, part, text string) []cell {
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		cluster := graphemes.Str()
		cells = append(cells, cell{text: cluster, part: part, width: runewidth.StringWidth(cluster)})
	}
	return cells
}

func segmentCells(segments []domain.Segment) []cell {
	var cells []cell
	for _, segment := range segments {
		cells = appendCells(cells, segment.Style, segment.Text)
	}
	return cells
}

func cellsWidth(cells []cell) int {
	width := 0
	for _, c := range cells {
		width += c.width
	}
	return width
}

// lineCells lays out prefix, content and cursor of a line.
func (s *Screen) lineCells(l *lineState) []cell {
	var cells []cell
	if l.prefixVisible && len(l.prefix) > 0 {
		cells = append(cells, segmentCells(l.prefix)...)
		cells = appendCells(cells, partText, " ")
	}

	if l.hasText {
		cells = appendCells(cells, partProgress, l.text)
	} else {
		cells = append(cells, segmentCells(l.segments)...)
	}

	if l.cursor {
		cells = appendCells(cells, partCursor, l.cursorAt)
	}
	return cells
}

// wrapCells breaks cells into rows of at most width cells and at every
// newline. A line always takes at least one row so that hidden lines keep
// their place.
func wrapCells(cells []cell, width int) [][]cell {
	rows := [][]cell{nil}
	used := 0
	for _, c := range cells {
		if isNewline(c.text) {
			rows = append(rows, nil)
			used = 0
			continue
		}
		if used+c.width > width && used > 0 {
			rows = append(rows, nil)
			used = 0
		}
		last := len(rows) - 1
		rows[last] = append(rows[last], c)
		used += c.width
	}
	return rows
}

func isNewline(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n" || cluster == "\r"
}

// renderRow styles runs of cells sharing a part and pads the row to the
// content width.
func (s *Screen) renderRow(row []cell) string {
	var (
		b    strings.Builder
		run  strings.Builder
		part string
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(s.theme.Style(part).Render(run.String()))
		run.Reset()
	}

	for i, c := range row {
		if i > 0 && c.part != part {
			flush()
		}
		part = c.part
		run.WriteString(c.text)
	}
	flush()

	if pad := s.width - cellsWidth(row); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

// View renders the window with the body scrolled to the viewport.
func (s *Screen) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	body := s.vp.View()
	if s.imageMax && s.image != nil {
		body = s.imageView(s.height)
	}
	return s.frameLocked(body)
}

// Frame renders the window with every row of the body, ignoring the
// viewport height.
func (s *Screen) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	rows := s.rows
	if len(rows) == 0 {
		rows = []string{strings.Repeat(" ", s.width)}
	}
	body := strings.Join(rows, "\n")
	if s.imageMax && s.image != nil {
		body = s.imageView(len(rows))
	}
	return s.frameLocked(body)
}

func (s *Screen) frameLocked(body string) string {
	return s.theme.Style(PartContainer).Render(
		lipgloss.JoinVertical(lipgloss.Left, s.titleBar(), body),
	)
}

func (s *Screen) titleBar() string {
	left := s.theme.Style(partChrome).Render(titleDots)
	if s.title != "" {
		left += "  " + s.theme.Style(partChrome).Render(s.title)
	}

	var right []string
	if s.image != nil && !s.imageMax {
		right = append(right, s.theme.Style(PartImageIcon).Render(imageIcon+" "+imageLabel(s.image)))
	}
	if s.controls[ports.ControlFast] {
		right = append(right, s.theme.Style(PartFast).Render("⏩ fast-forward"))
	}
	if s.controls[ports.ControlRestart] {
		right = append(right, s.theme.Style(PartRestart).Render("↻ restart"))
	}
	rightText := strings.Join(right, "  ")

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + rightText
}

func (s *Screen) imageView(height int) string {
	box := s.theme.Style(PartImage).Render(lipgloss.JoinVertical(lipgloss.Center,
		imageIcon+" "+imageLabel(s.image),
		s.image.Source,
	))
	return lipgloss.Place(s.width, max(height, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

func imageLabel(image *domain.Image) string {
	if image.Alt != "" {
		return image.Alt
	}
	return "image"
}
