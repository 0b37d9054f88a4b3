package inspect

import (
	"context"
	"errors"
	"io"

	"github.com/bnema/termdemo/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// reportEntry is one body row of the report: a line, or the image placed
// before the line at its index.
type reportEntry struct {
	line  *application.LineInspection
	image *application.ImageInspection
}

type entryMsg int

type reportDoneMsg struct{}

type model struct {
	inspection application.Inspection
	opts       RenderOptions
	styles     styles
	entries    []reportEntry
	body       []string
	output     string
}

func newModel(inspection application.Inspection, opts RenderOptions) model {
	return model{
		inspection: inspection,
		opts:       opts,
		styles:     newStyles(),
		entries:    planEntries(inspection),
	}
}

func planEntries(inspection application.Inspection) []reportEntry {
	image := inspection.Image
	entries := make([]reportEntry, 0, len(inspection.Lines)+1)
	for i := range inspection.Lines {
		line := &inspection.Lines[i]
		if image != nil && image.Index == line.Index {
			entries = append(entries, reportEntry{image: image})
		}
		entries = append(entries, reportEntry{line: line})
	}
	if image != nil && image.Index >= len(inspection.Lines) {
		entries = append(entries, reportEntry{image: image})
	}
	return entries
}

func (m model) next(i int) tea.Cmd {
	if i >= len(m.entries) {
		return func() tea.Msg { return reportDoneMsg{} }
	}
	return func() tea.Msg { return entryMsg(i) }
}

func (m model) Init() tea.Cmd {
	return m.next(0)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entryMsg:
		entry := m.entries[msg]
		if entry.image != nil {
			m.body = append(m.body, renderImage(*entry.image, m.styles))
		} else {
			m.body = append(m.body, renderLine(*entry.line, m.opts, m.styles))
		}
		return m, m.next(int(msg) + 1)
	case reportDoneMsg:
		m.output = composeReport(m.inspection, m.body, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out the resolved configuration of a script as a styled
// report.
func Render(ctx context.Context, inspection application.Inspection, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(inspection, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
