package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/termdemo/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// playbackProgress follows a window's bus and counts the lines the current
// session has finished typing.
type playbackProgress struct {
	mu       sync.Mutex
	total    int
	finished int
	image    bool

	subs []*application.Subscription
}

// trackPlayback must run before the window starts so that no line event is
// missed.
func trackPlayback(window *application.Window) *playbackProgress {
	progress := &playbackProgress{total: len(window.Script().Lines)}

	bus := window.Bus()
	progress.subs = []*application.Subscription{
		bus.Subscribe(application.EventSessionStarted, progress.onSessionStarted),
		bus.Subscribe(application.EventLineFinished, progress.onLineFinished),
		bus.Subscribe(application.EventImageToggled, progress.onImageToggled),
	}
	return progress
}

func (p *playbackProgress) stop() {
	for _, sub := range p.subs {
		sub.Unsubscribe()
	}
}

func (p *playbackProgress) onSessionStarted(application.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = 0
}

func (p *playbackProgress) onLineFinished(event application.Event) {
	if event.Outcome != application.OutcomeCompleted {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = max(p.finished, event.Line+1)
}

func (p *playbackProgress) onImageToggled(event application.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = event.Maximized
}

func (p *playbackProgress) snapshot() (finished, total int, image bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished, p.total, p.image
}

type playbackDoneMsg struct {
	err error
}

type playbackSpinnerModel struct {
	spinner  spinner.Model
	name     string
	progress *playbackProgress
	wait     tea.Cmd
	err      error
	done     bool
}

func newPlaybackSpinnerModel(name string, progress *playbackProgress, wait tea.Cmd) playbackSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return playbackSpinnerModel{
		spinner:  s,
		name:     name,
		progress: progress,
		wait:     wait,
	}
}

func (m playbackSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m playbackSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case playbackDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m playbackSpinnerModel) View() string {
	finished, total, image := m.progress.snapshot()
	if m.done {
		return fmt.Sprintf("Played %s: %d/%d lines\n", m.name, finished, total)
	}

	status := fmt.Sprintf("line %d/%d", finished, total)
	if image {
		status += "  " + imageIconLabel
	}
	return fmt.Sprintf("%s Playing %s...  %s", m.spinner.View(), m.name, status)
}

const imageIconLabel = "▣ image"

// runPlaybackSpinner shows playback progress on output until the window's
// session is done.
func runPlaybackSpinner(ctx context.Context, output io.Writer, name string, progress *playbackProgress, wait func(context.Context) error) error {
	waitCmd := func() tea.Msg {
		return playbackDoneMsg{err: wait(ctx)}
	}

	p := tea.NewProgram(
		newPlaybackSpinnerModel(name, progress, waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(playbackSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
