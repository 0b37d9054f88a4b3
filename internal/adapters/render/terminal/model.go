// Package terminal hosts a window in a bubbletea program. Engine calls run
// as commands and the view is redrawn on a frame tick, so the playback
// goroutine never waits on the UI.
package terminal

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/bnema/termdemo/internal/adapters/render/screen"
	"github.com/bnema/termdemo/internal/application"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DefaultFPS = 30

// Loader builds a fresh window and screen, used when the script changes on
// disk.
type Loader func(ctx context.Context) (*application.Window, *screen.Screen, error)

type Options struct {
	// Width and Height fix the window size; zero follows the terminal.
	Width  int
	Height int
	FPS    int

	Reload  Loader
	Changes <-chan struct{}
	Logger  *log.Logger

	Input  io.Reader
	Output io.Writer
	// Inline skips the alternate screen.
	Inline bool
}

type frameMsg time.Time

type restartedMsg struct{ err error }

type reloadedMsg struct {
	window *application.Window
	screen *screen.Screen
	err    error
}

// ScriptChangedMsg asks the model to reload its script.
type ScriptChangedMsg struct{}

type Model struct {
	ctx    context.Context
	window *application.Window
	screen *screen.Screen
	opts   Options
	logger *log.Logger

	keys   KeyMap
	help   help.Model
	errors lipgloss.Style

	width   int
	height  int
	visible bool
	err     error
}

// NewModel arms the window: init and static windows start right away, the
// others on the first frame.
func NewModel(ctx context.Context, window *application.Window, scr *screen.Screen, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	window.StartIfVisible(ctx)

	return Model{
		ctx:    ctx,
		window: window,
		screen: scr,
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		errors: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.visible {
			return m, nil
		}
		m.visible = true
		window := m.window
		return m, func() tea.Msg {
			window.SetVisible(true)
			return nil
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			m.window.Follower().Disengage()
			return m, m.screen.UpdateViewport(msg)
		}
		return m, nil

	case restartedMsg:
		m.err = msg.err
		return m, nil

	case ScriptChangedMsg:
		if m.opts.Reload == nil {
			return m, nil
		}
		ctx, reload := m.ctx, m.opts.Reload
		return m, func() tea.Msg {
			window, scr, err := reload(ctx)
			return reloadedMsg{window: window, screen: scr, err: err}
		}

	case reloadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Printf("reload script: %v", msg.err)
			return m, nil
		}
		old := m.window
		m.window, m.screen, m.err = msg.window, msg.screen, nil
		m.resize()
		m.window.StartIfVisible(m.ctx)
		window, visible := m.window, m.visible
		return m, func() tea.Msg {
			old.Close()
			if visible {
				window.SetVisible(true)
			}
			return nil
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	window := m.window
	static := m.static()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg {
			window.Close()
			return tea.QuitMsg{}
		}
	case key.Matches(msg, m.keys.Fast) && !static:
		return m, func() tea.Msg {
			window.FastForward()
			return nil
		}
	case key.Matches(msg, m.keys.Restart) && !static:
		ctx := m.ctx
		return m, func() tea.Msg {
			return restartedMsg{err: window.Restart(ctx)}
		}
	case key.Matches(msg, m.keys.Image):
		return m, func() tea.Msg {
			window.ToggleImage()
			return nil
		}
	case key.Matches(msg, m.keys.scroll()...):
		window.Follower().Disengage()
		return m, m.screen.UpdateViewport(msg)
	}

	return m, nil
}

func (m Model) View() string {
	view := m.screen.View()
	if m.err != nil {
		view += "\n" + m.errors.Render(m.err.Error())
	}
	return view + "\n" + m.help.View(m.keys)
}

func (m Model) static() bool {
	script := m.window.Script()
	return script.Window != nil && script.Window.Static
}

// resize fits the screen in the terminal, leaving a row for the help
// footer.
func (m Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	width, height := m.width, m.height-1
	if m.opts.Width > 0 {
		width = min(width, m.opts.Width)
	}
	if m.opts.Height > 0 {
		height = min(height, m.opts.Height)
	}
	m.screen.Resize(width, height)
}

// Run plays a window until the user quits or ctx is done.
func Run(ctx context.Context, window *application.Window, scr *screen.Screen, opts Options) error {
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if !opts.Inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(NewModel(ctx, window, scr, opts), programOpts...)

	if opts.Changes != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-opts.Changes:
					if !ok {
						return
					}
					p.Send(ScriptChangedMsg{})
				}
			}
		}()
	}

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.window.Close()
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
