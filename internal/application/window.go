package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
)

const scrollPollInterval = 10 * time.Millisecond

var ErrNoSurface = errors.New("window requires a surface and a viewport")

type WindowDeps struct {
	Surface  ports.Surface
	Viewport ports.Viewport
	Clock    ports.Clock
	Bus      *Bus
	Logger   *log.Logger
}

type Window struct {
	script   domain.Script
	resolved domain.EffectiveWindowConfig

	surface  ports.Surface
	viewport ports.Viewport
	clock    ports.Clock
	bus      *Bus
	logger   *log.Logger
	player   *LinePlayer
	follower *Follower

	// lifecycle serialises start, restart and close.
	lifecycle sync.Mutex
	runCtx    context.Context
	started   bool
	closed    bool
	visible   *Subscription

	mu        sync.Mutex
	session   *Session
	maximized bool
}

func NewWindow(script domain.Script, deps WindowDeps) (*Window, error) {
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("validate script %q: %w", script.Name, err)
	}
	if deps.Surface == nil || deps.Viewport == nil {
		return nil, ErrNoSurface
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Bus == nil {
		deps.Bus = NewBus()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}

	return &Window{
		script:   script,
		resolved: domain.ResolveWindow(script.WindowOrDefault()),
		surface:  deps.Surface,
		viewport: deps.Viewport,
		clock:    deps.Clock,
		bus:      deps.Bus,
		logger:   deps.Logger,
		player:   NewLinePlayer(deps.Surface, deps.Clock, deps.Bus),
		follower: NewFollower(deps.Viewport, deps.Bus),
	}, nil
}

func (w *Window) Script() domain.Script {
	return w.script
}

func (w *Window) Bus() *Bus {
	return w.bus
}

func (w *Window) Follower() *Follower {
	return w.follower
}

func (w *Window) Session() *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// StartIfVisible starts playback right away for init and static windows.
// Other windows start the first time SetVisible(true) is signalled.
func (w *Window) StartIfVisible(ctx context.Context) {
	if w.resolved.Init || w.resolved.Static {
		w.start(ctx)
		return
	}

	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()
	if w.started || w.closed || w.visible != nil {
		return
	}
	w.visible = w.bus.Subscribe(EventVisible, func(event Event) {
		if event.Visible {
			w.start(ctx)
		}
	})
}

func (w *Window) SetVisible(visible bool) {
	w.bus.Publish(Event{Type: EventVisible, Visible: visible})
}

func (w *Window) start(ctx context.Context) {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	if w.started || w.closed {
		return
	}
	w.started = true
	w.visible.Unsubscribe()
	w.visible = nil
	w.runCtx = ctx
	w.launch()
}

// FastForward collapses every remaining delay of the live session. Calling
// it again, or before playback started, does nothing.
func (w *Window) FastForward() {
	session := w.Session()
	if session == nil {
		return
	}

	if session.fastForward(w.surface) {
		w.logger.Printf("session %s: fast-forward at line %d", session.ID, session.Position())
	}
}

// Restart abandons the live session, waits until its pending waits have
// returned, scrolls back to the top and plays a fresh session.
func (w *Window) Restart(ctx context.Context) error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	if w.closed {
		return nil
	}

	old := w.Session()
	if old != nil {
		old.abort()
	}
	w.follower.Detach()

	if old != nil {
		select {
		case <-old.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
		w.logger.Printf("session %s: restarted", old.ID)
	}

	if err := w.scrollToTop(ctx); err != nil {
		return err
	}

	if w.runCtx == nil {
		w.runCtx = ctx
	}
	w.started = true
	w.visible.Unsubscribe()
	w.visible = nil
	w.launch()

	return nil
}

func (w *Window) Close() {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.visible.Unsubscribe()
	w.visible = nil

	if session := w.Session(); session != nil {
		session.abort()
		<-session.Done()
	}
	w.follower.Detach()
}

// Wait blocks until the session that is live when it is called finishes.
func (w *Window) Wait(ctx context.Context) error {
	session := w.Session()
	if session == nil {
		return nil
	}

	select {
	case <-session.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Window) ImageMaximized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maximized
}

func (w *Window) ToggleImage() {
	if w.script.Image == nil {
		return
	}

	w.mu.Lock()
	maximized := !w.maximized
	w.mu.Unlock()

	w.SetImageMaximized(maximized)
}

func (w *Window) SetImageMaximized(maximized bool) {
	if w.script.Image == nil {
		return
	}

	w.mu.Lock()
	if w.maximized == maximized {
		w.mu.Unlock()
		return
	}
	w.maximized = maximized
	w.surface.SetImageMaximized(maximized)
	w.mu.Unlock()

	w.bus.Publish(Event{Type: EventImageToggled, Maximized: maximized})
}

// launch must be called with the lifecycle lock held and no live session.
func (w *Window) launch() {
	session := newSession(w.script)

	w.mu.Lock()
	w.session = session
	w.mu.Unlock()

	w.follower.Attach()
	go w.run(w.runCtx, session)
}

func (w *Window) run(ctx context.Context, session *Session) {
	defer close(session.done)

	w.logger.Printf("session %s: started (%d lines, static=%t)", session.ID, len(w.script.Lines), w.resolved.Static)
	w.bus.Publish(Event{Type: EventSessionStarted, Session: session.ID})

	outcome := w.play(ctx, session)
	session.tasks.Wait()

	w.logger.Printf("session %s: %s", session.ID, outcome)
	w.bus.Publish(Event{Type: EventSessionFinished, Session: session.ID, Outcome: outcome})
}

func (w *Window) play(ctx context.Context, session *Session) Outcome {
	w.resetSurface(session)

	if session.tokens.Sleep(ctx, w.clock, session.startDelayValue()) == WaitReset {
		return OutcomeAbandoned
	}
	session.showFastControl(w.surface)

	image := w.script.Image
	for i, line := range w.script.Lines {
		if image != nil && image.Index == i {
			if w.runImage(ctx, session) == OutcomeAbandoned {
				return OutcomeAbandoned
			}
		}

		session.setPosition(i)
		if w.player.Play(ctx, i, line, session.lineConfig(i), session.tokens, session.ID) == OutcomeAbandoned {
			return OutcomeAbandoned
		}
	}

	if image != nil && image.Index == len(w.script.Lines) {
		if w.runImage(ctx, session) == OutcomeAbandoned {
			return OutcomeAbandoned
		}
	}

	if !session.finishControls(w.surface) {
		return OutcomeAbandoned
	}

	return OutcomeCompleted
}

func (w *Window) resetSurface(session *Session) {
	w.surface.SetControlVisible(ports.ControlFast, false)
	w.surface.SetControlVisible(ports.ControlRestart, false)

	for i, line := range w.script.Lines {
		cfg := session.lineConfig(i)
		w.surface.ConfigureLine(i, cfg.PrefixMarkup(), cfg.CursorMarkup())
		w.surface.SetTyping(i, false)
		w.surface.SetCursor(i, false)
		w.surface.SetLineVisible(i, false)
		w.surface.SetPrefixVisible(i, false)
		for s, segment := range line.Segments {
			w.surface.SetSegmentText(i, s, segment.Text)
		}
		if cfg.Kind == domain.LineKindProgress {
			w.surface.SetLineText(i, "")
		}
	}

	w.SetImageMaximized(false)
}

// runImage reveals the image and, for a finite display time, hides it
// again before returning. An image shown forever is revealed by a
// background task so the following lines are not held up.
func (w *Window) runImage(ctx context.Context, session *Session) Outcome {
	cfg := session.imageConfig()
	if !cfg.Time.Infinite {
		return w.imageSequence(ctx, session, cfg)
	}

	session.tasks.Add(1)
	go func() {
		defer session.tasks.Done()
		w.imageSequence(ctx, session, cfg)
	}()

	return OutcomeCompleted
}

func (w *Window) imageSequence(ctx context.Context, session *Session, cfg domain.EffectiveImageConfig) Outcome {
	if session.tokens.Sleep(ctx, w.clock, cfg.Delay) == WaitReset {
		return OutcomeAbandoned
	}
	w.SetImageMaximized(true)
	w.logger.Printf("session %s: image maximized", session.ID)

	if cfg.Time.Infinite {
		return OutcomeCompleted
	}

	if session.tokens.Sleep(ctx, w.clock, session.imageConfig().Time.Duration) == WaitReset {
		return OutcomeAbandoned
	}
	w.SetImageMaximized(false)
	w.logger.Printf("session %s: image minimized", session.ID)

	return OutcomeCompleted
}

func (w *Window) scrollToTop(ctx context.Context) error {
	w.viewport.ScrollTo(0)
	for w.viewport.ScrollTop() != 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.clock.After(scrollPollInterval):
		}
	}

	return nil
}
