package application

import (
	"sync"
	"time"

	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	"github.com/google/uuid"
)

// Session is one run of a window's animation, from start to completion or
// abandonment. It owns its token pair and a resolved copy of every delay, so
// fast-forward can zero them without touching the declaration.
type Session struct {
	ID     string
	tokens Tokens
	static bool

	mu         sync.Mutex
	startDelay time.Duration
	lines      []domain.EffectiveLineConfig
	image      domain.EffectiveImageConfig
	position   int

	tasks sync.WaitGroup
	done  chan struct{}
}

func newSession(script domain.Script) *Session {
	window := script.WindowOrDefault()
	resolved := domain.ResolveWindow(window)

	s := &Session{
		ID:         uuid.NewString(),
		tokens:     NewTokens(),
		static:     resolved.Static,
		startDelay: resolved.StartDelay,
		lines:      make([]domain.EffectiveLineConfig, len(script.Lines)),
		position:   -1,
		done:       make(chan struct{}),
	}
	for i, line := range script.Lines {
		s.lines[i] = domain.Resolve(line, window)
	}
	if script.Image != nil {
		s.image = domain.ResolveImage(*script.Image, window)
	}

	if s.static {
		s.tokens.Fast.Abort()
		s.zeroDelaysLocked()
	}

	return s
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Session) FastForwarded() bool {
	return s.tokens.Fast.Aborted()
}

func (s *Session) Abandoned() bool {
	return s.tokens.Reset.Aborted()
}

func (s *Session) setPosition(index int) {
	s.mu.Lock()
	s.position = index
	s.mu.Unlock()
}

func (s *Session) lineConfig(index int) domain.EffectiveLineConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[index]
}

func (s *Session) startDelayValue() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startDelay
}

func (s *Session) imageConfig() domain.EffectiveImageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// fastForward aborts the fast token and zeroes the remaining delays. It
// reports false when the session was already fast-forwarded.
func (s *Session) fastForward(surface ports.Surface) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.Fast.Abort() {
		return false
	}
	s.zeroDelaysLocked()
	surface.SetControlVisible(ports.ControlFast, false)

	return true
}

func (s *Session) showFastControl(surface ports.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.static || s.tokens.Fast.Aborted() || s.tokens.Reset.Aborted() {
		return
	}
	surface.SetControlVisible(ports.ControlFast, true)
}

func (s *Session) finishControls(surface ports.Surface) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.Reset.Aborted() {
		return false
	}
	surface.SetControlVisible(ports.ControlFast, false)
	if !s.static {
		surface.SetControlVisible(ports.ControlRestart, true)
	}

	return true
}

func (s *Session) abort() {
	s.tokens.Fast.Abort()
	s.tokens.Reset.Abort()
}

func (s *Session) zeroDelaysLocked() {
	s.startDelay = 0
	for i := range s.lines {
		s.lines[i].ZeroDelays()
	}
	s.image.Delay = 0
	s.image.Time.Duration = 0
}
