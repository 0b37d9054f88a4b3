package application

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/termdemo/internal/ports"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.timers = append(c.timers, fakeTimer{deadline: c.now.Add(d), ch: ch})
	return ch
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	remaining := c.timers[:0]
	for _, timer := range c.timers {
		if timer.deadline.After(c.now) {
			remaining = append(remaining, timer)
			continue
		}
		timer.ch <- c.now
	}
	c.timers = remaining
}

func waitPending(t *testing.T, clock *fakeClock, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return clock.Pending() == n }, time.Second, time.Millisecond)
}

var _ ports.Clock = (*fakeClock)(nil)

type fakeLine struct {
	visible       bool
	prefixVisible bool
	prefix        string
	cursorMarkup  string
	segments      map[int]string
	text          *string
	cursor        bool
	typing        bool
}

// fakeSurface records what the engine draws. Every line is one row tall.
type fakeSurface struct {
	mu        sync.Mutex
	lines     []*fakeLine
	controls  map[ports.Control]bool
	maximized bool
	appends   []string
	width     int

	scrollTop  int
	height     int
	scrollLog  []int
	scrollHook func(top int)
}

func newFakeSurface(lines, height int) *fakeSurface {
	s := &fakeSurface{
		controls: make(map[ports.Control]bool),
		width:    50,
		height:   height,
	}
	for i := 0; i < lines; i++ {
		s.lines = append(s.lines, &fakeLine{segments: make(map[int]string)})
	}
	return s
}

func (s *fakeSurface) ConfigureLine(line int, prefixMarkup, cursorMarkup string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].prefix = prefixMarkup
	s.lines[line].cursorMarkup = cursorMarkup
}

func (s *fakeSurface) SetLineVisible(line int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].visible = visible
}

func (s *fakeSurface) SetPrefixVisible(line int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].prefixVisible = visible
}

func (s *fakeSurface) SetSegmentText(line, segment int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].segments[segment] = text
}

func (s *fakeSurface) AppendSegmentText(line, segment int, unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].segments[segment] += unit
	s.appends = append(s.appends, fmt.Sprintf("%d:%d:%s", line, segment, unit))
}

func (s *fakeSurface) SetLineText(line int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].text = &text
}

func (s *fakeSurface) SetCursor(line int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].cursor = on
}

func (s *fakeSurface) SetTyping(line int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line].typing = on
}

func (s *fakeSurface) SetControlVisible(control ports.Control, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls[control] = visible
}

func (s *fakeSurface) SetImageMaximized(maximized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maximized = maximized
}

func (s *fakeSurface) LineWidth(int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *fakeSurface) TextWidth(text string) int {
	return len([]rune(text))
}

func (s *fakeSurface) ScrollTop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollTop
}

func (s *fakeSurface) ScrollTo(top int) {
	s.mu.Lock()
	s.scrollTop = top
	s.scrollLog = append(s.scrollLog, top)
	hook := s.scrollHook
	s.mu.Unlock()

	if hook != nil {
		hook(top)
	}
}

func (s *fakeSurface) MaxScrollTop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(0, len(s.lines)-s.height)
}

func (s *fakeSurface) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *fakeSurface) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *fakeSurface) LineBounds(line int) (int, int) {
	return line, 1
}

func (s *fakeSurface) snapshot(line int) fakeLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *s.lines[line]
	copied.segments = make(map[int]string, len(s.lines[line].segments))
	for k, v := range s.lines[line].segments {
		copied.segments[k] = v
	}
	return copied
}

func (s *fakeSurface) lineText(line int) string {
	snap := s.snapshot(line)
	if snap.text != nil {
		return *snap.text
	}
	text := ""
	for i := 0; i < len(snap.segments); i++ {
		text += snap.segments[i]
	}
	return text
}

func (s *fakeSurface) control(control ports.Control) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls[control]
}

func (s *fakeSurface) appendLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.appends...)
}

func (s *fakeSurface) imageMaximized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maximized
}

var (
	_ ports.Surface  = (*fakeSurface)(nil)
	_ ports.Viewport = (*fakeSurface)(nil)
)

// eventRecorder collects bus events of the given types.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func recordEvents(bus *Bus, types ...EventType) *eventRecorder {
	r := &eventRecorder{}
	for _, eventType := range types {
		bus.Subscribe(eventType, func(event Event) {
			r.mu.Lock()
			r.events = append(r.events, event)
			r.mu.Unlock()
		})
	}
	return r
}

func (r *eventRecorder) list() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *eventRecorder) count(eventType EventType) int {
	n := 0
	for _, event := range r.list() {
		if event.Type == eventType {
			n++
		}
	}
	return n
}
