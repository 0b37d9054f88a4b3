package application

import (
	"sync"

	"github.com/bnema/termdemo/internal/ports"
)

// Follower keeps the line after the one that just finished typing in view.
// It stops reacting for the rest of the session once the user scrolls.
type Follower struct {
	viewport ports.Viewport
	bus      *Bus

	mu      sync.Mutex
	sub     *Subscription
	engaged bool
}

func NewFollower(viewport ports.Viewport, bus *Bus) *Follower {
	return &Follower{viewport: viewport, bus: bus}
}

func (f *Follower) Attach() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sub.Unsubscribe()
	f.sub = f.bus.Subscribe(EventLineFinished, f.onLineFinished)
	f.engaged = true
}

func (f *Follower) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sub.Unsubscribe()
	f.sub = nil
	f.engaged = false
}

func (f *Follower) Disengage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.engaged = false
}

func (f *Follower) Engaged() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.engaged
}

func (f *Follower) onLineFinished(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.engaged {
		return
	}
	f.follow(event.Line)
}

func (f *Follower) follow(line int) {
	vp := f.viewport

	next := line + 1
	if next >= vp.LineCount() {
		vp.ScrollTo(vp.MaxScrollTop())
		return
	}

	top, height := vp.LineBounds(next)
	scroll := vp.ScrollTop()
	if top >= scroll && top+height <= scroll+vp.Height() {
		return
	}

	_, finished := vp.LineBounds(line)
	vp.ScrollTo(min(scroll+finished, vp.MaxScrollTop()))
}
