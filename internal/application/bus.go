package application

import "sync"

type EventType string

const (
	EventSessionStarted  EventType = "session.started"
	EventSessionFinished EventType = "session.finished"
	EventLineStarted     EventType = "line.started"
	EventLineFinished    EventType = "line.finished"
	EventImageToggled    EventType = "image.toggled"
	EventVisible         EventType = "window.visible"
)

type Event struct {
	Type      EventType
	Session   string
	Line      int
	Outcome   Outcome
	Visible   bool
	Maximized bool
}

type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine. Handlers run without the bus lock held, so they may
// subscribe or unsubscribe.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[EventType][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscriber)}
}

func (b *Bus) Subscribe(eventType EventType, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscriber{id: id, handler: handler})

	return &Subscription{bus: b, eventType: eventType, id: id}
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.subs[event.Type]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

func (b *Bus) unsubscribe(eventType EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, sub := range subs {
		if sub.id == id {
			b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

type Subscription struct {
	bus       *Bus
	eventType EventType
	id        uint64
	once      sync.Once
}

func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.unsubscribe(s.eventType, s.id)
	})
}
