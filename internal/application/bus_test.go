package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(EventLineFinished, func(Event) { got = append(got, "first") })
	bus.Subscribe(EventLineFinished, func(Event) { got = append(got, "second") })
	bus.Subscribe(EventLineStarted, func(Event) { got = append(got, "other") })

	bus.Publish(Event{Type: EventLineFinished, Line: 3})

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0

	sub := bus.Subscribe(EventVisible, func(Event) { calls++ })
	bus.Publish(Event{Type: EventVisible})
	sub.Unsubscribe()
	sub.Unsubscribe()
	bus.Publish(Event{Type: EventVisible})

	assert.Equal(t, 1, calls)

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Unsubscribe)
}

func TestBusHandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewBus()
	calls := 0

	var sub *Subscription
	sub = bus.Subscribe(EventVisible, func(Event) {
		calls++
		sub.Unsubscribe()
	})

	bus.Publish(Event{Type: EventVisible})
	bus.Publish(Event{Type: EventVisible})

	assert.Equal(t, 1, calls)
}
