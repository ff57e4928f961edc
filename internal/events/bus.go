// Package events provides the typed change-notification bus connecting the
// stores to the presentation layer. Topics are typed constants rather than
// ad hoc string event names, so a subscriber cannot listen to a topic that
// does not exist.
package events

import "sync"

// Topic identifies a class of state change.
type Topic string

const (
	// TopicLedgerChanged fires after any ledger mutation commits.
	TopicLedgerChanged Topic = "ledger.changed"
	// TopicGoalChanged fires after the goal configuration is saved.
	TopicGoalChanged Topic = "goal.changed"
	// TopicTimerChanged fires after the chronograph timer starts, pauses,
	// or resets.
	TopicTimerChanged Topic = "timer.changed"
)

// Event carries the topic and an optional payload snapshot.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events for a subscribed topic.
type Handler func(Event)

// Bus is a synchronous publish/subscribe bus. Handlers run on the emitting
// goroutine after the mutating write completes; there is no cross-topic
// ordering guarantee.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[Topic]map[int]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Topic]map[int]Handler),
	}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	b.handlers[topic][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// Emit delivers an event to every handler subscribed to its topic.
func (b *Bus) Emit(topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	event := Event{Topic: topic, Payload: payload}
	for _, h := range handlers {
		h(event)
	}
}

// SubscriberCount reports the number of handlers on a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}
