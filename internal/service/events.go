package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawquest/internal/models"
)

// defaultSubscriberBuffer is the channel capacity for each subscriber
const defaultSubscriberBuffer = 32

// EventEmitter fans typed game events out to subscribers. The engine
// publishes; the presentation layer subscribes. Publishing never blocks —
// a subscriber that falls behind loses events rather than stalling play.
type EventEmitter struct {
	mu          sync.RWMutex
	subscribers map[string]chan models.GameEvent
}

// NewEventEmitter creates an emitter with no subscribers
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		subscribers: make(map[string]chan models.GameEvent),
	}
}

// Subscribe registers a new subscriber and returns its id and a receive
// channel. The channel is closed on Unsubscribe.
func (e *EventEmitter) Subscribe() (string, <-chan models.GameEvent) {
	ch := make(chan models.GameEvent, defaultSubscriberBuffer)
	id := uuid.NewString()

	e.mu.Lock()
	e.subscribers[id] = ch
	e.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (e *EventEmitter) Unsubscribe(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ch, ok := e.subscribers[id]; ok {
		delete(e.subscribers, id)
		close(ch)
	}
}

// Publish delivers an event to every subscriber without blocking
func (e *EventEmitter) Publish(event models.GameEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	for id, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("event subscriber %s is full, dropping %s", id, event.Type)
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (e *EventEmitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}
