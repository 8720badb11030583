// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/texthistory/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; consumed events are not passed to later handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Handler subscribed to type %v", eventType)
}

// HandlerCount reports how many handlers listen to eventType.
func (m *Manager) HandlerCount(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}

// Dispatch sends an event to the registered handlers for its type, synchronously and in
// subscription order. It reports whether a handler consumed the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return false
	}

	logger.DebugTagf("event", "Dispatching %v to %d handler(s)", eventType, len(handlers))

	// Handlers run on the copy so a handler may subscribe during dispatch.
	for _, handler := range handlers {
		if handler(event) {
			return true
		}
	}
	return false
}
