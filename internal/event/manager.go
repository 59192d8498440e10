// internal/event/manager.go
package event

import (
	"sync"

	"github.com/fennwick/scribe/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed.
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
	logger.Debugf("Event Manager: Handler subscribed to type %v", eventType)
}

// Dispatch sends an event to all registered handlers for its type.
// Handlers run synchronously; the core is single-threaded.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	for _, h := range handlers {
		if consumed := h(event); consumed {
			break
		}
	}
}
