package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
)

// StreamManager fans lifecycle events out to SSE subscribers. Subscribers
// of the empty topic receive every event.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // topic -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates a StreamManager. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Subscribers counts the subscribers of topic.
func (sm *StreamManager) Subscribers(topic string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic])
}

// Broadcast sends msg to the subscribers of topic and of the empty topic.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.send(topic, msg)
	if topic != "" {
		sm.send("", msg)
	}
}

func (sm *StreamManager) send(topic, msg string) {
	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping event", "topic", topic)
		}
	}
}

// EventHooks returns lifecycle hooks that publish events as JSON to sm,
// keyed by menu id.
func EventHooks(sm *StreamManager) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRender:   func(_ context.Context, e *domain.RenderEvent) { sm.publish(e.MenuID, e) },
		OnOverflow: func(_ context.Context, e *domain.OverflowEvent) { sm.publish(e.MenuID, e) },
		OnDrop:     func(_ context.Context, e *domain.DropEvent) { sm.publish(e.MenuID, e) },
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			msg := ""
			if e.Err != nil {
				msg = e.Err.Error()
			}
			sm.publish(e.MenuID, struct {
				*domain.ErrorEvent
				Error string `json:"error"`
			}{e, msg})
		},
	}
}

func (sm *StreamManager) publish(topic string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		sm.logger.Warn("SSE: event encode failed", "error", err)
		return
	}
	sm.Broadcast(topic, string(data))
}
