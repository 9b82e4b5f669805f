package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDecode   EventType = "decode"
	EventRender   EventType = "render"
	EventEffect   EventType = "effect"
	EventOverflow EventType = "overflow"
	EventDrop     EventType = "drop"
	EventError    EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	MenuID    string    `json:"menu_id,omitempty"`
}

// NewEventBase stamps an event of type t for menuID.
func NewEventBase(t EventType, menuID string) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t, MenuID: menuID}
}

// DecodeEvent reports a state recovered from an interaction.
type DecodeEvent struct {
	EventBase
	Component string `json:"component"`
	StateSize int    `json:"state_size"`
}

// RenderEvent reports a completed render.
type RenderEvent struct {
	EventBase
	Components int           `json:"components"`
	StateSize  int           `json:"state_size"`
	Capacity   int           `json:"capacity"`
	Duration   time.Duration `json:"duration"`
}

// EffectEvent reports one dispatched effect.
type EffectEvent struct {
	EventBase
	Field string `json:"field"`
	Depth int    `json:"depth"`
}

// OverflowEvent reports a state that did not fit its slots.
type OverflowEvent struct {
	EventBase
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
	Leftover int `json:"leftover"`
}

// DropEvent reports an interaction the engine ignored.
type DropEvent struct {
	EventBase
	CustomID string `json:"custom_id"`
	Reason   string `json:"reason"`
}

// ErrorEvent reports a failed cycle.
type ErrorEvent struct {
	EventBase
	Component string `json:"component,omitempty"`
	Err       error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDecode   func(context.Context, *DecodeEvent)
	OnRender   func(context.Context, *RenderEvent)
	OnEffect   func(context.Context, *EffectEvent)
	OnOverflow func(context.Context, *OverflowEvent)
	OnDrop     func(context.Context, *DropEvent)
	OnError    func(context.Context, *ErrorEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDecode:   chain(h.OnDecode, other.OnDecode),
		OnRender:   chain(h.OnRender, other.OnRender),
		OnEffect:   chain(h.OnEffect, other.OnEffect),
		OnOverflow: chain(h.OnOverflow, other.OnOverflow),
		OnDrop:     chain(h.OnDrop, other.OnDrop),
		OnError:    chain(h.OnError, other.OnError),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
