package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDispatch EventType = "dispatch"
	EventReset    EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Revision  uint64    `json:"revision"`
}

// DispatchEvent describes one transition applied by a store.
type DispatchEvent struct {
	EventBase
	Action Action `json:"action"`
	Before State  `json:"before"`
	After  State  `json:"after"`
}

// ResetEvent describes a store returning to its initial state.
type ResetEvent struct {
	EventBase
	Before State `json:"before"`
	After  State `json:"after"`
}

// LifecycleHooks defines callbacks for store observability.
// Hooks receive copies and cannot influence the transition they describe.
type LifecycleHooks struct {
	OnDispatch func(context.Context, *DispatchEvent)
	OnReset    func(context.Context, *ResetEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDispatch: chainDispatch(h.OnDispatch, other.OnDispatch),
		OnReset:    chainReset(h.OnReset, other.OnReset),
	}
}

func chainDispatch(a, b func(context.Context, *DispatchEvent)) func(context.Context, *DispatchEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *DispatchEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainReset(a, b func(context.Context, *ResetEvent)) func(context.Context, *ResetEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *ResetEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
