package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTraceComplete EventType = "trace_complete"
	EventTraceFailed   EventType = "trace_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TraceEvent describes one finished trace call.
type TraceEvent struct {
	EventBase
	Components int           `json:"components"`
	Rays       int           `json:"rays"`
	Types      []string      `json:"types,omitempty"` // rail element types in order
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTrace      func(context.Context, *TraceEvent)
	OnTraceError func(context.Context, *TraceEvent)
}
