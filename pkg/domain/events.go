package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRunGenerated  EventType = "run_generated"
	EventStepPublished EventType = "step_published"
	EventStatusChange  EventType = "status_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RunEvent is emitted after a runner has produced its step list.
type RunEvent struct {
	EventBase
	Algorithm AlgorithmID   `json:"algorithm"`
	Steps     int           `json:"steps"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// StepEvent is emitted each time a player publishes a step.
type StepEvent struct {
	EventBase
	Index int  `json:"index"`
	Total int  `json:"total"`
	Step  Step `json:"step"`
}

// StatusEvent is emitted on every playback status change.
type StatusEvent struct {
	EventBase
	From PlaybackStatus `json:"from"`
	To   PlaybackStatus `json:"to"`
}

// LifecycleHooks defines callbacks for engine and player observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRunGenerated  func(*RunEvent)
	OnStepPublished func(*StepEvent)
	OnStatusChange  func(*StatusEvent)
}

// Merge combines two hook sets; both callbacks run, receiver first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunGenerated:  chain(h.OnRunGenerated, other.OnRunGenerated),
		OnStepPublished: chain(h.OnStepPublished, other.OnStepPublished),
		OnStatusChange:  chain(h.OnStatusChange, other.OnStatusChange),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
