package domain

import (
	"fmt"
	"time"
)

// MaxTimerSeconds is the longest duration a timer may hold.
const MaxTimerSeconds = 24 * 60 * 60

// TimerStatus represents the state of a countdown.
type TimerStatus int

const (
	TimerIdle TimerStatus = iota
	TimerRunning
	TimerPaused
	TimerComplete
)

// String returns a human-readable timer status.
func (s TimerStatus) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its name.
func (s TimerStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TimerState is a point-in-time copy of a countdown.
type TimerState struct {
	Total     int         `json:"total"`     // seconds
	Remaining int         `json:"remaining"` // seconds
	Running   bool        `json:"running"`
	Paused    bool        `json:"paused"`
	Status    TimerStatus `json:"status"`
	Progress  float64     `json:"progress"` // percent elapsed
}

// Priority orders timers in a multi-timer list.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority validates p, defaulting an empty value to medium.
func ParsePriority(p string) (Priority, error) {
	switch Priority(p) {
	case "":
		return PriorityMedium, nil
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(p), nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, p)
}

// Rank returns the sort order of the priority, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Timer is a named countdown owned by the timer service.
type Timer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Priority  Priority   `json:"priority"`
	FoodID    string     `json:"foodId,omitempty"`
	TextureID string     `json:"textureId,omitempty"`
	State     TimerState `json:"state"`
	Formatted string     `json:"formatted"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateTimerRequest creates a timer from explicit seconds or from an estimate.
type CreateTimerRequest struct {
	Name     string           `json:"name"`
	Priority string           `json:"priority,omitempty"`
	Seconds  *int             `json:"seconds,omitempty"`
	Estimate *EstimateRequest `json:"estimate,omitempty"`
	Force    bool             `json:"force,omitempty"` // start even when the estimate is unsafe
	Start    bool             `json:"start,omitempty"`
}

// TimerEventType identifies what happened to a timer during a tick.
type TimerEventType string

const (
	TimerEventCompleted  TimerEventType = "completed"
	TimerEventAlmostDone TimerEventType = "almost_done"
)

// TimerEvent is emitted by a tick cycle.
type TimerEvent struct {
	Type      TimerEventType
	TimerID   string
	Name      string
	Priority  Priority
	Remaining int
}
