// Package timer implements the cooking countdown state machine and the
// background supervisor that ticks running countdowns once per second.
package timer

import (
	"fmt"
	"sync"

	"github.com/cooktimer/backend/internal/domain"
)

// Countdown is a four-state (idle, running, paused, complete) timer counted
// in whole seconds. All methods are safe for concurrent use; remaining never
// leaves the range [0, total].
type Countdown struct {
	mu        sync.Mutex
	total     int
	remaining int
	running   bool
	paused    bool
	done      bool
}

// NewCountdown creates an idle countdown of total seconds, clamped to
// [0, domain.MaxTimerSeconds].
func NewCountdown(total int) *Countdown {
	if total < 0 {
		total = 0
	}
	if total > domain.MaxTimerSeconds {
		total = domain.MaxTimerSeconds
	}
	return &Countdown{total: total, remaining: total}
}

// Start moves an idle countdown to running. A zero-length countdown completes immediately.
func (c *Countdown) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusLocked() != domain.TimerIdle {
		return c.transitionErr("start")
	}
	if c.remaining == 0 {
		c.done = true
		return nil
	}
	c.running = true
	c.paused = false
	return nil
}

// Pause suspends a running countdown.
func (c *Countdown) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusLocked() != domain.TimerRunning {
		return c.transitionErr("pause")
	}
	c.paused = true
	return nil
}

// Resume continues a paused countdown.
func (c *Countdown) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusLocked() != domain.TimerPaused {
		return c.transitionErr("resume")
	}
	c.paused = false
	return nil
}

// Tick removes one second from a running countdown and reports whether this
// tick completed it. Ticks in any other state are ignored.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusLocked() != domain.TimerRunning {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.running = false
		c.paused = false
		c.done = true
		return true
	}
	return false
}

// Reset returns the countdown to idle with the full total remaining.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remaining = c.total
	c.running = false
	c.paused = false
	c.done = false
}

// SetTime replaces the total and remaining time and stops the countdown.
// A running countdown must be started again by the caller.
func (c *Countdown) SetTime(total int) error {
	if total < 0 {
		return fmt.Errorf("%w: time must not be negative, got %d", domain.ErrInvalidInput, total)
	}
	if total > domain.MaxTimerSeconds {
		return fmt.Errorf("%w: time must not exceed %d seconds, got %d",
			domain.ErrInvalidInput, domain.MaxTimerSeconds, total)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = total
	c.remaining = total
	c.running = false
	c.paused = false
	c.done = false
	return nil
}

// Extend adds seconds to both total and remaining without stopping the
// countdown. A complete countdown starts running again.
func (c *Countdown) Extend(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: extension must be positive, got %d", domain.ErrInvalidInput, delta)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if delta > domain.MaxTimerSeconds-c.total {
		return fmt.Errorf("%w: extension would exceed %d seconds",
			domain.ErrInvalidInput, domain.MaxTimerSeconds)
	}
	c.total += delta
	c.remaining += delta
	if c.done {
		c.done = false
		c.running = true
		c.paused = false
	}
	return nil
}

// Status returns the current state.
func (c *Countdown) Status() domain.TimerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Progress returns the percentage of the total that has elapsed.
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

// Snapshot returns a consistent copy of the countdown state.
func (c *Countdown) Snapshot() domain.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.TimerState{
		Total:     c.total,
		Remaining: c.remaining,
		Running:   c.running,
		Paused:    c.paused,
		Status:    c.statusLocked(),
		Progress:  c.progressLocked(),
	}
}

func (c *Countdown) statusLocked() domain.TimerStatus {
	switch {
	case c.done:
		return domain.TimerComplete
	case c.running && c.paused:
		return domain.TimerPaused
	case c.running:
		return domain.TimerRunning
	default:
		return domain.TimerIdle
	}
}

func (c *Countdown) progressLocked() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.total-c.remaining) / float64(c.total) * 100
}

func (c *Countdown) transitionErr(cmd string) error {
	return fmt.Errorf("%w: cannot %s a %s timer", domain.ErrInvalidTransition, cmd, c.statusLocked())
}
