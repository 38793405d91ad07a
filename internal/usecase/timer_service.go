package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
	"github.com/cooktimer/backend/internal/timer"
)

// TimerServiceConfig holds configuration for the timer service
type TimerServiceConfig struct {
	MaxTimers         int
	AlmostDoneSeconds int
}

// estimator is the part of EstimateService the timer service needs
type estimator interface {
	Estimate(ctx context.Context, request *domain.EstimateRequest) (*domain.CookingEstimate, error)
}

type timerEntry struct {
	meta      domain.Timer
	countdown *timer.Countdown
	warned    bool
}

// TimerService owns the set of named countdowns running at the same time
type TimerService struct {
	estimates         estimator
	log               *zap.Logger
	maxTimers         int
	almostDoneSeconds int
	now               func() time.Time
	newID             func() string

	mu     sync.RWMutex
	timers map[string]*timerEntry
}

// NewTimerService creates a timer service. estimates may be nil, in which
// case timers can only be created from explicit durations.
func NewTimerService(estimates estimator, log *zap.Logger, config TimerServiceConfig) *TimerService {
	maxTimers := config.MaxTimers
	if maxTimers == 0 {
		maxTimers = 10
	}
	almostDone := config.AlmostDoneSeconds
	if almostDone == 0 {
		almostDone = 30
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &TimerService{
		estimates:         estimates,
		log:               log.Named("timers"),
		maxTimers:         maxTimers,
		almostDoneSeconds: almostDone,
		now:               time.Now,
		newID:             func() string { return ulid.Make().String() },
		timers:            make(map[string]*timerEntry),
	}
}

// Create adds a timer from explicit seconds or from an estimate request.
// Unsafe estimates are refused unless the request sets Force.
func (s *TimerService) Create(ctx context.Context, request *domain.CreateTimerRequest) (*domain.Timer, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: request is required", domain.ErrInvalidInput)
	}
	if (request.Seconds == nil) == (request.Estimate == nil) {
		return nil, fmt.Errorf("%w: exactly one of seconds or estimate is required", domain.ErrInvalidInput)
	}
	priority, err := domain.ParsePriority(request.Priority)
	if err != nil {
		return nil, err
	}

	meta := domain.Timer{
		Name:     strings.TrimSpace(request.Name),
		Priority: priority,
	}

	var seconds int
	if request.Seconds != nil {
		seconds = *request.Seconds
		if seconds < 0 {
			return nil, fmt.Errorf("%w: seconds must not be negative, got %d", domain.ErrInvalidInput, seconds)
		}
		if seconds > domain.MaxTimerSeconds {
			return nil, fmt.Errorf("%w: seconds must not exceed %d, got %d",
				domain.ErrInvalidInput, domain.MaxTimerSeconds, seconds)
		}
	} else {
		if s.estimates == nil {
			return nil, fmt.Errorf("%w: estimates are not available", domain.ErrInvalidInput)
		}
		estimate, err := s.estimates.Estimate(ctx, request.Estimate)
		if err != nil {
			return nil, err
		}
		if !estimate.Safe && !request.Force {
			return nil, fmt.Errorf("%w: %d seconds is below the %d second minimum for %s",
				domain.ErrUnsafeTime, estimate.Seconds, estimate.MinimumSafeSeconds, estimate.FoodID)
		}
		if !estimate.Safe {
			s.log.Warn("creating timer below food safety minimum",
				zap.String("food", estimate.FoodID),
				zap.Int("seconds", estimate.Seconds))
		}
		seconds = estimate.Seconds
		meta.FoodID = estimate.FoodID
		meta.TextureID = estimate.TextureID
		if meta.Name == "" {
			meta.Name = estimate.FoodID
		}
	}
	if meta.Name == "" {
		meta.Name = "Timer"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.timers) >= s.maxTimers {
		return nil, fmt.Errorf("%w: limit is %d", domain.ErrTooManyTimers, s.maxTimers)
	}

	meta.ID = s.newID()
	meta.CreatedAt = s.now()
	entry := &timerEntry{meta: meta, countdown: timer.NewCountdown(seconds)}
	if request.Start {
		if err := entry.countdown.Start(); err != nil {
			return nil, err
		}
	}
	s.timers[meta.ID] = entry

	s.log.Info("timer created",
		zap.String("id", meta.ID),
		zap.String("name", meta.Name),
		zap.Int("seconds", seconds),
		zap.Bool("started", request.Start))

	t := entry.view()
	return &t, nil
}

// Get returns a snapshot of a single timer
func (s *TimerService) Get(ctx context.Context, id string) (*domain.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	t := entry.view()
	return &t, nil
}

// List returns all timers, high priority first, then oldest first
func (s *TimerService) List(ctx context.Context) []domain.Timer {
	s.mu.RLock()
	result := make([]domain.Timer, 0, len(s.timers))
	for _, entry := range s.timers {
		result = append(result, entry.view())
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if ri, rj := result[i].Priority.Rank(), result[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Delete removes a timer
func (s *TimerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.timers, id)
	s.log.Debug("timer deleted", zap.String("id", id))
	return nil
}

// Start starts an idle timer
func (s *TimerService) Start(ctx context.Context, id string) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error { return e.countdown.Start() })
}

// Pause pauses a running timer
func (s *TimerService) Pause(ctx context.Context, id string) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error { return e.countdown.Pause() })
}

// Resume resumes a paused timer
func (s *TimerService) Resume(ctx context.Context, id string) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error { return e.countdown.Resume() })
}

// Reset returns a timer to idle with its full duration
func (s *TimerService) Reset(ctx context.Context, id string) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error {
		e.countdown.Reset()
		e.warned = false
		return nil
	})
}

// SetTime replaces a timer's duration and stops it
func (s *TimerService) SetTime(ctx context.Context, id string, seconds int) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error {
		if err := e.countdown.SetTime(seconds); err != nil {
			return err
		}
		e.warned = false
		return nil
	})
}

// Extend adds seconds to a timer without stopping it
func (s *TimerService) Extend(ctx context.Context, id string, seconds int) (*domain.Timer, error) {
	return s.apply(id, func(e *timerEntry) error {
		if err := e.countdown.Extend(seconds); err != nil {
			return err
		}
		if e.countdown.Remaining() > s.almostDoneSeconds {
			e.warned = false
		}
		return nil
	})
}

// TickAll advances every running timer by one second and reports what happened
func (s *TimerService) TickAll(ctx context.Context) []domain.TimerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []domain.TimerEvent
	for _, entry := range s.timers {
		if entry.countdown.Status() != domain.TimerRunning {
			continue
		}

		if entry.countdown.Tick() {
			events = append(events, entry.event(domain.TimerEventCompleted, 0))
			continue
		}

		remaining := entry.countdown.Remaining()
		if entry.meta.Priority == domain.PriorityHigh && !entry.warned && remaining <= s.almostDoneSeconds {
			entry.warned = true
			events = append(events, entry.event(domain.TimerEventAlmostDone, remaining))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimerID < events[j].TimerID
	})
	return events
}

// apply runs a state change on one timer and returns its new snapshot
func (s *TimerService) apply(id string, fn func(*timerEntry) error) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(entry); err != nil {
		return nil, err
	}
	t := entry.view()
	return &t, nil
}

func (s *TimerService) lookup(id string) (*timerEntry, error) {
	entry, ok := s.timers[id]
	if !ok {
		return nil, fmt.Errorf("%w: timer %q", domain.ErrNotFound, id)
	}
	return entry, nil
}

func (e *timerEntry) view() domain.Timer {
	t := e.meta
	t.State = e.countdown.Snapshot()
	t.Formatted = FormatDuration(t.State.Remaining)
	return t
}

func (e *timerEntry) event(typ domain.TimerEventType, remaining int) domain.TimerEvent {
	return domain.TimerEvent{
		Type:      typ,
		TimerID:   e.meta.ID,
		Name:      e.meta.Name,
		Priority:  e.meta.Priority,
		Remaining: remaining,
	}
}
