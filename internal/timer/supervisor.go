package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
)

// Ticker advances a set of countdowns by one second and reports what happened.
type Ticker interface {
	TickAll(ctx context.Context) []domain.TimerEvent
}

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor ticks timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithLogger sets the supervisor's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Supervisor) {
		if log != nil {
			s.log = log
		}
	}
}

// Supervisor runs in the background, ticking timers and forwarding their
// events to a notifier.
type Supervisor struct {
	timers       Ticker
	notifier     domain.Notifier
	log          *zap.Logger
	tickInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSupervisor creates a timer supervisor with the given dependencies and options.
func NewSupervisor(timers Ticker, notifier domain.Notifier, opts ...Option) *Supervisor {
	s := &Supervisor{
		timers:       timers,
		notifier:     notifier,
		log:          zap.NewNop(),
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("supervisor")
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.loop(childCtx, s.done)

	s.log.Info("timer supervisor started", zap.Duration("tick", s.tickInterval))
}

// Stop shuts down the supervisor and waits for the loop to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("timer supervisor stopped")
}

func (s *Supervisor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle: advance timers, then notify.
func (s *Supervisor) tick(ctx context.Context) {
	for _, ev := range s.timers.TickAll(ctx) {
		s.dispatch(ctx, ev)
	}
}

func (s *Supervisor) dispatch(ctx context.Context, ev domain.TimerEvent) {
	if s.notifier == nil {
		return
	}

	switch ev.Type {
	case domain.TimerEventCompleted:
		msg := fmt.Sprintf("[Timer] %s is done.", ev.Name)
		if err := s.notifier.NotifyUrgent(ctx, msg); err != nil {
			s.log.Error("notifying timer completion", zap.String("timer", ev.TimerID), zap.Error(err))
		}
	case domain.TimerEventAlmostDone:
		msg := fmt.Sprintf("[Timer] %s -- %s left.", ev.Name, formatRemaining(ev.Remaining))
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.log.Error("notifying almost done", zap.String("timer", ev.TimerID), zap.Error(err))
		}
	default:
		s.log.Debug("ignoring timer event", zap.String("type", string(ev.Type)))
	}
}

// formatRemaining returns a spoken duration, rounded to the minute from one minute up.
func formatRemaining(sec int) string {
	if sec < 60 {
		if sec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", sec)
	}
	m := (sec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
