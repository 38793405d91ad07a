// Package notify provides domain.Notifier implementations.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/cooktimer/backend/internal/domain"
)

// Compile-time interface check.
var _ domain.Notifier = (*LogNotifier)(nil)

// LogNotifier writes timer notifications to the structured log. Delivery to
// devices is handled by clients polling the timer API.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a notifier backed by log.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log.Named("notify")}
}

// Notify logs an informational timer message.
func (n *LogNotifier) Notify(ctx context.Context, msg string) error {
	n.log.Info(msg, zap.Bool("urgent", false))
	return nil
}

// NotifyUrgent logs a timer message that needs attention now.
func (n *LogNotifier) NotifyUrgent(ctx context.Context, msg string) error {
	n.log.Warn(msg, zap.Bool("urgent", true))
	return nil
}
