package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	// KindTransfer is sent to the sender of a committed transfer.
	KindTransfer = "transfer.sent"
	// KindTransferReceived is sent to the recipient of a committed transfer.
	KindTransferReceived = "transfer.received"
	// KindPrepaid follows a prepaid top-up purchase.
	KindPrepaid = "prepaid.purchased"
)

// Message describes a notification payload.
type Message struct {
	Kind        string    `json:"kind"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	Amount      string    `json:"amount"`
	Body        string    `json:"body"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		slog.String("kind", message.Kind),
		slog.String("user_id", message.UserID),
		slog.String("destination", message.Destination),
		slog.String("amount", message.Amount),
		slog.String("body", message.Body),
	)
	return nil
}

// Multi sends every message to each notifier and joins their errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, message Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
