package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/congo-pay/pocketbank/internal/ledger"
	"github.com/congo-pay/pocketbank/internal/notification"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Service runs transfers and prepaid purchases through the ledger engine and
// notifies the parties once they are committed.
type Service struct {
	engine   *ledger.Engine
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a payment service.
func NewService(engine *ledger.Engine, notifier notification.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, notifier: notifier, logger: logger}
}

// Transfer moves money to another user. Notification failures are logged
// and never undo a committed transfer.
func (s *Service) Transfer(ctx context.Context, input ledger.TransferInput) (ledger.TransferResult, error) {
	res, err := s.engine.Transfer(ctx, input)
	if err != nil {
		return ledger.TransferResult{}, err
	}

	sent := lastEntry(res.Sender)
	s.notify(ctx, notification.Message{
		Kind:        notification.KindTransfer,
		UserID:      res.Sender.ID,
		Destination: sent.Recipient,
		Amount:      sent.Amount.String(),
		Body:        fmt.Sprintf("You sent %s to %s", sent.Amount.StringFixed(), sent.Recipient),
		OccurredAt:  sent.Date,
	})
	s.notify(ctx, notification.Message{
		Kind:        notification.KindTransferReceived,
		UserID:      res.Recipient.ID,
		Destination: res.Recipient.PhoneNumber,
		Amount:      sent.Amount.String(),
		Body:        fmt.Sprintf("You received %s from %s", sent.Amount.StringFixed(), res.Sender.Name),
		OccurredAt:  sent.Date,
	})
	return res, nil
}

// Prepaid buys prepaid mobile credit out of the user's balance.
func (s *Service) Prepaid(ctx context.Context, input ledger.PrepaidInput) (records.UserRecord, error) {
	u, err := s.engine.PrepaidTopUp(ctx, input)
	if err != nil {
		return records.UserRecord{}, err
	}
	e := lastEntry(u)
	s.notify(ctx, notification.Message{
		Kind:        notification.KindPrepaid,
		UserID:      u.ID,
		Destination: e.Recipient,
		Amount:      e.Amount.String(),
		Body:        fmt.Sprintf("Prepaid top-up of %s for %s", e.Amount.StringFixed(), e.Recipient),
		OccurredAt:  e.Date,
	})
	return u, nil
}

// Catalog lists the prepaid operators and denominations.
func (s *Service) Catalog() Catalog {
	return Catalog{Operators: ledger.Operators(), Amounts: ledger.Denominations()}
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("notification failed", slog.String("kind", msg.Kind), slog.String("user_id", msg.UserID), slog.Any("error", err))
	}
}

func lastEntry(u records.UserRecord) records.TransactionEntry {
	if len(u.Transactions) == 0 {
		return records.TransactionEntry{}
	}
	return u.Transactions[len(u.Transactions)-1]
}
