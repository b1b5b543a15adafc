package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Engine applies ledger operations to records held in a records.Store. Each
// call is one read-modify-write cycle: the caller passes the user id and
// gets back the committed record, or a typed error and no change.
type Engine struct {
	store  *records.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine wires an engine over store.
func NewEngine(store *records.Store, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TransferInput carries a transfer request.
type TransferInput struct {
	SenderID      string
	RecipientID   string
	RecipientName string
	Amount        string
}

// TransferResult holds both committed sides of a transfer.
type TransferResult struct {
	Sender    records.UserRecord
	Recipient records.UserRecord
}

// PrepaidInput carries a prepaid top-up request.
type PrepaidInput struct {
	UserID      string
	Operator    string
	PhoneNumber string
	Amount      string
}

// Recharge credits the user's balance.
func (e *Engine) Recharge(ctx context.Context, userID, amount string) (records.UserRecord, error) {
	a, err := money.ParsePositive(amount)
	if err != nil {
		return records.UserRecord{}, err
	}
	out, err := e.mutateOne(ctx, userID, func(u records.UserRecord, now time.Time) (records.UserRecord, error) {
		return ApplyRecharge(u, a, now)
	})
	return e.report("recharge", userID, a, out, err)
}

// Withdraw debits the user's balance.
func (e *Engine) Withdraw(ctx context.Context, userID, amount string) (records.UserRecord, error) {
	a, err := money.ParsePositive(amount)
	if err != nil {
		return records.UserRecord{}, err
	}
	out, err := e.mutateOne(ctx, userID, func(u records.UserRecord, now time.Time) (records.UserRecord, error) {
		return ApplyWithdraw(u, a, now)
	})
	return e.report("withdraw", userID, a, out, err)
}

// Transfer moves money between two records. Both sides are written in the
// same save or not at all.
func (e *Engine) Transfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	a, err := money.ParsePositive(in.Amount)
	if err != nil {
		return TransferResult{}, err
	}
	if in.RecipientID == "" {
		return TransferResult{}, common.Validationf("recipient is required")
	}
	if in.RecipientID == in.SenderID {
		return TransferResult{}, common.Validationf("cannot transfer to the same account")
	}

	var res TransferResult
	_, err = e.store.Update(ctx, func(users []records.UserRecord) ([]records.UserRecord, error) {
		si := records.IndexOf(users, in.SenderID)
		if si < 0 {
			return nil, common.NotFoundf("user %s", in.SenderID)
		}
		ri := records.IndexOf(users, in.RecipientID)
		if ri < 0 {
			return nil, common.NotFoundf("recipient %s", in.RecipientID)
		}
		from, to, err := ApplyTransfer(users[si], users[ri], a, in.RecipientName, e.now())
		if err != nil {
			return nil, err
		}
		users[si], users[ri] = from, to
		res = TransferResult{Sender: from.Clone(), Recipient: to.Clone()}
		return users, nil
	})
	if err != nil {
		e.logger.Warn("ledger.transfer failed",
			slog.String("user_id", in.SenderID),
			slog.String("recipient_id", in.RecipientID),
			slog.String("amount", a.String()),
			slog.Any("error", err),
		)
		return TransferResult{}, err
	}
	e.logger.Info("ledger.transfer committed",
		slog.String("user_id", in.SenderID),
		slog.String("recipient_id", in.RecipientID),
		slog.String("amount", a.String()),
		slog.String("balance", res.Sender.Balance.String()),
	)
	return res, nil
}

// PrepaidTopUp buys prepaid credit for a mobile line out of the balance.
func (e *Engine) PrepaidTopUp(ctx context.Context, in PrepaidInput) (records.UserRecord, error) {
	order, err := ParsePrepaidOrder(in.Operator, in.PhoneNumber, in.Amount)
	if err != nil {
		return records.UserRecord{}, err
	}
	out, err := e.mutateOne(ctx, in.UserID, func(u records.UserRecord, now time.Time) (records.UserRecord, error) {
		return ApplyPrepaid(u, order, now)
	})
	return e.report("prepaid", in.UserID, order.Amount, out, err)
}

func (e *Engine) mutateOne(ctx context.Context, userID string, apply func(records.UserRecord, time.Time) (records.UserRecord, error)) (records.UserRecord, error) {
	var updated records.UserRecord
	_, err := e.store.Update(ctx, func(users []records.UserRecord) ([]records.UserRecord, error) {
		i := records.IndexOf(users, userID)
		if i < 0 {
			return nil, common.NotFoundf("user %s", userID)
		}
		u, err := apply(users[i], e.now())
		if err != nil {
			return nil, err
		}
		users[i] = u
		updated = u.Clone()
		return users, nil
	})
	if err != nil {
		return records.UserRecord{}, err
	}
	return updated, nil
}

func (e *Engine) report(op, userID string, amount money.Amount, u records.UserRecord, err error) (records.UserRecord, error) {
	if err != nil {
		e.logger.Warn("ledger."+op+" failed",
			slog.String("user_id", userID),
			slog.String("amount", amount.String()),
			slog.String("kind", common.KindOf(err)),
			slog.Any("error", err),
		)
		return records.UserRecord{}, err
	}
	e.logger.Info("ledger."+op+" committed",
		slog.String("user_id", userID),
		slog.String("amount", amount.String()),
		slog.String("balance", u.Balance.String()),
	)
	return u, nil
}
