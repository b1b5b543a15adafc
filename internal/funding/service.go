package funding

import (
	"context"
	"fmt"

	"github.com/congo-pay/pocketbank/internal/ledger"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Service moves money into and out of a user's own balance.
type Service struct {
	engine *ledger.Engine
}

// NewService prepares a funding service.
func NewService(engine *ledger.Engine) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("ledger engine is required")
	}
	return &Service{engine: engine}, nil
}

// Recharge credits amount to the user.
func (s *Service) Recharge(ctx context.Context, userID, amount string) (records.UserRecord, error) {
	return s.engine.Recharge(ctx, userID, amount)
}

// Withdraw debits amount from the user.
func (s *Service) Withdraw(ctx context.Context, userID, amount string) (records.UserRecord, error) {
	return s.engine.Withdraw(ctx, userID, amount)
}
