package wallet

import (
	"context"

	"github.com/congo-pay/pocketbank/internal/beneficiary"
	"github.com/congo-pay/pocketbank/internal/history"
	"github.com/congo-pay/pocketbank/internal/identity"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Service exposes the read side of a user's ledger. Every call re-reads the
// record and returns freshly derived values.
type Service struct {
	store *records.Store
}

// NewService builds a wallet service instance.
func NewService(store *records.Store) *Service {
	return &Service{store: store}
}

// Profile returns the public account summary.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	suffix := lastFour(u.PhoneNumber)
	return Profile{
		User:             identity.Public(u),
		CardNumber:       cardPrefix + " " + suffix,
		MaskedCardNumber: "**** **** **** " + suffix,
	}, nil
}

// History returns the user's transactions, most recent first, narrowed by q.
func (s *Service) History(ctx context.Context, userID string, q history.Query) (history.Page, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return history.Page{}, err
	}
	return history.Apply(u.Transactions, q), nil
}

// Beneficiaries returns the people the user has paid, optionally filtered by
// a case-insensitive search term.
func (s *Service) Beneficiaries(ctx context.Context, userID, term string) ([]beneficiary.View, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := beneficiary.Aggregate(u.Transactions)
	if term == "" {
		return views, nil
	}
	return beneficiary.Search(views, term), nil
}
