package identity

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// Service manages registration and login against the record store.
type Service struct {
	store  *records.Store
	hasher PasswordHasher
	logger *slog.Logger
}

// NewService creates a new identity service. A nil hasher keeps plaintext
// passwords.
func NewService(store *records.Store, hasher PasswordHasher, logger *slog.Logger) *Service {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, hasher: hasher, logger: logger}
}

// Register appends a new record with a zero balance.
func (s *Service) Register(ctx context.Context, creds Credentials) (records.UserRecord, error) {
	name := strings.TrimSpace(creds.Name)
	phone := strings.TrimSpace(creds.PhoneNumber)
	if name == "" || phone == "" || creds.Password == "" {
		return records.UserRecord{}, common.Validationf("please fill in all fields")
	}
	if !phonePattern.MatchString(phone) {
		return records.UserRecord{}, common.Validationf("please enter a valid phone number")
	}

	stored, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return records.UserRecord{}, err
	}

	user := records.UserRecord{
		ID:          uuid.NewString(),
		Name:        name,
		PhoneNumber: phone,
		Password:    stored,
		Balance:     money.Zero,
		CardType:    defaultCardType,
		IsAdmin:     true,
	}

	if _, err := s.store.Update(ctx, func(users []records.UserRecord) ([]records.UserRecord, error) {
		return append(users, user), nil
	}); err != nil {
		return records.UserRecord{}, err
	}

	s.logger.Info("identity.register completed", slog.String("user_id", user.ID))
	return user, nil
}

// Authenticate returns the first record matching phone and password.
// Phone numbers are not unique; earlier registrations win.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (records.UserRecord, error) {
	phone := strings.TrimSpace(creds.PhoneNumber)
	if phone == "" || creds.Password == "" {
		return records.UserRecord{}, common.Validationf("please fill in all fields")
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return records.UserRecord{}, err
	}
	for _, u := range users {
		if u.PhoneNumber == phone && s.hasher.Compare(u.Password, creds.Password) {
			return u, nil
		}
	}
	return records.UserRecord{}, common.ErrAuth
}

// FindByID loads one record.
func (s *Service) FindByID(ctx context.Context, id string) (records.UserRecord, error) {
	return s.store.FindByID(ctx, id)
}
