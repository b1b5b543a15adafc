package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/logging"
	"github.com/congo-pay/pocketbank/internal/records"
)

func newService(t *testing.T, hasher PasswordHasher) (*Service, *records.Store) {
	t.Helper()
	store := records.NewStore(records.NewMemoryBackend(), "", logging.Discard())
	return NewService(store, hasher, logging.Discard()), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, store := newService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Name: "Amine", PhoneNumber: "+21620123456", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.CardType != "VISA" || !user.IsAdmin || !user.Balance.IsZero() {
		t.Fatalf("unexpected defaults: %+v", user)
	}
	if user.Password != "secret" {
		t.Fatalf("plain mode should store the password as entered")
	}

	stored, err := store.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != "Amine" {
		t.Fatalf("expected stored record, got %+v", stored)
	}

	authed, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "+21620123456", Password: "secret"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, authed.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t, nil)
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"missing name", Credentials{PhoneNumber: "+21620123456", Password: "pw"}},
		{"missing password", Credentials{Name: "A", PhoneNumber: "+21620123456"}},
		{"short phone", Credentials{Name: "A", PhoneNumber: "12345", Password: "pw"}},
		{"letters in phone", Credentials{Name: "A", PhoneNumber: "+2162012345a", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.creds); !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Name: "A", PhoneNumber: "0612345678", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0612345678", Password: "wrong"}); !errors.Is(err, common.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0699999999", Password: "right"}); !errors.Is(err, common.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0612345678"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthenticateFirstMatchWins(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	first, err := svc.Register(ctx, Credentials{Name: "First", PhoneNumber: "0612345678", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, Credentials{Name: "Second", PhoneNumber: "0612345678", Password: "pw"}); err != nil {
		t.Fatalf("register duplicate phone: %v", err)
	}

	got, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0612345678", Password: "pw"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected first registration to win")
	}
}

func TestBcryptMode(t *testing.T) {
	svc, store := newService(t, BcryptHasher{Cost: 4})
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Name: "A", PhoneNumber: "0612345678", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.HasPrefix(user.Password, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", user.Password)
	}
	if _, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0612345678", Password: "pw"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	legacy := records.UserRecord{ID: "legacy", Name: "Old", PhoneNumber: "0700000000", Password: "plain"}
	if err := records.Seed(ctx, store, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{PhoneNumber: "0700000000", Password: "plain"}); err != nil {
		t.Fatalf("legacy plaintext record should still log in: %v", err)
	}
}

func TestPublicOmitsSecrets(t *testing.T) {
	u := Public(records.UserRecord{ID: "1", Name: "A", Password: "pw", Transactions: []records.TransactionEntry{{ID: 1}}})
	if u.ID != "1" || u.Name != "A" {
		t.Fatalf("unexpected view %+v", u)
	}
}

func TestHasherFor(t *testing.T) {
	if _, ok := HasherFor("BCRYPT").(BcryptHasher); !ok {
		t.Fatal("expected bcrypt hasher")
	}
	if _, ok := HasherFor("").(PlainHasher); !ok {
		t.Fatal("expected plain hasher")
	}
}
