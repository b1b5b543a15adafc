package identity

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a password into its stored form and checks a login
// attempt against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlainHasher keeps passwords as entered. It is compatible with documents
// written by older clients, which store plaintext.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptHasher stores bcrypt hashes. Records that still hold a plaintext
// password are compared as plaintext so they keep working after a switch.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return PlainHasher{}.Compare(stored, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// HasherFor picks the hasher for a PASSWORD_MODE value.
func HasherFor(mode string) PasswordHasher {
	if strings.EqualFold(mode, "bcrypt") {
		return BcryptHasher{}
	}
	return PlainHasher{}
}
