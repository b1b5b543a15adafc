// Package common holds the error kinds shared by the ledger subsystem.
// Callers match them with errors.Is; the wrapped message carries detail.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation reports malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientFunds occurs when a debit exceeds the available balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound reports an unknown user or recipient id.
	ErrNotFound = errors.New("not found")

	// ErrAuth reports a credential mismatch at login or an invalid session.
	ErrAuth = errors.New("authentication failed")

	// ErrStorage wraps failures of the underlying persistence layer.
	ErrStorage = errors.New("storage error")
)

// Kind discriminators returned by KindOf.
const (
	KindValidation        = "validation_error"
	KindInsufficientFunds = "insufficient_funds"
	KindNotFound          = "not_found"
	KindAuth              = "auth_error"
	KindStorage           = "storage_error"
	KindInternal          = "internal_error"
)

// Validationf builds an ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage wraps a backend failure so that it matches ErrStorage while
// keeping the original cause reachable through errors.Is / errors.As.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// KindOf returns the stable discriminator for err.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAuth):
		return KindAuth
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error kind onto the status code surfaced to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
