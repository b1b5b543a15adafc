package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/congo-pay/pocketbank/internal/common"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a number.
	ErrInvalidAmount = errors.New("invalid money amount")
	// ErrAmountOutOfRange is returned for numbers with more integer or
	// fractional digits than an amount may carry.
	ErrAmountOutOfRange = errors.New("money amount out of range")
)

// Bounds on accepted amounts. Stored values may be larger than a single
// user entry so that accumulated balances still load. The fraction limit
// leaves room for the binary float noise in documents from older clients.
const (
	maxInputLen            = 64
	maxStoredIntegerDigits = 40
	maxEntryIntegerDigits  = 15
	maxFractionDigits      = 20
)

// Amount is a decimal monetary value. It serializes as a bare JSON number so
// persisted documents keep the shape clients already store, and it accepts
// both numbers and numeric strings on decode.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// FromInt builds an Amount from a whole number of currency units.
func FromInt(v int64) Amount {
	return Amount{d: decimal.NewFromInt(v)}
}

// FromDecimal wraps a decimal value.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// MustParse is Parse for constants and tests. It panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Parse reads a decimal amount from user input.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if len(s) > maxInputLen {
		return Amount{}, fmt.Errorf("%w: %d characters", ErrAmountOutOfRange, len(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := checkRange(d, maxStoredIntegerDigits); err != nil {
		return Amount{}, fmt.Errorf("%w: %q", err, s)
	}
	return Amount{d: d}, nil
}

// checkRange looks only at the exponent and coefficient size, so it never
// expands a value like 1e500000000.
func checkRange(d decimal.Decimal, maxIntegerDigits int64) error {
	exp := int64(d.Exponent())
	if exp < -maxFractionDigits {
		return ErrAmountOutOfRange
	}
	if int64(d.NumDigits())+exp > maxIntegerDigits {
		return ErrAmountOutOfRange
	}
	return nil
}

// ParsePositive parses s and requires a strictly positive result of at most
// maxEntryIntegerDigits integer digits. Failures are reported as validation
// errors.
func ParsePositive(s string) (Amount, error) {
	a, err := Parse(s)
	if err == nil {
		err = checkRange(a.d, maxEntryIntegerDigits)
	}
	if errors.Is(err, ErrAmountOutOfRange) {
		return Amount{}, common.Validationf("amount is out of range")
	}
	if err != nil {
		return Amount{}, common.Validationf("amount must be a number")
	}
	if !a.IsPositive() {
		return Amount{}, common.Validationf("amount must be positive")
	}
	return a, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }
func (a Amount) Neg() Amount         { return Amount{d: a.d.Neg()} }

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) Equal(b Amount) bool       { return a.d.Equal(b.d) }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }
func (a Amount) IsPositive() bool          { return a.d.IsPositive() }
func (a Amount) IsNegative() bool          { return a.d.IsNegative() }
func (a Amount) IsZero() bool              { return a.d.IsZero() }

// Decimal exposes the underlying value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) String() string { return a.d.String() }

// StringFixed renders the amount with two decimal places for display.
func (a Amount) StringFixed() string { return a.d.StringFixed(2) }

// MarshalJSON writes the amount as an unquoted JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, an empty string or
// null. The last two decode to zero.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
		}
		if strings.TrimSpace(raw) == "" {
			*a = Amount{}
			return nil
		}
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Input is an amount as typed by a user. Request bodies may carry it as a
// JSON number or a string; validation happens later through ParsePositive.
type Input string

// UnmarshalJSON keeps the raw text of numbers and the content of strings.
func (i *Input) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = Input(s)
		return nil
	}
	*i = Input(b)
	return nil
}
