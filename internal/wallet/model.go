package wallet

import (
	"github.com/congo-pay/pocketbank/internal/identity"
)

const cardPrefix = "4532 8721 9012"

// Profile is the account summary shown on the home and card screens.
type Profile struct {
	identity.User
	CardNumber       string `json:"cardNumber"`
	MaskedCardNumber string `json:"maskedCardNumber"`
}

// lastFour returns the trailing four characters of the phone number used
// as the virtual card suffix.
func lastFour(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
