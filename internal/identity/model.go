package identity

import (
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

const (
	defaultCardType = "VISA"
)

// Credentials carries registration and login input.
type Credentials struct {
	Name        string
	PhoneNumber string
	Password    string
}

// User is the client-facing view of a record. It never carries the password
// or the transaction log.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phoneNumber"`
	Balance     money.Amount `json:"balance"`
	CardType    string       `json:"cardType"`
	IsAdmin     bool         `json:"isAdmin"`
}

// Public strips secrets from a record.
func Public(u records.UserRecord) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Balance:     u.Balance,
		CardType:    u.CardType,
		IsAdmin:     u.IsAdmin,
	}
}
