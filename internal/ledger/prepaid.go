package ledger

import (
	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/money"
)

// PrepaidPhoneLength is the number of digits of a local mobile line.
const PrepaidPhoneLength = 8

// Operator is a mobile network that sells prepaid credit.
type Operator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var operators = []Operator{
	{ID: "orange", Name: "Orange Tunisia"},
	{ID: "ooredoo", Name: "Ooredoo Tunisia"},
	{ID: "telecom", Name: "Tunisie Telecom"},
}

var denominations = []int64{5, 10, 20, 30, 50}

// Operators lists the supported networks.
func Operators() []Operator {
	return append([]Operator(nil), operators...)
}

// Denominations lists the prepaid amounts that can be bought.
func Denominations() []money.Amount {
	out := make([]money.Amount, len(denominations))
	for i, d := range denominations {
		out[i] = money.FromInt(d)
	}
	return out
}

// PrepaidOrder is a validated prepaid purchase.
type PrepaidOrder struct {
	Operator    string
	PhoneNumber string
	Amount      money.Amount
}

// ParsePrepaidOrder builds an order from raw user input.
func ParsePrepaidOrder(operator, phoneNumber, amount string) (PrepaidOrder, error) {
	a, err := money.Parse(amount)
	if err != nil {
		return PrepaidOrder{}, common.Validationf("please select an amount")
	}
	order := PrepaidOrder{Operator: operator, PhoneNumber: phoneNumber, Amount: a}
	if err := order.Validate(); err != nil {
		return PrepaidOrder{}, err
	}
	return order, nil
}

// Validate checks the operator, the line number and the denomination.
func (o PrepaidOrder) Validate() error {
	if !knownOperator(o.Operator) {
		return common.Validationf("please select an operator")
	}
	if !validLine(o.PhoneNumber) {
		return common.Validationf("please enter a valid %d-digit phone number", PrepaidPhoneLength)
	}
	for _, d := range denominations {
		if o.Amount.Equal(money.FromInt(d)) {
			return nil
		}
	}
	return common.Validationf("amount %s is not an available denomination", o.Amount)
}

// Recipient renders the line as stored on the journal entry.
func (o PrepaidOrder) Recipient() string {
	return o.Operator + ": " + o.PhoneNumber
}

func knownOperator(id string) bool {
	for _, op := range operators {
		if op.ID == id {
			return true
		}
	}
	return false
}

func validLine(phone string) bool {
	if len(phone) != PrepaidPhoneLength {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
