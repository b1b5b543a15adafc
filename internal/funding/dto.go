package funding

import (
	"github.com/congo-pay/pocketbank/internal/identity"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// AmountRequest carries a recharge or withdrawal amount. Clients send it as
// a number or as the raw text typed by the user.
type AmountRequest struct {
	Amount money.Input `json:"amount"`
}

// FundingResponse returns the committed record and the entry just appended.
type FundingResponse struct {
	User        identity.User            `json:"user"`
	Transaction records.TransactionEntry `json:"transaction"`
}

func toResponse(u records.UserRecord) FundingResponse {
	resp := FundingResponse{User: identity.Public(u)}
	if n := len(u.Transactions); n > 0 {
		resp.Transaction = u.Transactions[n-1]
	}
	return resp
}
