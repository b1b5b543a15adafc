package records

import (
	"time"

	"github.com/congo-pay/pocketbank/internal/money"
)

// TxType discriminates ledger entries.
type TxType string

const (
	TypeRecharge TxType = "Recharge"
	TypeWithdraw TxType = "Withdraw"
	TypeTransfer TxType = "Transfer"
)

// Direction marks the mirrored side of a transfer. Outgoing entries leave it
// empty so documents written before it existed decode unchanged.
type Direction string

// DirectionIncoming is set on the entry credited to a transfer recipient.
const DirectionIncoming Direction = "incoming"

// TransactionEntry is one immutable line of a user's journal.
type TransactionEntry struct {
	ID          int64        `json:"id"`
	Type        TxType       `json:"type"`
	Amount      money.Amount `json:"amount"`
	Date        time.Time    `json:"date"`
	Recipient   string       `json:"recipient,omitempty"`
	RecipientID string       `json:"recipientId,omitempty"`
	Direction   Direction    `json:"direction,omitempty"`
}

// Incoming reports whether the entry credits the owner as a transfer recipient.
func (e TransactionEntry) Incoming() bool {
	return e.Type == TypeTransfer && e.Direction == DirectionIncoming
}

// UserRecord is the persisted state of one account holder.
type UserRecord struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	PhoneNumber  string             `json:"phoneNumber"`
	Password     string             `json:"password"`
	Balance      money.Amount       `json:"balance"`
	CardType     string             `json:"cardType"`
	IsAdmin      bool               `json:"isAdmin"`
	Transactions []TransactionEntry `json:"transactions,omitempty"`
}

// Clone returns a copy that shares no memory with u.
func (u UserRecord) Clone() UserRecord {
	out := u
	if u.Transactions != nil {
		out.Transactions = make([]TransactionEntry, len(u.Transactions))
		copy(out.Transactions, u.Transactions)
	}
	return out
}

// NextEntryID derives a time-based entry id that is unique within u.
func (u UserRecord) NextEntryID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range u.Transactions {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

func cloneAll(users []UserRecord) []UserRecord {
	out := make([]UserRecord, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
