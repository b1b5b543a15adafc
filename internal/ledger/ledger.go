// Package ledger enforces the balance invariants of a user record and
// journals every balance change.
//
// The Apply* functions are pure: they take a record (or two, for a
// transfer), validate the request against its current state and return new
// values with the balance updated and exactly one entry appended. Inputs are
// never modified, so a failed operation leaves the caller's copy untouched.
// Engine runs them inside the record store's update boundary.
package ledger

import (
	"fmt"
	"time"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// ApplyRecharge credits amount to u.
func ApplyRecharge(u records.UserRecord, amount money.Amount, now time.Time) (records.UserRecord, error) {
	if !amount.IsPositive() {
		return records.UserRecord{}, common.Validationf("amount must be positive")
	}
	out := u.Clone()
	out.Balance = out.Balance.Add(amount)
	out.Transactions = append(out.Transactions, records.TransactionEntry{
		ID:     u.NextEntryID(now),
		Type:   records.TypeRecharge,
		Amount: amount,
		Date:   now,
	})
	return out, nil
}

// ApplyWithdraw debits amount from u.
func ApplyWithdraw(u records.UserRecord, amount money.Amount, now time.Time) (records.UserRecord, error) {
	if err := checkDebit(u, amount); err != nil {
		return records.UserRecord{}, err
	}
	out := u.Clone()
	out.Balance = out.Balance.Sub(amount)
	out.Transactions = append(out.Transactions, records.TransactionEntry{
		ID:     u.NextEntryID(now),
		Type:   records.TypeWithdraw,
		Amount: amount,
		Date:   now,
	})
	return out, nil
}

// ApplyTransfer moves amount from sender to recipient. The sender's entry
// names the recipient; the recipient gets a mirrored incoming Transfer entry
// naming the sender. An empty recipientName falls back to the recipient's
// record name.
func ApplyTransfer(sender, recipient records.UserRecord, amount money.Amount, recipientName string, now time.Time) (records.UserRecord, records.UserRecord, error) {
	if sender.ID == recipient.ID {
		return records.UserRecord{}, records.UserRecord{}, common.Validationf("cannot transfer to the same account")
	}
	if err := checkDebit(sender, amount); err != nil {
		return records.UserRecord{}, records.UserRecord{}, err
	}
	if recipientName == "" {
		recipientName = recipient.Name
	}

	from := sender.Clone()
	from.Balance = from.Balance.Sub(amount)
	from.Transactions = append(from.Transactions, records.TransactionEntry{
		ID:          sender.NextEntryID(now),
		Type:        records.TypeTransfer,
		Amount:      amount,
		Date:        now,
		Recipient:   recipientName,
		RecipientID: recipient.ID,
	})

	to := recipient.Clone()
	to.Balance = to.Balance.Add(amount)
	to.Transactions = append(to.Transactions, records.TransactionEntry{
		ID:          recipient.NextEntryID(now),
		Type:        records.TypeTransfer,
		Amount:      amount,
		Date:        now,
		Recipient:   sender.Name,
		RecipientID: sender.ID,
		Direction:   records.DirectionIncoming,
	})

	return from, to, nil
}

// ApplyPrepaid buys a prepaid top-up for a mobile line and debits u. The
// entry is journaled as a Recharge carrying the line as recipient.
func ApplyPrepaid(u records.UserRecord, order PrepaidOrder, now time.Time) (records.UserRecord, error) {
	if err := order.Validate(); err != nil {
		return records.UserRecord{}, err
	}
	if err := checkDebit(u, order.Amount); err != nil {
		return records.UserRecord{}, err
	}
	out := u.Clone()
	out.Balance = out.Balance.Sub(order.Amount)
	out.Transactions = append(out.Transactions, records.TransactionEntry{
		ID:        u.NextEntryID(now),
		Type:      records.TypeRecharge,
		Amount:    order.Amount,
		Date:      now,
		Recipient: order.Recipient(),
	})
	return out, nil
}

func checkDebit(u records.UserRecord, amount money.Amount) error {
	if !amount.IsPositive() {
		return common.Validationf("amount must be positive")
	}
	if amount.GreaterThan(u.Balance) {
		return fmt.Errorf("%w: balance %s, requested %s", common.ErrInsufficientFunds, u.Balance, amount)
	}
	return nil
}
