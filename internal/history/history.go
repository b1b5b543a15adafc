// Package history derives read-only views over a user's transaction log.
// Every function returns a fresh slice; the input log is never reordered or
// modified.
package history

import (
	"sort"
	"strings"

	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Project returns the entries sorted by date, most recent first. Entries
// with equal dates keep their insertion order.
func Project(entries []records.TransactionEntry) []records.TransactionEntry {
	out := make([]records.TransactionEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Filter keeps the entries for which keep returns true, in order.
func Filter(entries []records.TransactionEntry, keep func(records.TransactionEntry) bool) []records.TransactionEntry {
	out := make([]records.TransactionEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ContainsFold reports whether term occurs in s, ignoring case. An empty
// term matches everything.
func ContainsFold(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// ByRecipient matches entries whose recipient contains term.
func ByRecipient(term string) func(records.TransactionEntry) bool {
	return func(e records.TransactionEntry) bool {
		return ContainsFold(e.Recipient, term)
	}
}

// ByType matches entries of type t.
func ByType(t records.TxType) func(records.TransactionEntry) bool {
	return func(e records.TransactionEntry) bool {
		return e.Type == t
	}
}

// Query narrows the projected history.
type Query struct {
	Type   records.TxType
	Search string
	Limit  int
	Offset int
}

// Page is one window of the projected history.
type Page struct {
	Entries []records.TransactionEntry `json:"entries"`
	Total   int                        `json:"total"`
}

// Apply projects entries and then narrows them by q. Total counts the
// matches before paging.
func Apply(entries []records.TransactionEntry, q Query) Page {
	out := Project(entries)
	if q.Type != "" {
		out = Filter(out, ByType(q.Type))
	}
	if q.Search != "" {
		out = Filter(out, ByRecipient(q.Search))
	}

	total := len(out)
	if q.Offset > 0 {
		if q.Offset >= len(out) {
			out = out[:0]
		} else {
			out = out[q.Offset:]
		}
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return Page{Entries: out, Total: total}
}

// Signed returns the entry amount with the sign it has on the owner's
// balance. A Recharge with a recipient is a prepaid purchase and debits.
func Signed(e records.TransactionEntry) money.Amount {
	switch e.Type {
	case records.TypeRecharge:
		if e.Recipient != "" {
			return e.Amount.Neg()
		}
		return e.Amount
	case records.TypeTransfer:
		if e.Incoming() {
			return e.Amount
		}
		return e.Amount.Neg()
	default:
		return e.Amount.Neg()
	}
}
