// Package beneficiary summarizes the people a user has sent money to.
package beneficiary

import (
	"sort"
	"time"

	"github.com/congo-pay/pocketbank/internal/history"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// View is one recipient of the owner's outgoing transfers.
type View struct {
	Recipient       string       `json:"recipient"`
	RecipientID     string       `json:"recipientId,omitempty"`
	LastTransaction time.Time    `json:"lastTransaction"`
	LastAmount      money.Amount `json:"lastAmount"`
	Transactions    int          `json:"transactions"`
}

// Aggregate scans the log once and returns one view per distinct recipient
// name, most recently paid first. Only outgoing Transfer entries count.
func Aggregate(entries []records.TransactionEntry) []View {
	index := make(map[string]int)
	views := make([]View, 0)

	for _, e := range entries {
		if e.Type != records.TypeTransfer || e.Incoming() {
			continue
		}
		i, ok := index[e.Recipient]
		if !ok {
			index[e.Recipient] = len(views)
			views = append(views, View{
				Recipient:       e.Recipient,
				RecipientID:     e.RecipientID,
				LastTransaction: e.Date,
				LastAmount:      e.Amount,
				Transactions:    1,
			})
			continue
		}

		// RecipientID stays the one seen first for this name.
		v := &views[i]
		v.Transactions++
		if e.Date.After(v.LastTransaction) {
			v.LastTransaction = e.Date
			v.LastAmount = e.Amount
		}
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].LastTransaction.After(views[j].LastTransaction)
	})
	return views
}

// Search keeps the views whose recipient contains term, ignoring case. It
// does not re-aggregate; an empty term returns a copy of views.
func Search(views []View, term string) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if history.ContainsFold(v.Recipient, term) {
			out = append(out, v)
		}
	}
	return out
}
