package history

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func entry(id int64, typ records.TxType, hours int, recipient string) records.TransactionEntry {
	return records.TransactionEntry{
		ID:        id,
		Type:      typ,
		Amount:    money.FromInt(id * 10),
		Date:      base.Add(time.Duration(hours) * time.Hour),
		Recipient: recipient,
	}
}

func ids(entries []records.TransactionEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sampleLog() []records.TransactionEntry {
	return []records.TransactionEntry{
		entry(1, records.TypeRecharge, 0, ""),
		entry(2, records.TypeTransfer, 5, "Sara"),
		entry(3, records.TypeWithdraw, 2, ""),
		entry(4, records.TypeTransfer, 5, "Karim"),
		entry(5, records.TypeRecharge, 9, "orange: 12345678"),
	}
}

func TestProject_SortsDescendingStableOnTies(t *testing.T) {
	in := sampleLog()
	got := Project(in)

	want := []int64{5, 2, 4, 3, 1}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("entry %d is later than entry %d", i, i-1)
		}
	}
}

func TestProject_IsPermutationAndLeavesInputAlone(t *testing.T) {
	in := sampleLog()
	got := Project(in)

	if len(got) != len(in) {
		t.Fatalf("expected %d entries, got %d", len(in), len(got))
	}
	seen := map[int64]int{}
	for _, e := range got {
		seen[e.ID]++
	}
	for _, e := range in {
		if seen[e.ID] != 1 {
			t.Fatalf("entry %d appears %d times", e.ID, seen[e.ID])
		}
	}
	if diff := cmp.Diff([]int64{1, 2, 3, 4, 5}, ids(in)); diff != "" {
		t.Fatalf("input reordered (-want +got):\n%s", diff)
	}

	got[0].Recipient = "mutated"
	if in[4].Recipient != "orange: 12345678" {
		t.Fatal("projection shares memory with the log")
	}
}

func TestProject_Empty(t *testing.T) {
	if got := Project(nil); len(got) != 0 {
		t.Fatalf("expected empty projection, got %v", got)
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, term string
		want    bool
	}{
		{"Sara Ben Ali", "sara", true},
		{"Sara Ben Ali", "BEN", true},
		{"Sara", "karim", false},
		{"", "", true},
		{"anything", "", true},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.s, tt.term); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.s, tt.term, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		q     Query
		want  []int64
		total int
	}{
		{"no filter", Query{}, []int64{5, 2, 4, 3, 1}, 5},
		{"type", Query{Type: records.TypeTransfer}, []int64{2, 4}, 2},
		{"search", Query{Search: "KAR"}, []int64{4}, 1},
		{"search and type", Query{Type: records.TypeRecharge, Search: "orange"}, []int64{5}, 1},
		{"limit", Query{Limit: 2}, []int64{5, 2}, 5},
		{"offset", Query{Offset: 3}, []int64{3, 1}, 5},
		{"offset and limit", Query{Offset: 1, Limit: 2}, []int64{2, 4}, 5},
		{"offset past end", Query{Offset: 10}, []int64{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(sampleLog(), tt.q)
			if diff := cmp.Diff(tt.want, ids(page.Entries)); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if page.Total != tt.total {
				t.Errorf("total = %d, want %d", page.Total, tt.total)
			}
		})
	}
}

func TestSigned(t *testing.T) {
	incoming := entry(6, records.TypeTransfer, 0, "Sara")
	incoming.Direction = records.DirectionIncoming

	tests := []struct {
		name string
		e    records.TransactionEntry
		want string
	}{
		{"recharge", entry(1, records.TypeRecharge, 0, ""), "10"},
		{"prepaid", entry(5, records.TypeRecharge, 0, "orange: 12345678"), "-50"},
		{"withdraw", entry(3, records.TypeWithdraw, 0, ""), "-30"},
		{"outgoing transfer", entry(2, records.TypeTransfer, 0, "Sara"), "-20"},
		{"incoming transfer", incoming, "60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Signed(tt.e); got.String() != tt.want {
				t.Errorf("Signed = %s, want %s", got, tt.want)
			}
		})
	}
}
