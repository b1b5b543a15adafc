package money

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/congo-pay/pocketbank/internal/common"
)

func TestParsePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "40", want: "40"},
		{name: "decimal with spaces", input: " 12.50 ", want: "12.5"},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "scientific", input: "1.5e3", want: "1500"},
		{name: "huge exponent", input: "1e500000000", wantErr: true},
		{name: "tiny exponent", input: "1e-500000000", wantErr: true},
		{name: "forty digit integer", input: "1234567890123456789012345678901234567890", wantErr: true},
		{name: "sixteen digit integer", input: "1234567890123456", wantErr: true},
		{name: "overlong input", input: "1." + strings.Repeat("0", 70), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositive(tt.input)
			if tt.wantErr {
				if !errors.Is(err, common.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAmountJSON(t *testing.T) {
	var doc struct {
		Balance Amount `json:"balance"`
		Legacy  Amount `json:"legacy"`
		Empty   Amount `json:"empty"`
		Null    Amount `json:"null"`
	}
	if err := json.Unmarshal([]byte(`{"balance":100.25,"legacy":"10","empty":"","null":null}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !doc.Balance.Equal(MustParse("100.25")) {
		t.Fatalf("unexpected balance %s", doc.Balance)
	}
	if !doc.Legacy.Equal(FromInt(10)) {
		t.Fatalf("unexpected legacy amount %s", doc.Legacy)
	}
	if !doc.Empty.IsZero() || !doc.Null.IsZero() {
		t.Fatalf("expected zero amounts, got %s and %s", doc.Empty, doc.Null)
	}

	out, err := json.Marshal(struct {
		Balance Amount `json:"balance"`
	}{Balance: MustParse("60")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"balance":60}` {
		t.Fatalf("expected bare number, got %s", out)
	}
}

func TestInputAcceptsNumbersAndStrings(t *testing.T) {
	var req struct {
		A Input `json:"a"`
		B Input `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":20.5,"b":"abc"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.A != "20.5" || req.B != "abc" {
		t.Fatalf("unexpected inputs %q %q", req.A, req.B)
	}
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"float noise from old clients", "100.30000000000001", true},
		{"large stored balance", "123456789012345678901234567890", true},
		{"huge exponent", "1e500000000", false},
		{"tiny exponent", "1e-500000000", false},
		{"too many fraction digits", "0.000000000000000000001", false},
		{"too many integer digits", "1" + strings.Repeat("0", 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrAmountOutOfRange) {
				t.Fatalf("expected out of range error, got %v", err)
			}
		})
	}
}

func TestAmountJSONRejectsOutOfRange(t *testing.T) {
	var doc struct {
		Balance Amount `json:"balance"`
	}
	err := json.Unmarshal([]byte(`{"balance":1e500000000}`), &doc)
	if !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
}
