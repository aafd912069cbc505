package filter

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hance08/payops/internal/model"
)

func testRows() []model.Row {
	return []model.Row{
		{
			ID: "r1", GuestName: "Ada Lovelace", Currency: "USD", Batch: "B-1",
			Amount: decimal.RequireFromString("120.50"), Status: model.StatusReadyToCharge,
			Gateway: model.GatewayPayPal, PayPal: &model.PayPalFields{},
		},
		{
			ID: "r2", GuestName: "Grace Hopper", Currency: "EUR", Batch: "B-1",
			Amount: decimal.RequireFromString("80"), Status: model.StatusCharged,
			Gateway: model.GatewayStripe, Stripe: &model.StripeFields{ConnectedAccount: "acct_1"},
		},
		{
			ID: "r3", GuestName: "Alan Turing", Currency: "USD", Batch: "B-2",
			Amount: decimal.RequireFromString("300"), Status: model.StatusDeclined,
			Gateway: model.GatewayPayPal, PayPal: &model.PayPalFields{},
		},
	}
}

func ids(rows []model.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("empty string", func(t *testing.T) {
		e, err := Parse("  ", RowFields)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e != nil {
			t.Fatal("expected nil expr for blank filter")
		}
	})

	t.Run("invalid syntax", func(t *testing.T) {
		if _, err := Parse("!!!invalid", RowFields); err == nil {
			t.Fatal("expected error for invalid syntax")
		}
	})

	t.Run("undeclared field", func(t *testing.T) {
		if _, err := Parse(`colour = "red"`, RowFields); err == nil {
			t.Fatal("expected error for undeclared field")
		}
	})

	t.Run("unsupported field type", func(t *testing.T) {
		if _, err := Parse(`x = "foo"`, Fields{"x": FieldType("complex")}); err == nil {
			t.Fatal("expected error for unsupported field type")
		}
	})

	t.Run("float field against int literal", func(t *testing.T) {
		if _, err := Parse("amount > 100", RowFields); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMatchRows(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"empty keeps all", "", []string{"r1", "r2", "r3"}},
		{"status equality ignores case", `status = "charged"`, []string{"r2"}},
		{"not equals", `gateway != "paypal"`, []string{"r2"}},
		{"amount int literal", "amount > 100", []string{"r1", "r3"}},
		{"amount float literal", "amount <= 120.5", []string{"r1", "r2"}},
		{"and", `currency = "USD" AND batch = "B-1"`, []string{"r1"}},
		{"or", `status = "Declined" OR account = "acct_1"`, []string{"r2", "r3"}},
		{"not", `NOT currency = "USD"`, []string{"r2"}},
		{"has substring", `name:"hop"`, []string{"r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchRows(testRows(), tt.filter)
			if err != nil {
				t.Fatalf("MatchRows(%q) error: %v", tt.filter, err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("MatchRows(%q) = %v, want %v", tt.filter, gotIDs, tt.want)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.want[i] {
					t.Fatalf("MatchRows(%q) = %v, want %v", tt.filter, gotIDs, tt.want)
				}
			}
		})
	}
}

func TestEvaluateNilExpr(t *testing.T) {
	ok, err := Evaluate(nil, func(string) (any, bool) { return nil, false })
	if err != nil || !ok {
		t.Fatalf("Evaluate(nil) = %v, %v; want true, nil", ok, err)
	}
}
