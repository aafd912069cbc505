package views

import (
	"strings"
	"testing"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/store"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

func init() {
	pterm.DisableColor()
}

func column(data pterm.TableData, field string) (string, bool) {
	for _, line := range data {
		if line[0] == field {
			return line[1], true
		}
	}
	return "", false
}

func TestRowDetailShowsOnlyOwnGateway(t *testing.T) {
	stripe := model.Row{
		ID:      "r1",
		Amount:  decimal.RequireFromString("10"),
		Status:  model.StatusCharged,
		Gateway: model.GatewayStripe,
		Stripe:  &model.StripeFields{ConnectedAccount: "acct_1", PaymentIntentID: "pi_1"},
	}
	data := RowDetailData(stripe)
	if v, ok := column(data, "Connected Account"); !ok || v != "acct_1" {
		t.Errorf("connected account = %q, %v", v, ok)
	}
	if _, ok := column(data, "PayPal Order"); ok {
		t.Error("stripe row should not show paypal fields")
	}

	paypal := model.Row{
		ID:      "r2",
		Status:  model.StatusReadyToCharge,
		Gateway: model.GatewayPayPal,
		PayPal:  &model.PayPalFields{OrderID: "O-1"},
	}
	data = RowDetailData(paypal)
	if v, _ := column(data, "PayPal Order"); v != "O-1" {
		t.Errorf("paypal order = %q", v)
	}
	if _, ok := column(data, "Connected Account"); ok {
		t.Error("paypal row should not show stripe fields")
	}
}

func TestRowTableMarksSelectionAndAction(t *testing.T) {
	page := &service.Page{
		Rows: []model.Row{
			{ID: "a", Status: model.StatusCharged, Currency: "USD", Gateway: model.GatewayPayPal},
			{ID: "b", Status: model.StatusDeclined, Currency: "USD", Gateway: model.GatewayPayPal},
		},
		Selection: store.Selection{PageKey: "rows", RowIDs: []string{"b"}},
	}

	data := RowTableData(page)
	if len(data) != 3 {
		t.Fatalf("expected header plus 2 lines, got %d", len(data))
	}
	if data[1][0] != markUnselected || data[2][0] != markSelected {
		t.Errorf("selection marks = %q, %q", data[1][0], data[2][0])
	}
	if !strings.Contains(data[1][7], "Refund") || !strings.Contains(data[2][7], "Charge Again") {
		t.Errorf("actions = %q, %q", data[1][7], data[2][7])
	}
}
