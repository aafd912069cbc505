package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/sandbox"
)

func TestTableSelectionFollowsPage(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	h.sb.SeedRows(
		paypalRow("r1", "10", model.StatusReadyToCharge),
		paypalRow("r2", "20", model.StatusReadyToCharge),
		paypalRow("r3", "30", model.StatusReadyToCharge),
	)

	ctx := context.Background()
	table := h.svc.Rows.NewTable()
	first := api.RowQuery{Page: 1, Limit: 2, Gateway: model.GatewayPayPal}

	if _, err := table.Load(ctx, first, ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	sel, rejected, err := table.Select([]string{"r1", "r3"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !slices.Equal(sel.RowIDs, []string{"r1"}) || !slices.Equal(rejected, []string{"r3"}) {
		t.Fatalf("selected %v rejected %v", sel.RowIDs, rejected)
	}

	again, err := h.svc.Rows.NewTable().Load(ctx, first, "")
	if err != nil {
		t.Fatalf("reload same page: %v", err)
	}
	if !again.Selection.Contains("r1") {
		t.Fatal("selection should survive a reload of the same page")
	}

	next, err := table.Load(ctx, api.RowQuery{Page: 2, Limit: 2, Gateway: model.GatewayPayPal}, "")
	if err != nil {
		t.Fatalf("load page 2: %v", err)
	}
	if !next.Selection.Empty() {
		t.Fatalf("selection should be cleared on a new page, got %v", next.Selection.RowIDs)
	}
	if got := ids(next.Rows); !slices.Equal(got, []string{"r3"}) {
		t.Errorf("page 2 rows = %v", got)
	}
}

func TestSelectedQueryReopensPage(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	h.sb.SeedRows(
		paypalRow("r1", "10", model.StatusReadyToCharge),
		paypalRow("r2", "20", model.StatusReadyToCharge),
		paypalRow("r3", "30", model.StatusReadyToCharge),
	)

	if _, ok, err := h.svc.Rows.SelectedQuery(); err != nil || ok {
		t.Fatalf("nothing selected yet, got ok=%v err=%v", ok, err)
	}

	ctx := context.Background()
	second := api.RowQuery{Page: 2, Limit: 2, Gateway: model.GatewayPayPal, Sort: "Name", Desc: true}
	table := h.svc.Rows.NewTable()
	page, err := table.Load(ctx, second, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, _, err := table.Select(ids(page.Rows)); err != nil {
		t.Fatalf("select: %v", err)
	}

	q, ok, err := h.svc.Rows.SelectedQuery()
	if err != nil || !ok {
		t.Fatalf("selected query: ok=%v err=%v", ok, err)
	}
	if q != second {
		t.Fatalf("selected query = %+v, want %+v", q, second)
	}

	reopened, err := h.svc.Rows.NewTable().Load(ctx, q, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Selection.Empty() {
		t.Fatal("reopening the selected page should keep the selection")
	}
}

func TestTableFilterExpression(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	h.sb.SeedRows(
		paypalRow("r1", "10", model.StatusReadyToCharge),
		paypalRow("r2", "200", model.StatusDeclined),
		paypalRow("r3", "300", model.StatusCharged),
	)

	page, err := h.svc.Rows.NewTable().Load(context.Background(), h.svc.Rows.DefaultQuery(), `amount >= 200 AND NOT status = "Charged"`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := ids(page.Rows); !slices.Equal(got, []string{"r2"}) {
		t.Errorf("filtered rows = %v", got)
	}

	if _, err := h.svc.Rows.NewTable().Load(context.Background(), h.svc.Rows.DefaultQuery(), "amount >"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestTableStaleLoadIsDropped(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	h.sb.SeedRows(paypalRow("r1", "10", model.StatusReadyToCharge))

	ctx := context.Background()
	table := h.svc.Rows.NewTable()
	loaded, err := table.Load(ctx, api.RowQuery{Page: 1, Limit: 5}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	older := table.gen.Next()
	newer := table.gen.Next()

	stale := &Page{Key: loaded.Key, Query: api.RowQuery{Page: 9}}
	if _, err := table.apply(older, stale); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("expected ErrStaleResult, got %v", err)
	}
	if table.Current() != loaded {
		t.Fatal("stale result replaced the current page")
	}

	if _, err := table.apply(newer, stale); err != nil {
		t.Fatalf("latest result should apply: %v", err)
	}
	if table.Current() != stale {
		t.Fatal("latest result was not applied")
	}
}

func TestPageGateway(t *testing.T) {
	mixed := &Page{Rows: []model.Row{
		paypalRow("a", "1", model.StatusReadyToCharge),
		stripeRow("b", "1", model.StatusReadyToCharge),
	}}
	if _, err := mixed.Gateway(); !errors.Is(err, ErrUnknownGateway) {
		t.Errorf("expected ErrUnknownGateway, got %v", err)
	}

	mixed.Query.Gateway = model.GatewayStripe
	if gw, err := mixed.Gateway(); err != nil || gw != model.GatewayStripe {
		t.Errorf("query gateway should win, got %s %v", gw, err)
	}

	single := &Page{Rows: []model.Row{paypalRow("a", "1", model.StatusReadyToCharge)}}
	if gw, err := single.Gateway(); err != nil || gw != model.GatewayPayPal {
		t.Errorf("expected paypal, got %s %v", gw, err)
	}
}
