package service

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/logging"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/sandbox"
	"github.com/hance08/payops/internal/store"
	"github.com/shopspring/decimal"
)

type harness struct {
	sb     *sandbox.Server
	cfg    sandbox.Config
	repo   *store.Store
	ledger *ledger.Ledger
	cache  *query.Cache
	client *api.Client
	svc    *Service
}

func newHarness(t *testing.T, cfg sandbox.Config) *harness {
	t.Helper()

	sb := sandbox.New(cfg)
	ts := httptest.NewServer(sb.Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	repo, err := store.NewStore(filepath.Join(dir, "payops.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	l, err := ledger.Open(filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	logger := logging.Discard()
	client := api.NewClient(ts.URL+"/api", 5*time.Second, repo, logger)
	cache := query.New(query.NewMemoryBackend(), time.Minute, logger)
	client.OnSessionExpired(func() {
		_ = cache.InvalidateAll(context.Background())
	})

	svc := NewService(client, cache, repo, l, logger, Config{
		DefaultGateway:  model.GatewayPayPal,
		DefaultCurrency: "USD",
		PageSize:        50,
		PollInterval:    time.Millisecond,
	})

	return &harness{sb: sb, cfg: cfg, repo: repo, ledger: l, cache: cache, client: client, svc: svc}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if _, err := h.svc.Auth.Login(ctx, h.cfg.Email, h.cfg.Password, false); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := h.svc.Auth.VerifyOTP(ctx, h.cfg.Email, h.cfg.OTP); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
}

func paypalRow(id, amount string, status model.ChargeStatus) model.Row {
	return model.Row{
		ID:        id,
		GuestName: "Guest " + id,
		Amount:    decimal.RequireFromString(amount),
		Currency:  "USD",
		Card:      model.Card{Number: "4111111111111111", Expire: "12/2030", CVV: "123"},
		Status:    status,
		Gateway:   model.GatewayPayPal,
		PayPal:    &model.PayPalFields{},
	}
}

func stripeRow(id, amount string, status model.ChargeStatus) model.Row {
	r := paypalRow(id, amount, status)
	r.Gateway = model.GatewayStripe
	r.PayPal = nil
	r.Stripe = &model.StripeFields{ConnectedAccount: "acct_sandbox"}
	return r
}

func ids(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
