package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/sandbox"
	"github.com/hance08/payops/internal/validation"
)

func TestAuthStatusDecodesTokenExpiry(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)

	status, err := h.svc.Auth.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Profile == nil || status.Profile.Email != h.cfg.Email {
		t.Fatalf("unexpected profile %+v", status.Profile)
	}

	want := time.Now().Add(h.cfg.TokenTTL)
	if d := status.TokenExpiry.Sub(want); d > time.Minute || d < -time.Minute {
		t.Errorf("token expiry %v, want about %v", status.TokenExpiry, want)
	}
	if d := status.SessionExpiry.Sub(time.Now().Add(api.SessionTTL)); d > time.Minute || d < -time.Minute {
		t.Errorf("session expiry %v is not seven days out", status.SessionExpiry)
	}
}

func TestLoginRefusedWhenLoggedIn(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	ctx := context.Background()

	if _, err := h.svc.Auth.Login(ctx, h.cfg.Email, h.cfg.Password, false); !errors.Is(err, ErrAlreadyLoggedIn) {
		t.Fatalf("expected ErrAlreadyLoggedIn, got %v", err)
	}
	if _, err := h.svc.Auth.Login(ctx, h.cfg.Email, h.cfg.Password, true); err != nil {
		t.Fatalf("forced login: %v", err)
	}
}

func TestRevokedTokenExpiresSession(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	ctx := context.Background()

	if _, err := h.svc.Stripe.Accounts(ctx); err != nil {
		t.Fatalf("accounts: %v", err)
	}

	h.sb.RevokeTokens()

	_, err := h.svc.Rows.NewTable().Load(ctx, h.svc.Rows.DefaultQuery(), "")
	if !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if h.svc.Auth.LoggedIn() {
		t.Fatal("token should be cleared after a 401")
	}
	if _, err := h.client.Session(); !errors.Is(err, api.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	before := h.sb.Hits("GET", "/stripe/accounts")
	if _, err := h.svc.Stripe.Accounts(ctx); !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("cache should have been dropped on expiry, got %v", err)
	}
	if h.sb.Hits("GET", "/stripe/accounts") != before+1 {
		t.Error("expected a fresh request after expiry")
	}
}

func TestResetPasswordMismatchIsLocal(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())

	_, err := h.svc.Auth.ResetPassword(context.Background(), "reset-"+h.cfg.Email, "new-password-1", "new-password-2")
	if !errors.Is(err, validation.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if n := h.sb.Hits("POST", "/auth/reset-password/:token"); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}

	msg, err := h.svc.Auth.ResetPassword(context.Background(), "reset-"+h.cfg.Email, "new-password-1", "new-password-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(msg, "reset") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	ctx := context.Background()

	h.sb.SeedRows(paypalRow("r1", "10", model.StatusReadyToCharge))
	table := h.svc.Rows.NewTable()
	if _, err := table.Load(ctx, h.svc.Rows.DefaultQuery(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := table.SelectAll(); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := h.svc.Auth.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if h.svc.Auth.LoggedIn() {
		t.Error("still logged in")
	}
	sel, err := h.repo.GetSelection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if !sel.Empty() {
		t.Errorf("selection should be cleared, got %v", sel.RowIDs)
	}
}

func TestTokenExpiryRejectsGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-token"); err == nil {
		t.Fatal("expected an error")
	}
}
