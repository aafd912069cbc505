package service

import (
	"context"
	"testing"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/sandbox"
)

func TestStripeCreateAccountInvalidatesList(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	ctx := context.Background()

	accounts, err := h.svc.Stripe.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 1 || !accounts[0].Ready() {
		t.Fatalf("expected the seeded ready account, got %+v", accounts)
	}

	created, err := h.svc.Stripe.CreateAccount(ctx, "hotel@example.com", "gb")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Country != "GB" || created.Ready() {
		t.Errorf("new account should be GB with requirements due, got %+v", created)
	}

	accounts, err = h.svc.Stripe.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts again: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts after create, got %d", len(accounts))
	}
	if h.sb.Hits("GET", "/stripe/accounts") != 2 {
		t.Errorf("expected the list to be refetched once")
	}

	link, err := h.svc.Stripe.UpdateLink(ctx, created.ID)
	if err != nil || link == "" {
		t.Fatalf("update link: %q %v", link, err)
	}
}

func TestInvitationAcceptFlow(t *testing.T) {
	h := newHarness(t, sandbox.DefaultConfig())
	h.login(t)
	ctx := context.Background()

	inv, err := h.svc.Invitations.Send(ctx, "new.user@example.com", "New User")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if inv.Status != model.InvitationPending {
		t.Fatalf("expected pending, got %s", inv.Status)
	}

	list, err := h.svc.Invitations.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Email != "new.user@example.com" {
		t.Fatalf("unexpected invitations %+v", list)
	}

	token, temp, found := h.sb.PendingInvite("new.user@example.com")
	if !found {
		t.Fatal("invite not found in sandbox")
	}
	if _, err := h.svc.Invitations.Validate(ctx, token, "wrong"); err == nil {
		t.Fatal("expected wrong temp password to fail")
	}
	if _, err := h.svc.Invitations.Validate(ctx, token, temp); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := h.svc.Invitations.Complete(ctx, token, "short", "short"); err == nil {
		t.Fatal("expected short password to fail locally")
	}
	if _, err := h.svc.Invitations.Complete(ctx, token, "long-enough-1", "long-enough-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
}
