package ledger_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/payops/internal/ledger"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	dir := t.TempDir()
	l, err := ledger.Open(filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatalf("failed to open test ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAcquireReusesKeyUntilConfirmed(t *testing.T) {
	l := newTestLedger(t)
	op := ledger.OperationKey("charge", "paypal", "row-1")

	first, err := l.Acquire(op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := l.Acquire(op)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}

	if first.Key == "" || first.Key != second.Key {
		t.Fatalf("retry must reuse key: %q vs %q", first.Key, second.Key)
	}
	if second.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", second.Attempts)
	}

	if err := l.Confirm(op); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := l.Get(op); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after confirm, got %v", err)
	}

	third, err := l.Acquire(op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Key == first.Key {
		t.Fatal("a confirmed operation must not hand out its old key")
	}
}

func TestConfirmUnknownIsNoop(t *testing.T) {
	l := newTestLedger(t)
	if err := l.Confirm("never-seen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOperationKeyIgnoresOrder(t *testing.T) {
	a := ledger.OperationKey("bulk-charge", "paypal", "b", "a", "c")
	b := ledger.OperationKey("bulk-charge", "paypal", "c", "b", "a")
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
}

func TestPendingAndPrune(t *testing.T) {
	l := newTestLedger(t)

	if items, err := l.Pending(); err != nil || len(items) != 0 {
		t.Fatalf("expected empty ledger, got %v (%v)", items, err)
	}

	_, _ = l.Acquire("refund:stripe:r1")
	_, _ = l.Acquire("refund:stripe:r2")

	items, err := l.Pending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(items))
	}

	removed, err := l.Prune(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 pruned, got %d", removed)
	}
}
