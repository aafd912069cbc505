package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "payops.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	first := Session{Token: "tok-1", Email: "ops@example.com", CreatedAt: 100, ExpiresAt: 200}
	if err := s.SaveSession(first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := Session{Token: "tok-2", Email: "ops@example.com", CreatedAt: 150, ExpiresAt: 300}
	if err := s.SaveSession(second); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := s.GetSession()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != "tok-2" || got.ExpiresAt != 300 {
		t.Fatalf("expected second session to replace first, got %+v", got)
	}
	if got.Expired(299) || !got.Expired(300) {
		t.Fatal("expiry boundary is wrong")
	}

	if err := s.ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
	if _, err := s.GetSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestCacheInvalidationByResource(t *testing.T) {
	s := newTestStore(t)

	entries := []CacheEntry{
		{Key: "rows?page=1", Resource: "rows", Payload: []byte(`[1]`), StoredAt: 1, ExpiresAt: 10},
		{Key: "rows?page=2", Resource: "rows", Payload: []byte(`[2]`), StoredAt: 1, ExpiresAt: 10},
		{Key: "uploads", Resource: "uploads", Payload: []byte(`[3]`), StoredAt: 1, ExpiresAt: 10},
	}
	for _, e := range entries {
		if err := s.PutCacheEntry(e); err != nil {
			t.Fatalf("put %s: %v", e.Key, err)
		}
	}

	if err := s.DeleteCacheByResource("rows"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if _, err := s.GetCacheEntry("rows?page=1"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("rows entry should be gone, got %v", err)
	}
	got, err := s.GetCacheEntry("uploads")
	if err != nil {
		t.Fatalf("uploads entry should survive: %v", err)
	}
	if string(got.Payload) != `[3]` {
		t.Fatalf("unexpected payload %s", got.Payload)
	}
}

func TestPurgeExpiredCache(t *testing.T) {
	s := newTestStore(t)

	_ = s.PutCacheEntry(CacheEntry{Key: "old", Resource: "rows", Payload: []byte(`1`), ExpiresAt: 5})
	_ = s.PutCacheEntry(CacheEntry{Key: "new", Resource: "rows", Payload: []byte(`2`), ExpiresAt: 50})

	n, err := s.PurgeExpiredCache(10)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged entry, got %d", n)
	}
}

func TestSelectionResetsOnPageChange(t *testing.T) {
	s := newTestStore(t)

	sel, err := s.AddToSelection("paypal|page=1", []string{"a", "b"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(sel.RowIDs) != 2 || sel.PageKey != "paypal|page=1" {
		t.Fatalf("unexpected selection %+v", sel)
	}

	sel, err = s.AddToSelection("paypal|page=1", []string{"b", "c"})
	if err != nil {
		t.Fatalf("add same page: %v", err)
	}
	if len(sel.RowIDs) != 3 {
		t.Fatalf("expected a,b,c selected, got %v", sel.RowIDs)
	}

	sel, err = s.AddToSelection("paypal|page=2", []string{"z"})
	if err != nil {
		t.Fatalf("add other page: %v", err)
	}
	if len(sel.RowIDs) != 1 || sel.RowIDs[0] != "z" {
		t.Fatalf("page change must drop previous ids, got %v", sel.RowIDs)
	}

	sel, err = s.RemoveFromSelection([]string{"z"})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !sel.Empty() {
		t.Fatalf("expected empty selection, got %v", sel.RowIDs)
	}
}
