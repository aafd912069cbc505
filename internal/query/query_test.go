package query

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hance08/payops/internal/logging"
)

func newTestCache(t *testing.T) (*Cache, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return New(backend, time.Minute, logging.Discard()), backend
}

func TestKeyStringIsCanonical(t *testing.T) {
	a := NewKey(ResourceRows, map[string]string{"page": "1", "gateway": "paypal", "search": ""})
	b := NewKey(ResourceRows, map[string]string{"gateway": "paypal", "page": "1"})

	if a.String() != b.String() {
		t.Fatalf("expected equal keys, got %q and %q", a.String(), b.String())
	}
	if a.String() != "rows?gateway=paypal&page=1" {
		t.Errorf("unexpected canonical form %q", a.String())
	}
	if NewKey(ResourceProfile, nil).String() != "profile" {
		t.Errorf("bare resource should render as its name")
	}
}

func TestParseKeyReversesString(t *testing.T) {
	k := NewKey(ResourceRows, map[string]string{"search": "ada lovelace", "page": "2"})

	parsed, err := ParseKey(k.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != k.String() {
		t.Errorf("round trip changed key: %q -> %q", k.String(), parsed.String())
	}
	if parsed.Params["search"] != "ada lovelace" {
		t.Errorf("search param = %q", parsed.Params["search"])
	}

	if _, err := ParseKey(""); err == nil {
		t.Error("empty key should not parse")
	}
}

func TestFetchCachesUntilTTL(t *testing.T) {
	c, _ := newTestCache(t)
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}
	key := NewKey(ResourceUploads, nil)

	for i := 0; i < 3; i++ {
		got, err := Fetch(context.Background(), c, key, load)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if !slices.Equal(got, []string{"a", "b"}) {
			t.Fatalf("unexpected value %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := Fetch(context.Background(), c, key, load); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expired entry should reload, got %d loads", calls)
	}
}

func TestFetchDeduplicatesConcurrentLoads(t *testing.T) {
	c, _ := newTestCache(t)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}
	key := NewKey(ResourceRows, map[string]string{"page": "1"})

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), c, key, load)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected a single load, got %d", calls.Load())
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("caller %d got %d", i, v)
		}
	}
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c, backend := newTestCache(t)
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), c, NewKey(ResourceRow, map[string]string{"id": "1"}), func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if backend.Len() != 0 {
		t.Fatalf("failed load must not be stored")
	}
}

func TestMutateInvalidatesOnlyOnSuccess(t *testing.T) {
	c, backend := newTestCache(t)
	ctx := context.Background()

	for _, k := range []Key{
		NewKey(ResourceRows, map[string]string{"page": "1"}),
		NewKey(ResourceRow, map[string]string{"id": "r1"}),
		NewKey(ResourceStripeAccounts, nil),
	} {
		c.store(ctx, k, "cached")
	}

	_, err := Mutate(ctx, c, MutationCharge, func(context.Context) (string, error) {
		return "", errors.New("declined")
	})
	if err == nil {
		t.Fatal("expected the mutation error")
	}
	if backend.Len() != 3 {
		t.Fatalf("failed mutation must not invalidate, have %d entries", backend.Len())
	}

	if _, err := Mutate(ctx, c, MutationCharge, func(context.Context) (string, error) {
		return "ok", nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.Len() != 1 {
		t.Fatalf("charge should leave only the stripe accounts entry, have %d", backend.Len())
	}
	if _, found, _ := backend.Get(ctx, NewKey(ResourceStripeAccounts, nil).String()); !found {
		t.Fatal("unrelated resource was invalidated")
	}
}

func TestInvalidationGraph(t *testing.T) {
	tests := []struct {
		m    Mutation
		want []string
	}{
		{MutationRetryUpload, []string{ResourceUploads}},
		{MutationBulkRefund, []string{ResourceRows, ResourceRow, ResourceAdminTransactions, ResourceUploads}},
		{MutationStripeCreateAccount, []string{ResourceStripeAccounts}},
		{MutationSendInvitation, []string{ResourceInvitations}},
	}
	for _, tt := range tests {
		got, all := Invalidates(tt.m)
		if all {
			t.Errorf("%s should not clear everything", tt.m)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s invalidates %v, want %v", tt.m, got, tt.want)
		}
	}

	if _, all := Invalidates(MutationLogout); !all {
		t.Error("logout must clear the whole cache")
	}
}

func TestGeneration(t *testing.T) {
	var g Generation
	first := g.Next()
	second := g.Next()

	if g.Current(first) {
		t.Error("older token must not be current")
	}
	if !g.Current(second) {
		t.Error("latest token must be current")
	}
}

func TestDebouncerLetsOnlyLastCallThrough(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var passed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.Wait(context.Background()) {
				passed.Add(1)
			}
		}()
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	if passed.Load() != 1 {
		t.Fatalf("expected exactly one call through, got %d", passed.Load())
	}
}

func TestDebouncerCancelled(t *testing.T) {
	d := NewDebouncer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if d.Wait(ctx) {
		t.Fatal("cancelled wait must not proceed")
	}
}

func TestLoadInvalidatedMidFlightIsNotStored(t *testing.T) {
	c, backend := newTestCache(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	key := NewKey(ResourceRows, map[string]string{"page": "1"})

	done := make(chan error, 1)
	go func() {
		_, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "before charge", nil
		})
		done <- err
	}()

	<-started
	if _, err := Mutate(ctx, c, MutationCharge, func(context.Context) (string, error) {
		return "ok", nil
	}); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, found, _ := backend.Get(ctx, key.String()); found {
		t.Fatal("result loaded before the charge was cached after it")
	}

	calls := 0
	if _, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
		calls++
		return "after charge", nil
	}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a fresh load, got %d", calls)
	}
	if _, found, _ := backend.Get(ctx, key.String()); !found {
		t.Error("an undisturbed load should be cached")
	}
}

func TestUnrelatedInvalidationKeepsLoad(t *testing.T) {
	c, backend := newTestCache(t)
	ctx := context.Background()
	key := NewKey(ResourceStripeAccounts, nil)

	_, err := Fetch(ctx, c, key, func(context.Context) (int, error) {
		if err := c.Invalidate(ctx, MutationCharge); err != nil {
			t.Errorf("invalidate: %v", err)
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, found, _ := backend.Get(ctx, key.String()); !found {
		t.Error("invalidating rows must not discard a stripe accounts load")
	}
}
