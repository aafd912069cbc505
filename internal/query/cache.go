package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

// Cache sits between the views and the API client. Reads go through Fetch;
// writes go through Mutate so the invalidation graph is applied after every
// successful mutation.
type Cache struct {
	backend Backend
	ttl     time.Duration
	group   singleflight.Group
	logger  *pterm.Logger
	now     func() time.Time

	// epochs count invalidations per resource; a load that saw an
	// invalidation of its resource does not store its result.
	mu       sync.Mutex
	epochAll uint64
	epochs   map[string]uint64
}

func New(backend Backend, ttl time.Duration, logger *pterm.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		backend: backend,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		epochs:  make(map[string]uint64),
	}
}

func (c *Cache) epoch(resource string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epochAll + c.epochs[resource]
}

func (c *Cache) bump(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(resources) == 0 {
		c.epochAll++
		return
	}
	for _, r := range resources {
		c.epochs[r]++
	}
}

// Fetch returns the cached value for key while it is fresh, otherwise runs
// load once for all concurrent callers and stores the result.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	k := key.String()

	entry, found, err := c.backend.Get(ctx, k)
	if err != nil {
		c.logger.Warn("cache read failed", c.logger.Args("key", k, "error", err))
	}
	if found && !entry.Expired(c.now()) {
		var v T
		if err := json.Unmarshal(entry.Payload, &v); err == nil {
			c.logger.Trace("cache hit", c.logger.Args("key", k))
			return v, nil
		}
	}

	return loadShared(ctx, c, key, load)
}

// Refetch skips the cached value but still shares the load with concurrent
// callers and stores what it gets. Polling loops use it.
func Refetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	return loadShared(ctx, c, key, load)
}

func loadShared[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	var zero T
	k := key.String()

	shared, err, dup := c.group.Do(k, func() (any, error) {
		started := c.epoch(key.Resource)
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if c.epoch(key.Resource) != started {
			c.logger.Debug("invalidated during load, not cached", c.logger.Args("key", k))
			return v, nil
		}
		c.store(ctx, key, v)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	if dup {
		c.logger.Trace("shared in-flight fetch", c.logger.Args("key", k))
	}

	v, ok := shared.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %s shared between different types", k)
	}
	return v, nil
}

func (c *Cache) store(ctx context.Context, key Key, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", c.logger.Args("key", key.String(), "error", err))
		return
	}

	now := c.now()
	err = c.backend.Set(ctx, Entry{
		Key:       key.String(),
		Resource:  key.Resource,
		Payload:   payload,
		StoredAt:  now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		c.logger.Warn("cache write failed", c.logger.Args("key", key.String(), "error", err))
	}
}

// Invalidate drops everything mutation m affects.
func (c *Cache) Invalidate(ctx context.Context, m Mutation) error {
	resources, all := Invalidates(m)
	if all {
		return c.InvalidateAll(ctx)
	}
	if len(resources) == 0 {
		return nil
	}
	c.logger.Debug("invalidate", c.logger.Args("mutation", string(m), "resources", resources))
	c.bump(resources...)
	return c.backend.InvalidateResources(ctx, resources...)
}

func (c *Cache) InvalidateAll(ctx context.Context) error {
	c.logger.Debug("invalidate all")
	c.bump()
	return c.backend.InvalidateAll(ctx)
}

// Mutate runs fn and, only if it succeeds, invalidates what m affects.
// A failed invalidation is logged; the mutation itself already happened.
func Mutate[T any](ctx context.Context, c *Cache, m Mutation, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Invalidate(ctx, m); err != nil {
		c.logger.Warn("cache invalidation failed", c.logger.Args("mutation", string(m), "error", err))
	}
	return v, nil
}
