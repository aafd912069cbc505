package query

import (
	"context"
	"errors"
	"time"

	"github.com/hance08/payops/internal/store"
)

// SQLiteBackend keeps entries in the local store so they survive between
// invocations of the CLI.
type SQLiteBackend struct {
	repo store.CacheRepository
}

func NewSQLiteBackend(repo store.CacheRepository) *SQLiteBackend {
	return &SQLiteBackend{repo: repo}
}

func (b *SQLiteBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	row, err := b.repo.GetCacheEntry(key)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	return Entry{
		Key:       row.Key,
		Resource:  row.Resource,
		Payload:   row.Payload,
		StoredAt:  time.Unix(row.StoredAt, 0),
		ExpiresAt: time.Unix(row.ExpiresAt, 0),
	}, true, nil
}

func (b *SQLiteBackend) Set(_ context.Context, entry Entry) error {
	return b.repo.PutCacheEntry(store.CacheEntry{
		Key:       entry.Key,
		Resource:  entry.Resource,
		Payload:   entry.Payload,
		StoredAt:  entry.StoredAt.Unix(),
		ExpiresAt: entry.ExpiresAt.Unix(),
	})
}

func (b *SQLiteBackend) InvalidateResources(_ context.Context, resources ...string) error {
	return b.repo.DeleteCacheByResource(resources...)
}

func (b *SQLiteBackend) InvalidateAll(_ context.Context) error {
	return b.repo.DeleteAllCache()
}

// Purge drops expired rows so the cache table does not grow without bound.
func (b *SQLiteBackend) Purge(now time.Time) (int64, error) {
	return b.repo.PurgeExpiredCache(now.Unix())
}
