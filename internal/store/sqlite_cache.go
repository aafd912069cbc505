package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func (s *Store) GetCacheEntry(key string) (*CacheEntry, error) {
	entry := &CacheEntry{}
	err := s.db.QueryRow(`
		SELECT cache_key, resource, payload, stored_at, expires_at
		FROM query_cache
		WHERE cache_key = ?
	`, key).Scan(&entry.Key, &entry.Resource, &entry.Payload, &entry.StoredAt, &entry.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query cache entry: %w", err)
	}

	return entry, nil
}

func (s *Store) PutCacheEntry(entry CacheEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO query_cache (cache_key, resource, payload, stored_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			resource = excluded.resource,
			payload = excluded.payload,
			stored_at = excluded.stored_at,
			expires_at = excluded.expires_at
	`, entry.Key, entry.Resource, entry.Payload, entry.StoredAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteCacheByResource(resources ...string) error {
	if len(resources) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(resources)), ",")
	args := make([]any, len(resources))
	for i, r := range resources {
		args[i] = r
	}

	_, err := s.db.Exec(`DELETE FROM query_cache WHERE resource IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllCache() error {
	if _, err := s.db.Exec(`DELETE FROM query_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// PurgeExpiredCache drops entries past their expiry and reports how many went.
func (s *Store) PurgeExpiredCache(now int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM query_cache WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
