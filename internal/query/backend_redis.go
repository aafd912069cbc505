package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "payops:cache:"

// RedisBackend shares one cache among operators. Each entry is a JSON
// value with a server-side TTL; a set per resource indexes its keys.
type RedisBackend struct {
	rdb *redis.Client
}

func NewRedisBackend(addr string, db int) *RedisBackend {
	return &RedisBackend{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// NewRedisBackendWithClient wraps an existing client.
func NewRedisBackendWithClient(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis cache unreachable: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}

func (b *RedisBackend) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := b.rdb.Get(ctx, redisPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// unreadable entries count as a miss and get overwritten
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	// The index lives as long as its longest-lived member, never shorter.
	set := resourceSet(entry.Resource)
	current, err := b.rdb.TTL(ctx, set).Result()
	if err != nil {
		return err
	}
	_, err = b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisPrefix+entry.Key, raw, ttl)
		pipe.SAdd(ctx, set, entry.Key)
		if current < ttl {
			pipe.Expire(ctx, set, ttl)
		}
		return nil
	})
	return err
}

func (b *RedisBackend) InvalidateResources(ctx context.Context, resources ...string) error {
	for _, r := range resources {
		keys, err := b.rdb.SMembers(ctx, resourceSet(r)).Result()
		if err != nil {
			return err
		}

		doomed := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			doomed = append(doomed, redisPrefix+k)
		}
		doomed = append(doomed, resourceSet(r))

		if err := b.rdb.Del(ctx, doomed...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (b *RedisBackend) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := b.rdb.Scan(ctx, cursor, redisPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := b.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func resourceSet(resource string) string {
	return redisPrefix + "resource:" + resource
}
