package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL   = 10 * time.Second
	defaultRetry = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds the caller's owner token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// cmdable is the subset of *redis.Client used by Redis.
type cmdable interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// Redis implements Locker with SETNX + TTL. The TTL bounds how long a crashed owner blocks others.
type Redis struct {
	client cmdable
	ttl    time.Duration
	retry  time.Duration
}

// NewRedis constructs a Redis-backed locker.
func NewRedis(client cmdable, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, ttl: ttl, retry: defaultRetry}, nil
}

// Acquire polls SETNX until it owns key or ctx is done.
func (l *Redis) Acquire(ctx context.Context, key string) (Release, error) {
	owner := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("setnx %s: %w", key, err)
		}
		if ok {
			return l.release(key, owner), nil
		}

		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-t.C:
		}
	}
}

// release frees the lock only if the owner value still matches.
func (l *Redis) release(key, owner string) Release {
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, owner).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}
}
