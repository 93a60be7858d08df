package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "belief"
	runKeyFmt     = "%s:run:%s"
	lockKeyFmt    = "%s:run:%s:lock"
	lockExpiry    = 30 * time.Second
)

// RedisRunCache caches finished runs in Redis with TTL support.
type RedisRunCache struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisRunCache initializes a RedisRunCache with the provided Redis client and TTL.
func NewRedisRunCache(client *redis.Client, ttlSeconds int) (*RedisRunCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("run cache ttl must be positive, got %d", ttlSeconds)
	}

	c := &RedisRunCache{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Get returns the cached run for key, or nil on a miss.
func (c *RedisRunCache) Get(ctx context.Context, key string) (*dmn.Run, error) {
	raw, err := c.client.Get(ctx, c.runKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var run dmn.Run
	if err := json.Unmarshal(raw, &run); err != nil {
		return nil, fmt.Errorf("decoding cached run: %w", err)
	}
	return &run, nil
}

// Set stores run under key until the TTL expires.
func (c *RedisRunCache) Set(ctx context.Context, key string, run *dmn.Run) error {
	raw, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}
	return c.client.Set(ctx, c.runKey(key), raw, c.ttl).Err()
}

// Lock acquires a distributed mutex for key so identical requests compute once.
func (c *RedisRunCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(fmt.Sprintf(lockKeyFmt, c.prefix, key), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}

func (c *RedisRunCache) runKey(key string) string {
	return fmt.Sprintf(runKeyFmt, c.prefix, key)
}
