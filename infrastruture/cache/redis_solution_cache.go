package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/sma-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "smamaze"
	solutionKeyFmt = "%s:solution:%s"
	lockKeyFmt     = "%s:solve_lock:%s"

	defaultLockExpiry = 30 * time.Second
	lockTries         = 64
)

var _ i.SolutionCache = &RedisSolutionCache{}

// RedisSolutionCache keeps fingerprint to solution ID entries in Redis with a TTL.
type RedisSolutionCache struct {
	client     *redis.Client
	locker     *redsync.Redsync
	prefix     string
	ttl        time.Duration
	lockExpiry time.Duration
}

// NewRedisSolutionCache initializes a RedisSolutionCache with the provided Redis client and TTL.
func NewRedisSolutionCache(client *redis.Client, prefix string, ttlSeconds int) (*RedisSolutionCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	cache := &RedisSolutionCache{
		client:     client,
		prefix:     prefix,
		ttl:        time.Duration(ttlSeconds) * time.Second,
		lockExpiry: defaultLockExpiry,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Lookup returns the solution ID stored for fingerprint.
func (c *RedisSolutionCache) Lookup(ctx context.Context, fingerprint string) (uuid.UUID, bool, error) {
	raw, err := c.client.Get(ctx, c.solutionKey(fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		// drop the entry so the next request solves again
		_ = c.client.Del(ctx, c.solutionKey(fingerprint)).Err()
		return uuid.Nil, false, fmt.Errorf("non-UUID value cached for %s: %w", fingerprint, err)
	}
	return id, true, nil
}

// Store saves the solution ID for fingerprint; a zero TTL keeps it forever.
func (c *RedisSolutionCache) Store(ctx context.Context, fingerprint string, id uuid.UUID) error {
	return c.client.Set(ctx, c.solutionKey(fingerprint), id.String(), c.ttl).Err()
}

// Lock takes the solve lock for fingerprint so only one instance searches it.
// The lock is extended every half expiry until the returned function runs.
func (c *RedisSolutionCache) Lock(ctx context.Context, fingerprint string) (func(), error) {
	mutex := c.locker.NewMutex(
		c.lockKey(fingerprint),
		redsync.WithExpiry(c.lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(c.lockExpiry / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if ok, err := mutex.Extend(); !ok || err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-stopped
			_, _ = mutex.Unlock()
		})
	}, nil
}

func (c *RedisSolutionCache) lockKey(fingerprint string) string {
	return fmt.Sprintf(lockKeyFmt, c.prefix, fingerprint)
}

func (c *RedisSolutionCache) solutionKey(fingerprint string) string {
	return fmt.Sprintf(solutionKeyFmt, c.prefix, fingerprint)
}
