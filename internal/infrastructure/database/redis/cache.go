package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

var (
	ErrCacheMiss           = errors.New(errors.ErrCodeNotFound, "cache miss")
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "serialization failed")
)

// Cache stores JSON values under prefixed keys.
type Cache interface {
	// Get decodes the value under key into dest or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores value; a zero ttl selects the cache default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type CacheOption func(*redisCache)

// WithPrefix sets the namespace prepended to every key.
func WithPrefix(prefix string) CacheOption { return func(c *redisCache) { c.prefix = prefix } }

func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *redisCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

type redisCache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	jitter     float64 // each expiry varies by up to ±jitter of its TTL
}

func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &redisCache{
		client:     client,
		logger:     log,
		prefix:     "sdfmine:",
		defaultTTL: 30 * 24 * time.Hour,
		jitter:     0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 || c.jitter == 0 {
		return ttl
	}
	return ttl + time.Duration(float64(ttl)*c.jitter*(2*rand.Float64()-1))
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, found, err := c.client.Get(ctx, c.key(key))
	if err != nil {
		return err
	}
	if !found {
		c.logger.Debug("cache miss", logging.String("key", key))
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithDetail("key=" + key).WithCause(err)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return ErrSerializationFailed.WithDetail("key=" + key).WithCause(err)
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, c.key(key), data, c.jitterTTL(ttl))
}

func (c *redisCache) Ping(ctx context.Context) error { return c.client.Ping(ctx) }

//Personal.AI order the ending
