// Package redis backs the resolver lookup cache with a Redis server.
package redis

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

var (
	ErrClientClosed     = errors.New(errors.ErrCodeInternal, "redis client is closed")
	ErrConnectionFailed = errors.New(errors.ErrCodeCacheError, "redis connection failed")
)

// RedisConfig describes a standalone server.  Zero durations and counts take
// the defaults applied by NewClient.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

func (cfg RedisConfig) options() *redis.Options {
	orDuration := func(v, def time.Duration) time.Duration {
		if v == 0 {
			return def
		}
		return v
	}
	orInt := func(v, def int) int {
		if v == 0 {
			return def
		}
		return v
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     orInt(cfg.PoolSize, 4),
		DialTimeout:  orDuration(cfg.DialTimeout, 5*time.Second),
		ReadTimeout:  orDuration(cfg.ReadTimeout, 3*time.Second),
		WriteTimeout: orDuration(cfg.WriteTimeout, 3*time.Second),
		MaxRetries:   orInt(cfg.MaxRetries, 2),
	}
}

// Client exposes the few byte-level operations the cache needs.  Every call
// after Close fails with ErrClientClosed.
type Client struct {
	mu     sync.RWMutex
	rdb    redis.UniversalClient
	logger logging.Logger
}

// NewClient dials cfg.Addr and fails unless PING answers within the dial
// timeout.
func NewClient(cfg *RedisConfig, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	opts := cfg.options()
	c := newClient(redis.NewClient(opts), log)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, ErrConnectionFailed.WithDetail("addr=" + cfg.Addr).WithCause(err)
	}

	log.Info("redis connected", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return c, nil
}

func newClient(rdb redis.UniversalClient, log logging.Logger) *Client {
	return &Client{rdb: rdb, logger: log}
}

func (c *Client) conn() (redis.UniversalClient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rdb == nil {
		return nil, ErrClientClosed
	}
	return c.rdb, nil
}

func (c *Client) Ping(ctx context.Context) error {
	rdb, err := c.conn()
	if err != nil {
		return err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis ping failed")
	}
	return nil
}

// Get returns the value under key and whether it existed.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rdb, err := c.conn()
	if err != nil {
		return nil, false, err
	}
	data, err := rdb.Get(ctx, key).Bytes()
	switch {
	case stderrors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, errors.New(errors.ErrCodeCacheError, "redis GET failed").WithDetail("key=" + key).WithCause(err)
	}
	return data, true, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	rdb, err := c.conn()
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.New(errors.ErrCodeCacheError, "redis SET failed").WithDetail("key=" + key).WithCause(err)
	}
	return nil
}

// Close releases the pool; later calls are no-ops.
func (c *Client) Close() error {
	c.mu.Lock()
	rdb := c.rdb
	c.rdb = nil
	c.mu.Unlock()
	if rdb == nil {
		return nil
	}
	if err := rdb.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to close redis client")
	}
	c.logger.Debug("redis closed")
	return nil
}

//Personal.AI order the ending
