package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/database/redis"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

type cachedLookup struct {
	SMILES     string    `json:"smiles"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// CachedResolver serves lookups from a cache before delegating.  Only
// successful lookups are stored.  Cache faults are logged and bypassed.
type CachedResolver struct {
	next   IdentifierResolver
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time
}

// NewCachedResolver wraps next with cache.  A zero ttl uses the cache default.
func NewCachedResolver(next IdentifierResolver, cache redis.Cache, ttl time.Duration, logger logging.Logger) *CachedResolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CachedResolver{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve returns the cached SMILES for cas or looks it up and caches the
// answer.  Cache failures never fail the lookup.
func (c *CachedResolver) Resolve(ctx context.Context, cas string) (string, error) {
	key := strings.TrimSpace(cas)

	var hit cachedLookup
	err := c.cache.Get(ctx, key, &hit)
	switch {
	case err == nil && hit.SMILES != "":
		c.logger.Debug("resolver cache hit", logging.String("cas", key))
		return hit.SMILES, nil
	case err != nil && !pkgerrors.IsCode(err, pkgerrors.ErrCodeNotFound):
		c.logger.Warn("resolver cache read failed", logging.String("cas", key), logging.Err(err))
	}

	smiles, err := c.next.Resolve(ctx, cas)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, cachedLookup{SMILES: smiles, ResolvedAt: c.now().UTC()}, c.ttl); err != nil {
		c.logger.Warn("resolver cache write failed", logging.String("cas", key), logging.Err(err))
	}
	return smiles, nil
}

var _ IdentifierResolver = (*CachedResolver)(nil)

//Personal.AI order the ending
