package cli

import (
	"github.com/turtacn/SDF-Library-Mining/internal/application/mining"
	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
	"github.com/turtacn/SDF-Library-Mining/internal/config"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/database/redis"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/storage/minio"
)

// serviceNeeds selects the optional collaborators a command builds.
type serviceNeeds struct {
	resolver bool
	scorer   bool
	archive  bool
}

// buildService wires a mining.Service from configuration.  The returned
// cleanup closes every connection opened on the way and is never nil.
func buildService(cliCtx *CLIContext, needs serviceNeeds) (mining.Service, func(), error) {
	cfg := cliCtx.Config
	log := cliCtx.Logger

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close failed", logging.Err(err))
			}
		}
	}

	loader := library.NewLoader(markersFrom(cfg.Library), log.Named("library"))
	opts := []mining.Option{}

	if needs.resolver {
		r, closer, err := buildResolver(cfg, log)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		opts = append(opts, mining.WithResolver(r))
	}

	if needs.scorer {
		sc, err := scoring.NewNucleosideScorer(cfg.Scoring.FingerprintBits, cfg.Scoring.MinPath, cfg.Scoring.MaxPath, log.Named("scoring"))
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opts = append(opts, mining.WithScorer(sc))
	}

	if cfg.Metrics.Enabled {
		collector, err := prom.NewMetricsCollector(prom.CollectorConfig{Namespace: cfg.Metrics.Namespace}, log)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opts = append(opts, mining.WithMetrics(collector, cfg.Metrics.Textfile))
	}

	if needs.archive && cfg.Archive.Enabled {
		bucket, err := minio.OpenBucket(minio.Config{
			Endpoint:        cfg.Archive.Endpoint,
			AccessKeyID:     cfg.Archive.AccessKey,
			SecretAccessKey: cfg.Archive.SecretKey,
			UseSSL:          cfg.Archive.UseSSL,
			Region:          cfg.Archive.Region,
			Bucket:          cfg.Archive.Bucket,
		}, log.Named("archive"))
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, bucket.Close)
		opts = append(opts, mining.WithArchive(minio.NewRunArchive(bucket, cfg.Archive.Prefix, log.Named("archive"))))
	}

	return mining.NewService(loader, log, opts...), cleanup, nil
}

// buildResolver returns the HTTP resolver, fronted by the redis cache when
// one is configured.
func buildResolver(cfg *config.Config, log logging.Logger) (resolver.IdentifierResolver, func() error, error) {
	cactus, err := resolver.NewCactusResolver(cfg.Resolver.BaseURL,
		resolver.WithTimeout(cfg.Resolver.Timeout),
		resolver.WithUserAgent(cfg.Resolver.UserAgent))
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled {
		return cactus, nil, nil
	}

	client, err := redis.NewClient(&redis.RedisConfig{
		Addr:        cfg.Cache.Addr,
		Password:    cfg.Cache.Password,
		DB:          cfg.Cache.DB,
		DialTimeout: cfg.Cache.DialTimeout,
	}, log.Named("cache"))
	if err != nil {
		return nil, nil, err
	}
	cache := redis.NewRedisCache(client, log.Named("cache"),
		redis.WithPrefix(cfg.Cache.KeyPrefix),
		redis.WithDefaultTTL(cfg.Cache.TTL))
	return resolver.NewCachedResolver(cactus, cache, cfg.Cache.TTL, log.Named("resolver")), client.Close, nil
}

func markersFrom(c config.LibraryConfig) library.Markers {
	return library.Markers{
		Terminator:       c.RecordTerminator,
		NameTag:          c.NameTag,
		FormulaTag:       c.FormulaTag,
		CASTag:           c.CASTag,
		CoordinatesStart: c.CoordinatesStart,
		CoordinatesEnd:   c.CoordinatesEnd,
	}
}

//Personal.AI order the ending
