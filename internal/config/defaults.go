package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultRecordTerminator = "$$$$"
	DefaultNameTag          = "<Name>"
	DefaultFormulaTag       = "<Formula>"
	DefaultCASTag           = "<CAS>"
	DefaultCoordinatesStart = "csChFnd80"
	DefaultCoordinatesEnd   = "END"

	DefaultResolverBaseURL   = "http://cactus.nci.nih.gov/chemical/structure"
	DefaultResolverTimeout   = 30 * time.Second
	DefaultResolverUserAgent = "sdfmine/0.1"

	DefaultCacheAddr      = "localhost:6379"
	DefaultCacheKeyPrefix = "sdfmine:cas:"
	DefaultCacheTTL       = 30 * 24 * time.Hour

	DefaultFingerprintBits = 2048
	DefaultMinPath         = 1
	DefaultMaxPath         = 7
	DefaultDelimiter       = ","

	DefaultMetricsNamespace = "sdfmine"

	DefaultArchiveBucket = "sdfmine-runs"
	DefaultArchiveRegion = "us-east-1"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}

	// ── Library ───────────────────────────────────────────────────────────────
	if cfg.Library.RecordTerminator == "" {
		cfg.Library.RecordTerminator = DefaultRecordTerminator
	}
	if cfg.Library.NameTag == "" {
		cfg.Library.NameTag = DefaultNameTag
	}
	if cfg.Library.FormulaTag == "" {
		cfg.Library.FormulaTag = DefaultFormulaTag
	}
	if cfg.Library.CASTag == "" {
		cfg.Library.CASTag = DefaultCASTag
	}
	if cfg.Library.CoordinatesStart == "" {
		cfg.Library.CoordinatesStart = DefaultCoordinatesStart
	}
	if cfg.Library.CoordinatesEnd == "" {
		cfg.Library.CoordinatesEnd = DefaultCoordinatesEnd
	}

	// ── Resolver ──────────────────────────────────────────────────────────────
	if cfg.Resolver.BaseURL == "" {
		cfg.Resolver.BaseURL = DefaultResolverBaseURL
	}
	if cfg.Resolver.Timeout == 0 {
		cfg.Resolver.Timeout = DefaultResolverTimeout
	}
	if cfg.Resolver.UserAgent == "" {
		cfg.Resolver.UserAgent = DefaultResolverUserAgent
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCacheKeyPrefix
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.DialTimeout == 0 {
		cfg.Cache.DialTimeout = 5 * time.Second
	}

	// ── Scoring ───────────────────────────────────────────────────────────────
	if cfg.Scoring.FingerprintBits == 0 {
		cfg.Scoring.FingerprintBits = DefaultFingerprintBits
	}
	if cfg.Scoring.MinPath == 0 {
		cfg.Scoring.MinPath = DefaultMinPath
	}
	if cfg.Scoring.MaxPath == 0 {
		cfg.Scoring.MaxPath = DefaultMaxPath
	}
	if cfg.Scoring.Delimiter == "" {
		cfg.Scoring.Delimiter = DefaultDelimiter
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Archive ───────────────────────────────────────────────────────────────
	if cfg.Archive.Bucket == "" {
		cfg.Archive.Bucket = DefaultArchiveBucket
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = DefaultArchiveRegion
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
