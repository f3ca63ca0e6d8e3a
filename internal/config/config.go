// Package config defines the sdfmine configuration structures.  No I/O or
// parsing happens in this file; it holds the data types and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level        string `mapstructure:"level" yaml:"level"`   // "debug" | "info" | "warn" | "error"
	Format       string `mapstructure:"format" yaml:"format"` // "json" | "console"
	Output       string `mapstructure:"output" yaml:"output"`
	EnableCaller bool   `mapstructure:"enable_caller" yaml:"enable_caller"`
}

// LibraryConfig holds the markers used to split and read library files.
type LibraryConfig struct {
	RecordTerminator string `mapstructure:"record_terminator" yaml:"record_terminator"`
	NameTag          string `mapstructure:"name_tag" yaml:"name_tag"`
	FormulaTag       string `mapstructure:"formula_tag" yaml:"formula_tag"`
	CASTag           string `mapstructure:"cas_tag" yaml:"cas_tag"`
	CoordinatesStart string `mapstructure:"coordinates_start" yaml:"coordinates_start"`
	CoordinatesEnd   string `mapstructure:"coordinates_end" yaml:"coordinates_end"`
}

// ResolverConfig holds structure-resolution service parameters.
type ResolverConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// CacheConfig holds Redis parameters for the resolver lookup cache.
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled" yaml:"enabled"`
	Addr        string        `mapstructure:"addr" yaml:"addr"`
	Password    string        `mapstructure:"password" yaml:"-"`
	DB          int           `mapstructure:"db" yaml:"db"`
	KeyPrefix   string        `mapstructure:"key_prefix" yaml:"key_prefix"`
	TTL         time.Duration `mapstructure:"ttl" yaml:"ttl"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

// ScoringConfig holds fingerprint and output parameters for similarity scoring.
type ScoringConfig struct {
	FingerprintBits int    `mapstructure:"fingerprint_bits" yaml:"fingerprint_bits"`
	MinPath         int    `mapstructure:"min_path" yaml:"min_path"`
	MaxPath         int    `mapstructure:"max_path" yaml:"max_path"`
	Delimiter       string `mapstructure:"delimiter" yaml:"delimiter"`
}

// MetricsConfig controls the Prometheus textfile export written after each run.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	Textfile  string `mapstructure:"textfile" yaml:"textfile"`
}

// ArchiveConfig holds MinIO / S3-compatible parameters for uploading run
// artifacts.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"-"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Region    string `mapstructure:"region" yaml:"region"`
	UseSSL    bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Library  LibraryConfig  `mapstructure:"library" yaml:"library"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Scoring  ScoringConfig  `mapstructure:"scoring" yaml:"scoring"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Archive  ArchiveConfig  `mapstructure:"archive" yaml:"archive"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Library
	if c.Library.RecordTerminator == "" {
		return fmt.Errorf("config: library.record_terminator is required")
	}
	if c.Library.NameTag == "" || c.Library.FormulaTag == "" || c.Library.CASTag == "" {
		return fmt.Errorf("config: library name/formula/cas tags must not be empty")
	}

	// Resolver
	u, err := url.Parse(c.Resolver.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: resolver.base_url %q must be an absolute http(s) URL", c.Resolver.BaseURL)
	}
	if c.Resolver.Timeout < 0 {
		return fmt.Errorf("config: resolver.timeout must be ≥ 0, got %s", c.Resolver.Timeout)
	}

	// Cache
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when cache is enabled")
	}
	if c.Cache.DB < 0 {
		return fmt.Errorf("config: cache.db must be ≥ 0, got %d", c.Cache.DB)
	}

	// Scoring
	if c.Scoring.FingerprintBits < 64 {
		return fmt.Errorf("config: scoring.fingerprint_bits must be ≥ 64, got %d", c.Scoring.FingerprintBits)
	}
	if c.Scoring.MinPath < 1 || c.Scoring.MaxPath < c.Scoring.MinPath {
		return fmt.Errorf("config: scoring path range [%d, %d] is invalid", c.Scoring.MinPath, c.Scoring.MaxPath)
	}
	if len([]rune(c.Scoring.Delimiter)) != 1 {
		return fmt.Errorf("config: scoring.delimiter must be a single character, got %q", c.Scoring.Delimiter)
	}

	// Metrics
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Textfile) == "" {
		return fmt.Errorf("config: metrics.textfile is required when metrics are enabled")
	}

	// Archive
	if c.Archive.Enabled {
		if c.Archive.Endpoint == "" {
			return fmt.Errorf("config: archive.endpoint is required when archive is enabled")
		}
		if c.Archive.Bucket == "" {
			return fmt.Errorf("config: archive.bucket is required when archive is enabled")
		}
	}

	return nil
}

//Personal.AI order the ending
