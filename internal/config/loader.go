package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all sdfmine settings.
const envPrefix = "SDFMINE"

// DefaultConfigName is the file name searched for in the working directory and
// in ~/.sdfmine when no explicit path is given.
const DefaultConfigName = "sdfmine.yaml"

// newViper builds a pre-configured Viper instance: YAML file type, SDFMINE_ env
// prefix, automatic env binding, and a key replacer that maps "." → "_" so that
// nested keys like "resolver.base_url" resolve to "SDFMINE_RESOLVER_BASE_URL".
//
// Every known key is registered with its default so that AutomaticEnv also
// applies to keys absent from the config file during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v, NewDefaultConfig())
	return v
}

func registerDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("log.enable_caller", d.Log.EnableCaller)

	v.SetDefault("library.record_terminator", d.Library.RecordTerminator)
	v.SetDefault("library.name_tag", d.Library.NameTag)
	v.SetDefault("library.formula_tag", d.Library.FormulaTag)
	v.SetDefault("library.cas_tag", d.Library.CASTag)
	v.SetDefault("library.coordinates_start", d.Library.CoordinatesStart)
	v.SetDefault("library.coordinates_end", d.Library.CoordinatesEnd)

	v.SetDefault("resolver.base_url", d.Resolver.BaseURL)
	v.SetDefault("resolver.timeout", d.Resolver.Timeout)
	v.SetDefault("resolver.user_agent", d.Resolver.UserAgent)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.addr", d.Cache.Addr)
	v.SetDefault("cache.password", d.Cache.Password)
	v.SetDefault("cache.db", d.Cache.DB)
	v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.dial_timeout", d.Cache.DialTimeout)

	v.SetDefault("scoring.fingerprint_bits", d.Scoring.FingerprintBits)
	v.SetDefault("scoring.min_path", d.Scoring.MinPath)
	v.SetDefault("scoring.max_path", d.Scoring.MaxPath)
	v.SetDefault("scoring.delimiter", d.Scoring.Delimiter)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)

	v.SetDefault("archive.enabled", d.Archive.Enabled)
	v.SetDefault("archive.endpoint", d.Archive.Endpoint)
	v.SetDefault("archive.access_key", d.Archive.AccessKey)
	v.SetDefault("archive.secret_key", d.Archive.SecretKey)
	v.SetDefault("archive.bucket", d.Archive.Bucket)
	v.SetDefault("archive.region", d.Archive.Region)
	v.SetDefault("archive.use_ssl", d.Archive.UseSSL)
	v.SetDefault("archive.prefix", d.Archive.Prefix)
}

// Load reads the YAML file at configPath, merges any SDFMINE_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
//
// When configPath is empty the search order is ./sdfmine.yaml followed by
// ~/.sdfmine/config.yaml.  If neither exists the configuration is built from
// defaults and the environment alone.
func Load(configPath string) (*Config, error) {
	v := newViper()

	path := configPath
	if path == "" {
		path = discover()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}

	return unmarshalAndFinalize(v)
}

// discover returns the first existing default config path, or "".
func discover() string {
	candidates := []string{DefaultConfigName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".sdfmine", "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

//Personal.AI order the ending
