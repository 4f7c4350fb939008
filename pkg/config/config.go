// Package config loads gavtree's configuration.
//
// Configuration comes from three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. an optional TOML file (default: $XDG_CONFIG_HOME/gavtree/config.toml)
//  3. GAVTREE_* environment variables
//
// CLI flags are applied by the caller on top of the loaded value.
//
// A complete file:
//
//	[registry]
//	default_repository = "https://repo1.maven.org/maven2"
//	search_url = "https://search.maven.org/solrsearch/select"
//	timeout = "15s"
//
//	[osv]
//	query_url = "https://api.osv.dev/v1/query"
//
//	[cache]
//	backend = "redis"            # none, memory, file, redis, mongo
//	redis_url = "redis://localhost:6379/0"
//	prefix = "gavtree:"
//
//	[resolve]
//	max_depth = 10
//	max_nodes = 5000
//	parallelism = 8
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/artifact"
	gaverrors "github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/integrations/maven"
	"github.com/matzehuels/gavtree/pkg/integrations/osv"
	"github.com/matzehuels/gavtree/pkg/pipeline"
)

const appName = "gavtree"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GAVTREE_"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the top-level configuration.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	OSV      OSVConfig      `toml:"osv"`
	Cache    CacheConfig    `toml:"cache"`
	Resolve  ResolveConfig  `toml:"resolve"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// RegistryConfig configures the Maven registry client.
type RegistryConfig struct {
	DefaultRepository string   `toml:"default_repository"`
	SearchURL         string   `toml:"search_url"`
	Timeout           Duration `toml:"timeout"`
}

// OSVConfig configures the vulnerability feed.
type OSVConfig struct {
	QueryURL string   `toml:"query_url"`
	Timeout  Duration `toml:"timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`         // file backend; empty means the user cache dir
	MaxEntries      int    `toml:"max_entries"` // memory backend; 0 means unbounded
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Prefix          string `toml:"prefix"` // keeps deployments sharing a backend apart
}

// ResolveConfig bounds tree resolution.
type ResolveConfig struct {
	MaxDepth        int      `toml:"max_depth"`
	MaxNodes        int      `toml:"max_nodes"`
	Parallelism     int      `toml:"parallelism"`
	ManagedPrefixes []string `toml:"managed_prefixes"`
}

// ServerConfig configures `gavtree serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from TOML strings like "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			DefaultRepository: artifact.DefaultRepositoryURL,
			SearchURL:         maven.DefaultSearchURL,
			Timeout:           Duration{15 * time.Second},
		},
		OSV: OSVConfig{
			QueryURL: osv.DefaultQueryURL,
			Timeout:  Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend:         BackendFile,
			MongoDatabase:   appName,
			MongoCollection: cache.DefaultMongoCollection,
		},
		Resolve: ResolveConfig{
			MaxDepth:    pipeline.DefaultMaxDepth,
			MaxNodes:    pipeline.DefaultMaxNodes,
			Parallelism: 8,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{120 * time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gavtree/config.toml, falling back to
// ~/.config/gavtree/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds a configuration from defaults, the TOML file at path and the
// environment. An empty path selects [DefaultPath]; a missing default file
// is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return nil, gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "config file %s not found", path)
		default:
			return nil, gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "parse config file %s", path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from GAVTREE_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "%s%s must be an integer", EnvPrefix, name)
		}
		*dst = n
		return nil
	}
	dur := func(name string, dst *Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		if err := dst.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "%s%s must be a duration", EnvPrefix, name)
		}
		return nil
	}

	str("REGISTRY_URL", &c.Registry.DefaultRepository)
	str("SEARCH_URL", &c.Registry.SearchURL)
	str("OSV_URL", &c.OSV.QueryURL)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("CACHE_PREFIX", &c.Cache.Prefix)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("MONGO_URI", &c.Cache.MongoURI)
	str("MONGO_DATABASE", &c.Cache.MongoDatabase)
	str("ADDR", &c.Server.Addr)
	str("LOG_LEVEL", &c.Log.Level)
	if v, ok := lookup(EnvPrefix + "MANAGED_PREFIXES"); ok {
		c.Resolve.ManagedPrefixes = splitList(v)
	}

	for _, f := range []func() error{
		func() error { return num("MAX_DEPTH", &c.Resolve.MaxDepth) },
		func() error { return num("MAX_NODES", &c.Resolve.MaxNodes) },
		func() error { return num("PARALLELISM", &c.Resolve.Parallelism) },
		func() error { return num("CACHE_MAX_ENTRIES", &c.Cache.MaxEntries) },
		func() error { return dur("REGISTRY_TIMEOUT", &c.Registry.Timeout) },
		func() error { return dur("OSV_TIMEOUT", &c.OSV.Timeout) },
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the configuration. Errors carry INVALID_CONFIG.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return gaverrors.New(gaverrors.ErrCodeInvalidConfig, format, args...)
	}

	if err := gaverrors.ValidateRepositoryURL(c.Registry.DefaultRepository); err != nil {
		return gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "registry.default_repository")
	}
	if c.Registry.SearchURL == "" {
		return invalid("registry.search_url is required")
	}
	if c.OSV.QueryURL == "" {
		return invalid("osv.query_url is required")
	}

	switch c.Cache.Backend {
	case BackendNone, BackendMemory, BackendFile:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return invalid("cache.redis_url is required for the redis backend")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return invalid("cache.mongo_uri is required for the mongo backend")
		}
	default:
		return invalid("cache.backend must be one of none, memory, file, redis, mongo (got %q)", c.Cache.Backend)
	}
	if c.Cache.MaxEntries < 0 {
		return invalid("cache.max_entries cannot be negative")
	}

	if c.Resolve.MaxDepth < 1 || c.Resolve.MaxDepth > pipeline.MaxAllowedDepth {
		return invalid("resolve.max_depth must be between 1 and %d", pipeline.MaxAllowedDepth)
	}
	if c.Resolve.MaxNodes < 1 || c.Resolve.MaxNodes > pipeline.MaxAllowedNodes {
		return invalid("resolve.max_nodes must be between 1 and %d", pipeline.MaxAllowedNodes)
	}
	if c.Resolve.Parallelism < 1 {
		return invalid("resolve.parallelism must be positive")
	}

	if _, err := c.Log.ParseLevel(); err != nil {
		return invalid("log.level: %v", err)
	}
	return nil
}

// ParseLevel returns the configured log level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown level %q", l.Level)
	}
	return lvl, nil
}
