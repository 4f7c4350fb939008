package config

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	gaverrors "github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/integrations/maven"
	"github.com/matzehuels/gavtree/pkg/integrations/osv"
	"github.com/matzehuels/gavtree/pkg/observability"
	"github.com/matzehuels/gavtree/pkg/pipeline"
)

// OpenCache opens the configured backend and the keyer to use with it.
// Redis applies the prefix itself; other backends get a scoped keyer.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if c.Prefix != "" && c.Backend != BackendRedis {
		keyer = cache.NewScopedKeyer(nil, c.Prefix)
	}

	var (
		backend cache.Cache
		err     error
	)
	switch c.Backend {
	case BackendNone:
		backend = cache.NewNullCache()
	case BackendMemory:
		backend = cache.NewMemoryCache(c.MaxEntries)
	case BackendFile, "":
		backend, err = cache.NewFileCache(c.Dir)
	case BackendRedis:
		backend, err = cache.NewRedisCache(ctx, c.RedisURL, c.Prefix)
	case BackendMongo:
		backend, err = cache.NewMongoCache(ctx, c.MongoURI, c.MongoDatabase, c.MongoCollection)
	default:
		err = gaverrors.New(gaverrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Backend)
	}
	if err != nil {
		return nil, nil, gaverrors.Wrap(gaverrors.ErrCodeInvalidConfig, err, "open %s cache", c.Backend)
	}
	return backend, keyer, nil
}

// NewRunner wires a pipeline runner from the configuration: the cache
// backend, a Maven registry client and an OSV feed client sharing it.
// A nil logger discards output.
func (c *Config) NewRunner(ctx context.Context, logger *log.Logger, hooks observability.Hooks) (*pipeline.Runner, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	backend, keyer, err := c.Cache.OpenCache(ctx)
	if err != nil {
		return nil, err
	}

	registry := maven.NewClient(backend, maven.Config{
		DefaultRepository: c.Registry.DefaultRepository,
		SearchURL:         c.Registry.SearchURL,
		Timeout:           c.Registry.Timeout.Duration,
		ManagedPrefixes:   c.Resolve.ManagedPrefixes,
		Keyer:             keyer,
		Hooks:             hooks,
		Logger:            logger,
	})
	feed := osv.NewClient(backend, osv.Config{
		QueryURL: c.OSV.QueryURL,
		Timeout:  c.OSV.Timeout.Duration,
		Keyer:    keyer,
		Hooks:    hooks,
		Logger:   logger,
	})

	opts := []pipeline.Option{
		pipeline.WithRegistry(registry),
		pipeline.WithFeed(feed),
		pipeline.WithHooks(hooks),
		pipeline.WithDefaultRepository(c.Registry.DefaultRepository),
		pipeline.WithParallelism(c.Resolve.Parallelism),
	}
	if c.Resolve.ManagedPrefixes != nil {
		opts = append(opts, pipeline.WithManagedPrefixes(c.Resolve.ManagedPrefixes))
	}
	return pipeline.NewRunner(backend, keyer, logger, opts...), nil
}
