package maven

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/pom"
	"github.com/matzehuels/gavtree/pkg/integrations"
	"github.com/matzehuels/gavtree/pkg/observability"
)

// DefaultSearchURL is the Maven Central Solr search endpoint.
const DefaultSearchURL = "https://search.maven.org/solrsearch/select"

// DefaultMaxParents bounds how many <parent> levels are merged into an
// effective model.
const DefaultMaxParents = 8

// Config configures a [Client]. Zero values select defaults.
type Config struct {
	DefaultRepository string        // First repository of every chain (default: Maven Central)
	SearchURL         string        // Solr search endpoint (default: DefaultSearchURL)
	Timeout           time.Duration // Per-request timeout (default: 10s)
	ManagedPrefixes   []string      // Passed to pom.Build (nil: pom.DefaultManagedPrefixes)
	MaxParents        int           // Parent chain bound (default: DefaultMaxParents)
	Keyer             cache.Keyer   // Cache key builder (default: cache.DefaultKeyer)
	Hooks             observability.Hooks
	Logger            *log.Logger
}

// Client provides access to Maven repositories and the Central search API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	defaultRepo string
	searchURL   string
	pomOpts     pom.Options
	maxParents  int
}

// NewClient creates a Maven client caching responses in c. A nil c disables
// caching.
func NewClient(c cache.Cache, cfg Config) *Client {
	hc := integrations.NewClient(c, "maven:", cache.TTLHTTP, integrations.DefaultHeaders())
	hc.SetHTTPClient(integrations.NewHTTPClientWithTimeout(cfg.Timeout))
	hc.SetKeyer(cfg.Keyer)
	hc.SetHooks(cfg.Hooks)
	hc.SetLogger(cfg.Logger)

	client := &Client{
		Client:      hc,
		defaultRepo: cfg.DefaultRepository,
		searchURL:   cfg.SearchURL,
		pomOpts:     pom.Options{ManagedPrefixes: cfg.ManagedPrefixes},
		maxParents:  cfg.MaxParents,
	}
	if client.defaultRepo == "" {
		client.defaultRepo = artifact.DefaultRepositoryURL
	}
	if client.searchURL == "" {
		client.searchURL = DefaultSearchURL
	}
	if client.maxParents <= 0 {
		client.maxParents = DefaultMaxParents
	}
	return client
}

// chain returns repos, or the default repository when repos is empty.
func (c *Client) chain(repos []artifact.Repository) []artifact.Repository {
	if len(repos) > 0 {
		return repos
	}
	chain, _ := artifact.RepositoryChain(c.defaultRepo, nil)
	return chain
}

// fetchFirst GETs path from each repository in order and returns the first
// hit. It reports ErrNotFound only when every repository answered 404;
// otherwise the last transport error is returned.
func (c *Client) fetchFirst(ctx context.Context, repos []artifact.Repository, path string, ttl time.Duration, refresh bool) ([]byte, artifact.Repository, error) {
	var lastErr error
	for _, repo := range c.chain(repos) {
		url := repo.URL + path
		var body []byte
		err := c.CachedFor(ctx, url, ttl, refresh, &body, func() error {
			data, err := c.GetBytes(ctx, url)
			if err != nil {
				return err
			}
			body = data
			return nil
		})
		if err == nil {
			return body, repo, nil
		}
		if ctx.Err() != nil {
			return nil, artifact.Repository{}, ctx.Err()
		}
		if !errors.Is(err, integrations.ErrNotFound) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, artifact.Repository{}, lastErr
	}
	return nil, artifact.Repository{}, fmt.Errorf("%w: %s", integrations.ErrNotFound, path)
}
