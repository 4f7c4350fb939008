package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/core/pom"
	"github.com/matzehuels/gavtree/pkg/core/resolve"
	"github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/integrations"
	"github.com/matzehuels/gavtree/pkg/integrations/maven"
	"github.com/matzehuels/gavtree/pkg/observability"
)

// Registry is the metadata side of gavtree: everything the Runner asks a
// Maven registry. [maven.Client] implements it.
type Registry interface {
	resolve.Source
	Versions(ctx context.Context, group, artifactID string, repos []artifact.Repository, refresh bool) ([]artifact.VersionRecord, error)
	Info(ctx context.Context, group, artifactID, version string, repos []artifact.Repository, refresh bool) (*maven.ArtifactInfo, error)
	Search(ctx context.Context, query string, page, size int) (*maven.SearchResult, error)
}

// Runner encapsulates gavtree operations with caching.
//
// The Runner is stateless except for the cache and its collaborators.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks

	registry    Registry
	feed        intel.Feed
	engine      *intel.Engine
	defaultRepo string
	parallelism int
	pomOpts     pom.Options
	now         func() time.Time
}

// Option configures a [Runner].
type Option func(*Runner)

// WithRegistry sets the metadata registry.
func WithRegistry(reg Registry) Option { return func(r *Runner) { r.registry = reg } }

// WithFeed sets the vulnerability feed. Without one every version is clean.
func WithFeed(f intel.Feed) Option { return func(r *Runner) { r.feed = f } }

// WithHooks installs observability hooks.
func WithHooks(h observability.Hooks) Option { return func(r *Runner) { r.Hooks = h } }

// WithDefaultRepository replaces Maven Central as first repository.
func WithDefaultRepository(url string) Option { return func(r *Runner) { r.defaultRepo = url } }

// WithParallelism bounds concurrent registry and feed requests per call.
func WithParallelism(n int) Option { return func(r *Runner) { r.parallelism = n } }

// WithManagedPrefixes overrides pom.DefaultManagedPrefixes.
func WithManagedPrefixes(prefixes []string) Option {
	return func(r *Runner) { r.pomOpts.ManagedPrefixes = prefixes }
}

// WithClock sets the clock used for stability grading.
func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...Option) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		defaultRepo: artifact.DefaultRepositoryURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Hooks = r.Hooks.WithDefaults()
	r.engine = intel.NewEngine(r.feed, intel.Options{
		Logger:      logger,
		Now:         r.now,
		Parallelism: r.parallelism,
	})
	return r
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Trees
// =============================================================================

// Resolve builds the dependency tree described by opts, from cache when
// possible. Input errors (INVALID_INPUT, INVALID_MODEL, INVALID_REPOSITORY,
// OVERSIZE_INPUT) are returned before any network access.
func (r *Runner) Resolve(ctx context.Context, opts TreeOptions) (*TreeResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if r.registry == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no registry configured")
	}

	kind := opts.Kind()
	subject := strings.TrimSpace(opts.Coordinate)
	if kind != KindCoordinate {
		subject = cache.Hash(opts.Manifest)
	}
	key := r.Keyer.TreeKey(subject, opts.Repositories, cache.TreeKeyOpts{
		Kind:     kind,
		MaxDepth: opts.MaxDepth,
		MaxNodes: opts.MaxNodes,
	})

	if !opts.Refresh {
		var cached TreeResult
		if r.cacheGet(ctx, "tree", key, &cached) && cached.Tree != nil {
			cached.CacheHit = true
			return &cached, nil
		}
	}

	r.Hooks.Resolve.OnResolveStart(ctx, kind, subject)
	start := time.Now()
	res, err := r.resolveTree(ctx, opts, kind, subject)
	nodes := 0
	if res != nil {
		nodes = res.Tree.Size()
	}
	r.Hooks.Resolve.OnResolveComplete(ctx, kind, subject, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("resolved dependency tree",
		"kind", kind,
		"root", res.Tree.Coordinate.String(),
		"nodes", nodes,
		"duration", time.Since(start))

	if cacheable(res.Tree) {
		r.cacheSet(ctx, "tree", key, res, cache.TTLTree)
	}
	return res, nil
}

func (r *Runner) resolveTree(ctx context.Context, opts TreeOptions, kind, subject string) (*TreeResult, error) {
	resolver := resolve.New(r.registry, resolve.Options{
		DefaultRepository: r.defaultRepo,
		MaxDepth:          opts.MaxDepth,
		MaxNodes:          opts.MaxNodes,
		Parallelism:       r.parallelism,
		Refresh:           opts.Refresh,
		Logger:            r.Logger,
	})

	res := &TreeResult{Kind: kind, Subject: subject}
	switch kind {
	case KindCoordinate:
		tree, err := resolver.ResolveCoordinate(ctx, opts.Coordinate, opts.Repositories)
		if err != nil {
			return nil, err
		}
		res.Tree = tree
	case KindManifest:
		tree, err := resolver.ResolveManifest(ctx, opts.Manifest, r.pomOpts, opts.Repositories)
		if err != nil {
			return nil, err
		}
		res.Tree = tree
	case KindModules:
		m, err := pom.Parse(opts.Manifest, r.pomOpts)
		if err != nil {
			return nil, err
		}
		agg, err := resolver.Aggregate(ctx, m, opts.Repositories)
		if err != nil {
			return nil, err
		}
		res.Tree = agg.Tree
		res.Modules = agg
	}
	return res, nil
}

// cacheable reports whether a tree may be cached. A root that could not be
// fetched or parsed may succeed on the next attempt.
func cacheable(tree *resolve.Node) bool {
	return tree != nil && tree.Status != resolve.StatusMissing && tree.Status != resolve.StatusError
}

// =============================================================================
// Registry lookups
// =============================================================================

// Versions lists the versions of group:artifactID, newest first.
func (r *Runner) Versions(ctx context.Context, group, artifactID string, refresh bool) ([]artifact.VersionRecord, error) {
	if err := validateName(group, artifactID); err != nil {
		return nil, err
	}
	key := r.Keyer.VersionsKey(group, artifactID)
	var records []artifact.VersionRecord
	if !refresh && r.cacheGet(ctx, "versions", key, &records) {
		return records, nil
	}
	records, err := r.registryOrErr().Versions(ctx, group, artifactID, r.chain(), refresh)
	if err != nil {
		return nil, upstream(err, "versions of %s:%s", group, artifactID)
	}
	if len(records) > 0 {
		r.cacheSet(ctx, "versions", key, records, cache.TTLVersions)
	}
	return records, nil
}

// Info returns artifact info for group:artifactID at version (latest when
// empty).
func (r *Runner) Info(ctx context.Context, group, artifactID, version string, refresh bool) (*maven.ArtifactInfo, error) {
	if err := validateName(group, artifactID); err != nil {
		return nil, err
	}
	if version != "" {
		if err := errors.ValidateCoordinatePart("version", version); err != nil {
			return nil, err
		}
	}
	key := r.Keyer.InfoKey(group, artifactID, version)
	var info maven.ArtifactInfo
	if !refresh && r.cacheGet(ctx, "info", key, &info) {
		return &info, nil
	}
	got, err := r.registryOrErr().Info(ctx, group, artifactID, version, r.chain(), refresh)
	if err != nil {
		return nil, upstream(err, "info for %s:%s", group, artifactID)
	}
	r.cacheSet(ctx, "info", key, got, cache.TTLVersions)
	return got, nil
}

// Search runs a free-text search. size is clamped to [1, maven.MaxSearchSize].
func (r *Runner) Search(ctx context.Context, query string, page, size int, refresh bool) (*maven.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search query cannot be empty")
	}
	page = max(page, 0)
	if size <= 0 {
		size = maven.DefaultSearchSize
	}
	size = min(size, maven.MaxSearchSize)

	key := r.Keyer.SearchKey(query, page, size)
	var res maven.SearchResult
	if !refresh && r.cacheGet(ctx, "search", key, &res) {
		return &res, nil
	}
	got, err := r.registryOrErr().Search(ctx, query, page, size)
	if err != nil {
		return nil, upstream(err, "search %q", query)
	}
	r.cacheSet(ctx, "search", key, got, cache.TTLSearch)
	return got, nil
}

// =============================================================================
// Security
// =============================================================================

// VersionReport couples the advisory report of one version with its
// assessment.
type VersionReport struct {
	Report     *intel.Report    `json:"report"`
	Assessment intel.Assessment `json:"assessment"`
}

// Vulnerabilities returns the advisory report of a "group:artifact:version"
// coordinate. Feed failures degrade to a clean report.
func (r *Runner) Vulnerabilities(ctx context.Context, coordinate string) (*intel.Report, error) {
	c, err := parseGAV(coordinate)
	if err != nil {
		return nil, err
	}
	return r.engine.Vulnerabilities(ctx, c), nil
}

// Assess returns the report and assessment of a coordinate. Release status
// and publication time come from the version list when available; otherwise
// the version is classified by name and its age is unknown.
func (r *Runner) Assess(ctx context.Context, coordinate string) (*VersionReport, error) {
	c, err := parseGAV(coordinate)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rec := artifact.NewVersionRecord(c.Version, time.Time{}, "")
	if records, err := r.Versions(ctx, c.Group, c.Artifact, false); err != nil {
		r.Logger.Warn("version list unavailable", "artifact", c.Name(), "err", err)
	} else {
		for _, v := range records {
			if v.Version == c.Version {
				rec = v
				break
			}
		}
	}
	report := r.engine.Vulnerabilities(ctx, c)
	a := r.engine.AssessReport(report, rec.IsRelease, rec.Timestamp)
	r.Hooks.Resolve.OnAssess(ctx, c.String(), 1, time.Since(start))
	return &VersionReport{Report: report, Assessment: a}, nil
}

// Badge returns the vulnerability-only verdict of a coordinate.
func (r *Runner) Badge(ctx context.Context, coordinate string) (intel.Badge, error) {
	c, err := parseGAV(coordinate)
	if err != nil {
		return intel.Badge{}, err
	}
	return r.engine.Badge(ctx, c), nil
}

// Intelligence assesses the newest limit versions of group:artifactID and
// recommends one.
func (r *Runner) Intelligence(ctx context.Context, group, artifactID string, limit int, refresh bool) (*intel.Intelligence, error) {
	records, err := r.Versions(ctx, group, artifactID, refresh)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound(nil, "no versions found for %s:%s", group, artifactID)
	}
	start := time.Now()
	res, err := r.engine.Intelligence(ctx, group, artifactID, records, limit)
	if err != nil {
		return nil, err
	}
	r.Hooks.Resolve.OnAssess(ctx, group+":"+artifactID, len(res.Versions), time.Since(start))
	return res, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (r *Runner) registryOrErr() Registry {
	if r.registry == nil {
		return missingRegistry{}
	}
	return r.registry
}

func (r *Runner) chain() []artifact.Repository {
	repos, _ := artifact.RepositoryChain(r.defaultRepo, nil)
	return repos
}

// cacheGet loads key into v. Backend errors count as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string, v any) bool {
	ok, err := cache.GetJSON(ctx, r.Cache, key, v)
	switch {
	case err != nil:
		r.Hooks.Cache.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return false
	case ok:
		r.Hooks.Cache.OnCacheHit(ctx, keyType)
		r.Logger.Debug("cache hit", "type", keyType)
		return true
	default:
		r.Hooks.Cache.OnCacheMiss(ctx, keyType)
		return false
	}
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Hooks.Cache.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	r.Hooks.Cache.OnCacheSet(ctx, keyType, len(data))
}

func validateName(group, artifactID string) error {
	if err := errors.ValidateCoordinatePart("groupId", group); err != nil {
		return err
	}
	return errors.ValidateCoordinatePart("artifactId", artifactID)
}

func parseGAV(coordinate string) (artifact.Coordinate, error) {
	return artifact.ParseCoordinate(coordinate)
}

// upstream maps registry failures onto error codes.
func upstream(err error, format string, args ...any) error {
	switch {
	case errors.GetCode(err) != "":
		return err
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.NotFound(err, format, args...)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, format, args...)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, format, args...)
	}
}

type missingRegistry struct{}

var errNoRegistry = errors.New(errors.ErrCodeInternal, "no registry configured")

func (missingRegistry) Project(context.Context, artifact.Coordinate, []artifact.Repository, bool) (*pom.Model, error) {
	return nil, errNoRegistry
}

func (missingRegistry) Versions(context.Context, string, string, []artifact.Repository, bool) ([]artifact.VersionRecord, error) {
	return nil, errNoRegistry
}

func (missingRegistry) Info(context.Context, string, string, string, []artifact.Repository, bool) (*maven.ArtifactInfo, error) {
	return nil, errNoRegistry
}

func (missingRegistry) Search(context.Context, string, int, int) (*maven.SearchResult, error) {
	return nil, errNoRegistry
}

var _ Registry = (*maven.Client)(nil)
