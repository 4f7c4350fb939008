// Package pipeline orchestrates gavtree's operations with caching.
//
// Both the CLI and the HTTP API go through a [Runner] so that they share
// cache keys, defaults and error semantics. The Runner wires the core
// packages (resolve, intel) to the registry and the vulnerability feed:
//
//	runner := pipeline.NewRunner(c, nil, logger,
//	    pipeline.WithRegistry(mavenClient),
//	    pipeline.WithFeed(osvClient))
//	res, err := runner.Resolve(ctx, pipeline.TreeOptions{Coordinate: "com.google.guava:guava:33.0.0-jre"})
//
// # Caching
//
// Resolved trees, version lists, artifact info and search pages are cached
// under [cache.Keyer] keys with the matching TTL class. Cache failures are
// logged and treated as misses. Trees whose root could not be fetched are
// never cached.
package pipeline

import (
	"github.com/matzehuels/gavtree/pkg/core/resolve"
	"github.com/matzehuels/gavtree/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxDepth is the maximum dependency traversal depth.
	DefaultMaxDepth = resolve.DefaultMaxDepth

	// DefaultMaxNodes is the maximum number of nodes per tree.
	DefaultMaxNodes = resolve.DefaultMaxNodes

	// MaxAllowedDepth caps caller-supplied depth limits.
	MaxAllowedDepth = 50

	// MaxAllowedNodes caps caller-supplied node limits.
	MaxAllowedNodes = 20000
)

// Tree kinds, used in cache keys and metrics.
const (
	KindCoordinate = "coordinate"
	KindManifest   = "manifest"
	KindModules    = "modules"
)

// TreeOptions selects what to resolve. Exactly one of Coordinate and
// Manifest must be set; Modules applies to manifests only.
type TreeOptions struct {
	Coordinate   string   // "group:artifact:version"
	Manifest     []byte   // POM text
	Modules      bool     // Aggregate declared modules
	Repositories []string // Custom repositories, after the default one
	MaxDepth     int      // Default: DefaultMaxDepth
	MaxNodes     int      // Default: DefaultMaxNodes
	Refresh      bool     // Bypass caches
}

// Kind returns the tree kind the options describe.
func (o TreeOptions) Kind() string {
	switch {
	case o.Manifest != nil && o.Modules:
		return KindModules
	case o.Manifest != nil:
		return KindManifest
	default:
		return KindCoordinate
	}
}

// ValidateAndSetDefaults checks the options and fills defaults. Input-size
// and repository checks run here, before any cache or network access.
func (o *TreeOptions) ValidateAndSetDefaults() error {
	hasCoord := o.Coordinate != ""
	hasManifest := o.Manifest != nil
	if hasCoord == hasManifest {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of coordinate or manifest is required")
	}
	if o.Modules && !hasManifest {
		return errors.New(errors.ErrCodeInvalidInput, "module aggregation requires a manifest")
	}
	if hasManifest {
		if err := errors.ValidateManifestSize(len(o.Manifest)); err != nil {
			return err
		}
	}
	if err := errors.ValidateRepositories(o.Repositories); err != nil {
		return err
	}

	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxDepth > MaxAllowedDepth {
		return errors.New(errors.ErrCodeInvalidInput, "max depth %d exceeds limit %d", o.MaxDepth, MaxAllowedDepth)
	}
	if o.MaxNodes > MaxAllowedNodes {
		return errors.New(errors.ErrCodeInvalidInput, "max nodes %d exceeds limit %d", o.MaxNodes, MaxAllowedNodes)
	}
	return nil
}

// TreeResult is the outcome of [Runner.Resolve]. Modules is set for
// module aggregation; Tree is always set (the merged tree for modules).
type TreeResult struct {
	Kind     string                     `json:"kind"`
	Subject  string                     `json:"subject"`
	Tree     *resolve.Node              `json:"tree"`
	Modules  *resolve.MultiModuleResult `json:"modules,omitempty"`
	CacheHit bool                       `json:"-"`
}
