package resolve

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/pom"
	"github.com/matzehuels/gavtree/pkg/errors"
)

const (
	DefaultMaxDepth    = 10   // Default maximum tree depth
	DefaultMaxNodes    = 5000 // Default maximum nodes per tree
	DefaultParallelism = 8    // Default concurrent metadata fetches per level
)

// Source supplies published project metadata. It is the only blocking
// dependency of a [Resolver].
type Source interface {
	// Project returns the effective model of c, looked up across repos in
	// order. A floating version (LATEST, RELEASE) is resolved first and the
	// returned model carries the concrete version. Any error marks the node
	// missing. If refresh is true, cached data is bypassed.
	//
	// Project must be safe for concurrent use.
	Project(ctx context.Context, c artifact.Coordinate, repos []artifact.Repository, refresh bool) (*pom.Model, error)
}

// Options configures a [Resolver].
type Options struct {
	DefaultRepository string      // First repository of every chain (default: Maven Central)
	MaxDepth          int         // Deepest expanded level (default: 10)
	MaxNodes          int         // Maximum nodes per tree (default: 5000)
	Parallelism       int         // Concurrent fetches per level (default: 8)
	Refresh           bool        // Bypass cached metadata
	Logger            *log.Logger // Diagnostics (default: discard)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.DefaultRepository == "" {
		opts.DefaultRepository = artifact.DefaultRepositoryURL
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Resolver builds dependency trees. It holds no per-call state and is safe
// for concurrent use when its Source is.
type Resolver struct {
	source Source
	opts   Options
}

// New creates a Resolver backed by src.
func New(src Source, opts Options) *Resolver {
	return &Resolver{source: src, opts: opts.WithDefaults()}
}

// ResolveCoordinate resolves "group:artifact:version" and everything it pulls
// in. Invalid custom repositories fail before any network access. An
// unparseable coordinate yields a single [StatusError] node and a nil error.
func (r *Resolver) ResolveCoordinate(ctx context.Context, coordinate string, customRepos []string) (*Node, error) {
	repos, err := artifact.RepositoryChain(r.opts.DefaultRepository, customRepos)
	if err != nil {
		return nil, err
	}
	c, err := artifact.ParseCoordinate(coordinate)
	if err != nil {
		return errorNode(coordinate, err), nil
	}
	root := artifact.Dependency{Coordinate: c, Scope: artifact.ScopeCompile}
	return r.run(ctx, root, nil, repos)
}

// ResolveDependencies resolves declared dependencies under a project root.
// The root itself is not fetched. Declarations keep every scope; their own
// dependencies follow transitive selection rules.
func (r *Resolver) ResolveDependencies(ctx context.Context, root artifact.Coordinate, deps []artifact.Dependency, customRepos []string) (*Node, error) {
	repos, err := artifact.RepositoryChain(r.opts.DefaultRepository, customRepos)
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []artifact.Dependency{}
	}
	return r.run(ctx, artifact.Dependency{Coordinate: root, Scope: artifact.ScopeCompile}, deps, repos)
}

// ResolveManifest parses a manifest and resolves its declared dependencies.
// Manifest errors are returned as INVALID_MODEL or OVERSIZE_INPUT.
func (r *Resolver) ResolveManifest(ctx context.Context, data []byte, opts pom.Options, customRepos []string) (*Node, error) {
	if _, err := artifact.RepositoryChain(r.opts.DefaultRepository, customRepos); err != nil {
		return nil, err
	}
	m, err := pom.Parse(data, opts)
	if err != nil {
		return nil, err
	}
	return r.ResolveDependencies(ctx, m.Coordinate, m.Dependencies, customRepos)
}

// entry is an arena slot. Children are arena indices.
type entry struct {
	dep        artifact.Dependency
	depth      int
	status     Status
	message    string
	floating   bool
	concrete   string // version a floating node was fetched at
	winner     int    // arena index of the winning occurrence, for conflicts
	exclusions []artifact.Exclusion
	children   []int
}

type claim struct {
	version string
	node    int
}

// run expands the tree level by level. When direct is non-nil the root is a
// project whose declarations are given; otherwise the root is fetched.
func (r *Resolver) run(ctx context.Context, root artifact.Dependency, direct []artifact.Dependency, repos []artifact.Repository) (*Node, error) {
	logger := r.opts.Logger
	arena := []entry{{dep: root, depth: 0, status: StatusResolved}}
	claimed := map[string]claim{root.Key(): {version: root.Version, node: 0}}
	frontier := []int{0}
	truncated := false

	for len(frontier) > 0 {
		decls, err := r.fetchLevel(ctx, arena, frontier, direct, repos)
		if err != nil {
			return nil, err
		}

		var next []int
		for i, idx := range frontier {
			if decls[i] == nil {
				continue
			}
			parent := arena[idx]
			if truncated {
				if len(decls[i]) > 0 {
					arena[idx].message = joinMessage(parent.message, fmt.Sprintf("dependencies not expanded: node limit %d reached", r.opts.MaxNodes))
				}
				continue
			}
			for _, d := range decls[i] {
				if !parent.selects(d, idx == 0 && direct != nil) {
					continue
				}
				child := r.childOf(parent, d, idx == 0 && direct != nil)

				if prev, ok := claimed[child.dep.Key()]; ok {
					if prev.version == child.dep.Version {
						continue
					}
					child.status = StatusConflict
					child.winner = prev.node
					child.message = "Conflict with version " + prev.version
				} else {
					child.status = StatusResolved
					if child.dep.Scope.NonRuntime() && child.dep.Optional {
						child.status = StatusOptional
					}
				}

				if len(arena)-1 >= r.opts.MaxNodes {
					truncated = true
					arena[idx].message = joinMessage(arena[idx].message, fmt.Sprintf("children truncated: node limit %d reached", r.opts.MaxNodes))
					break
				}

				ci := len(arena)
				arena = append(arena, child)
				arena[idx].children = append(arena[idx].children, ci)
				if child.status == StatusConflict {
					continue
				}
				claimed[child.dep.Key()] = claim{version: child.dep.Version, node: ci}

				if child.depth >= r.opts.MaxDepth {
					arena[ci].message = joinMessage(arena[ci].message, fmt.Sprintf("dependencies not expanded: depth limit %d reached", r.opts.MaxDepth))
					continue
				}
				next = append(next, ci)
			}
		}
		if truncated {
			for _, ci := range next {
				arena[ci].message = joinMessage(arena[ci].message, fmt.Sprintf("dependencies not expanded: node limit %d reached", r.opts.MaxNodes))
			}
			break
		}
		frontier = next
	}

	// Floating winners are fetched after their conflicts are recorded.
	for i := range arena {
		e := &arena[i]
		if e.status != StatusConflict {
			continue
		}
		if w := arena[e.winner]; w.concrete != "" {
			e.message = fmt.Sprintf("Conflict with version %s (resolved to %s)", w.dep.Version, w.concrete)
		}
	}

	logger.Debug("resolved tree", "root", root.Coordinate.String(), "nodes", len(arena))
	return build(arena, 0), nil
}

// fetchLevel fetches metadata for every frontier node concurrently. The
// result at position i holds the declarations of frontier[i], or nil when the
// node has been marked missing.
func (r *Resolver) fetchLevel(ctx context.Context, arena []entry, frontier []int, direct []artifact.Dependency, repos []artifact.Repository) ([][]artifact.Dependency, error) {
	decls := make([][]artifact.Dependency, len(frontier))
	models := make([]*pom.Model, len(frontier))
	errs := make([]error, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i, idx := range frontier {
		if idx == 0 && direct != nil {
			decls[i] = direct
			continue
		}
		c := arena[idx].dep.Coordinate
		g.Go(func() error {
			models[i], errs[i] = r.source.Project(gctx, c, repos, r.opts.Refresh)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, idx := range frontier {
		if idx == 0 && direct != nil {
			continue
		}
		e := &arena[idx]
		if errs[i] != nil {
			r.opts.Logger.Warn("metadata unavailable", "artifact", e.dep.Coordinate.String(), "error", errs[i])
			e.status = StatusMissing
			e.message = "metadata unavailable: " + errs[i].Error()
			continue
		}
		m := models[i]
		if e.dep.Floating() {
			e.floating = true
			e.concrete = m.Coordinate.Version
			e.message = joinMessage(e.message, fmt.Sprintf("floating version %s resolved to %s", e.dep.Version, m.Coordinate.Version))
		}
		decls[i] = m.Dependencies
		if decls[i] == nil {
			decls[i] = []artifact.Dependency{}
		}
	}
	return decls, nil
}

// selects reports whether declaration d of e is followed. Direct declarations
// of a project keep every scope; transitive ones drop test, provided and
// optional entries, and anything excluded along the path.
func (e entry) selects(d artifact.Dependency, direct bool) bool {
	for _, ex := range e.exclusions {
		if ex.Matches(d.Group, d.Artifact) {
			return false
		}
	}
	if direct {
		return true
	}
	if d.Optional || d.Scope.NonRuntime() || d.Scope == artifact.ScopeSystem {
		return false
	}
	_, ok := e.dep.Scope.Derive(d.Scope)
	return ok
}

func (r *Resolver) childOf(parent entry, d artifact.Dependency, direct bool) entry {
	if d.Extension == "" {
		d.Extension = d.Ext()
	}
	if !direct {
		d.Scope, _ = parent.dep.Scope.Derive(d.Scope)
	}
	excl := parent.exclusions
	if len(d.Exclusions) > 0 {
		excl = append(append([]artifact.Exclusion(nil), parent.exclusions...), d.Exclusions...)
	}
	return entry{dep: d, depth: parent.depth + 1, exclusions: excl}
}

func build(arena []entry, idx int) *Node {
	e := arena[idx]
	n := &Node{
		Coordinate: e.dep.Coordinate,
		Scope:      e.dep.Scope,
		Status:     e.status,
		Message:    e.message,
		Floating:   e.floating,
		Children:   make([]*Node, 0, len(e.children)),
	}
	n.Extension = e.dep.Ext()
	for _, ci := range e.children {
		n.Children = append(n.Children, build(arena, ci))
	}
	return n
}

func errorNode(raw string, err error) *Node {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	parts = append(parts, "", "", "")
	return &Node{
		Coordinate: artifact.Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2], Extension: artifact.DefaultExtension},
		Scope:      artifact.ScopeCompile,
		Status:     StatusError,
		Message:    errors.UserMessage(err),
		Children:   []*Node{},
	}
}

func joinMessage(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
