package cache

import (
	"fmt"
	"slices"
	"strings"
)

// Keyer builds cache keys. All layers share one Keyer so that a tree cached
// by the API is found by the CLI and vice versa.
type Keyer interface {
	// HTTPKey keys a raw registry response.
	HTTPKey(namespace, key string) string
	// TreeKey keys a resolved tree. subject is a coordinate or a manifest
	// hash; repository order does not matter.
	TreeKey(subject string, repos []string, opts TreeKeyOpts) string
	// VersionsKey keys the version list of group:artifact.
	VersionsKey(group, artifact string) string
	// InfoKey keys artifact info for group:artifact (and version, if set).
	InfoKey(group, artifact, version string) string
	// SearchKey keys one page of search results.
	SearchKey(query string, page, size int) string
}

// TreeKeyOpts holds the resolution options that change a tree's shape.
type TreeKeyOpts struct {
	Kind     string `json:"kind"` // "coordinate", "manifest" or "modules"
	MaxDepth int    `json:"max_depth"`
	MaxNodes int    `json:"max_nodes"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) TreeKey(subject string, repos []string, opts TreeKeyOpts) string {
	sorted := slices.Clone(repos)
	for i, r := range sorted {
		sorted[i] = strings.TrimSuffix(strings.TrimSpace(r), "/")
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return hashKey("tree", subject, sorted, opts)
}

func (DefaultKeyer) VersionsKey(group, artifact string) string {
	return fmt.Sprintf("versions:%s:%s", group, artifact)
}

func (DefaultKeyer) InfoKey(group, artifact, version string) string {
	if version == "" {
		return fmt.Sprintf("info:%s:%s", group, artifact)
	}
	return fmt.Sprintf("info:%s:%s:%s", group, artifact, version)
}

func (DefaultKeyer) SearchKey(query string, page, size int) string {
	return hashKey("search", strings.ToLower(strings.TrimSpace(query)), page, size)
}
