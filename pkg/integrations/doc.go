// Package integrations provides HTTP clients for the upstream services gavtree
// talks to.
//
// Each upstream has its own subpackage:
//
//   - [maven]: Maven repositories (POMs, maven-metadata.xml) and the Central
//     search API. Implements the resolver's metadata source.
//   - [osv]: the OSV vulnerability database. Implements the intelligence
//     engine's vulnerability feed.
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing used by both: default headers,
// retry with backoff for transient failures (see [httputil.Retry]), response
// caching through [cache.Cache], and observability hooks. Failures are
// reported as [ErrNotFound] or [ErrNetwork], wrapped with context.
//
// [maven]: github.com/matzehuels/gavtree/pkg/integrations/maven
// [osv]: github.com/matzehuels/gavtree/pkg/integrations/osv
// [httputil.Retry]: github.com/matzehuels/gavtree/pkg/httputil.Retry
// [cache.Cache]: github.com/matzehuels/gavtree/pkg/cache.Cache
package integrations
