// Package maven provides an HTTP client for Maven repositories and the Maven
// Central search API.
//
// # Metadata source
//
// [Client.Project] implements the resolver's metadata source. It looks a POM
// up across a repository chain (first hit wins), merges up to
// [DefaultMaxParents] parent POMs for properties and dependencyManagement,
// and builds the effective model with pom.Build. LATEST and RELEASE versions
// are resolved through maven-metadata.xml first.
//
//	client := maven.NewClient(c, maven.Config{})
//	m, err := client.Project(ctx, coord, repos, false)
//
// # Versions, search and info
//
//   - [Client.Versions]: version history from the Central "gav" index, with
//     publication timestamps; maven-metadata.xml is the fallback
//   - [Client.Search]: paged free-text search (size capped at [MaxSearchSize])
//   - [Client.Info]: latest and recommended versions, POM description,
//     licenses and build-tool snippets
//
// # Caching
//
// Raw POMs are cached for cache.TTLHTTP and maven-metadata.xml for
// cache.TTLVersions. Search and version listings are derived results; the
// pipeline caches those. Pass refresh=true to bypass the cache.
package maven
