// Package resolve expands Maven dependency declarations into a
// conflict-annotated dependency tree.
//
// # Expansion
//
// [Resolver] walks the graph level by level. The metadata of every node on a
// level is fetched concurrently from a [Source], then the level is processed
// sequentially in tree order, each node's dependencies in declaration order.
// Mediation therefore never depends on which fetch completes first.
//
// # Mediation
//
// The first occurrence of a group:artifact:extension identity in that order
// is the shallowest one, and it wins (nearest-wins, declaration order breaking
// ties at equal depth). Later occurrences with a different version stay in
// the tree as [StatusConflict] leaves naming the winning version. Later
// occurrences with the same version are duplicates and are omitted, which
// also terminates cycles.
//
// # Statuses
//
// Node failures never abort a resolution. A node whose metadata cannot be
// fetched is [StatusMissing] with no children. Only a malformed root
// coordinate produces a [StatusError] placeholder tree. Structural input
// problems (bad repositories, bad manifests) are returned as errors before
// any network access.
//
// # Multi-module projects
//
// [Resolver.Aggregate] resolves a project's own dependencies and appends a
// [StatusLocal] placeholder for every declared module, since sibling
// manifests are not available from a single manifest.
package resolve
