// Package artifact defines the Maven coordinate model shared by the manifest
// builder, the dependency resolver and the version intelligence engine.
//
// A [Coordinate] names one published artifact. Its [Coordinate.Key] omits the
// version and is the identity used for nearest-wins mediation. A [Dependency]
// is a coordinate as declared inside a project model, with scope, optional
// flag and exclusions.
//
// The package also hosts small helpers that several layers need: pre-release
// detection ([IsPreRelease]), repository chain construction
// ([RepositoryChain]) and copy-paste dependency snippets ([Snippets]).
package artifact
