// Package pom builds project models from Maven manifests.
//
// [Parse] turns manifest text into an immutable [Model]: the project
// coordinate (falling back to the parent's groupId and version), the property
// set, the declared dependencies with defaults applied, and the module list.
//
// # Interpolation
//
// [Interpolate] replaces ${key} placeholders from the model's property set in
// a single left-to-right pass. Substituted text is never re-scanned, and
// placeholders with no matching property stay verbatim. The property set is
// the manifest's explicit properties plus project.groupId, project.artifactId,
// project.version and, when absent, java.version=17. No other built-in
// properties are known.
//
// # Versionless dependencies
//
// A dependency with no version after interpolation takes, in order: the
// version from the model's dependencyManagement, the parent's version when
// its group starts with a managed prefix (see [Options]), or the floating
// sentinel LATEST.
//
// # Effective models
//
// Transitive metadata needs inherited properties and dependencyManagement.
// [Decode] exposes the raw [Project] so callers that can fetch parents merge
// them with [Project.Inherit] before calling [Build].
package pom
