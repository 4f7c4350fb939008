// Package pkg provides the core libraries for gavtree, a Maven dependency
// tree resolver with vulnerability and version intelligence.
//
// # Overview
//
// gavtree turns a Maven coordinate (group:artifact:version) or a pom.xml into
// the transitive tree of dependencies Maven would see, marking conflicts,
// optional and missing artifacts in place, and assesses versions against the
// OSV advisory database. The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (coordinates, POM models, resolution, intelligence)
//  2. [integrations] - External API clients (Maven repositories, OSV)
//  3. [cache] - Cache backends and key derivation
//  4. [pipeline] - Orchestration used by both CLI and API
//  5. [render] and [io] - Output formats and tree serialization
//
// # Architecture
//
// The typical data flow:
//
//	Coordinate / pom.xml
//	         ↓
//	    [core/pom] package (parse, interpolate, managed versions)
//	         ↓
//	    [core/resolve] package (breadth-first, nearest wins)
//	         ↓
//	    [render] package (text, DOT, SVG) or [io] (JSON, YAML)
//
// Version intelligence runs alongside:
//
//	versions from maven-metadata.xml → [core/intel] (OSV report, grade, safety)
//
// # Quick Start
//
// Resolve a coordinate and print the tree:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/gavtree/pkg/config"
//	    "github.com/matzehuels/gavtree/pkg/observability"
//	    "github.com/matzehuels/gavtree/pkg/pipeline"
//	    "github.com/matzehuels/gavtree/pkg/render"
//	)
//
//	cfg, _ := config.Load("")
//	runner, _ := cfg.NewRunner(ctx, nil, observability.Noop())
//	defer runner.Close()
//
//	res, _ := runner.Resolve(ctx, pipeline.TreeOptions{
//	    Coordinate: "org.slf4j:slf4j-api:2.0.9",
//	})
//	render.Tree(ctx, os.Stdout, res.Tree, render.FormatText, render.Options{})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/artifact] - Coordinates, scopes, repositories and version records.
//
// [core/pom] - POM decoding, property interpolation and dependency management.
//
// [core/resolve] - Tree resolution with depth and node limits, and
// multi-module aggregation.
//
// [core/intel] - Vulnerability reports, stability grades, safety verdicts and
// version recommendations.
//
// ## External Integrations
//
// [integrations] - Shared HTTP client with retry and response caching.
// Subpackages: maven (repositories, metadata, search) and osv (advisories).
//
// ## Infrastructure
//
// [cache] - Null, memory, file, Redis and MongoDB backends behind one
// interface.
//
// [config] - TOML file plus GAVTREE_* environment configuration.
//
// [observability] - Hooks for resolution, cache and HTTP events, with a
// Prometheus implementation.
//
// [errors] - Coded errors and input validation shared by CLI and API.
//
// # Testing
//
// Run tests:
//
//	go test ./...                           # All tests
//	go test ./pkg/core/resolve/...          # Specific package
//	go test -tags integration ./pkg/cache/  # Redis and MongoDB backends
//
// [core]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/core
// [core/artifact]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/core/artifact
// [core/pom]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/core/pom
// [core/resolve]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/core/resolve
// [core/intel]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/core/intel
// [integrations]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/gavtree/pkg/io
package pkg
