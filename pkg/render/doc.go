// Package render turns resolved dependency trees into output formats.
//
// # Formats
//
//   - text: an indented tree with box-drawing connectors; non-RESOLVED nodes
//     are annotated with their status and message
//   - json, yaml: the tree encoding of [pkg/io]
//   - dot: a Graphviz digraph, one box per node, filled by status
//   - svg: the DOT graph laid out by Graphviz
//
// Use [Tree] to dispatch on a [Format]:
//
//	f, err := render.ParseFormat("svg")
//	err = render.Tree(ctx, os.Stdout, tree, f, render.Options{})
//
// Nodes are never merged: a dependency that occurs under two parents is
// drawn twice, matching the tree the resolver produced.
//
// [pkg/io]: github.com/matzehuels/gavtree/pkg/io
package render
