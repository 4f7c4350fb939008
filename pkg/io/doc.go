// Package io provides JSON and YAML import and export for resolved
// dependency trees.
//
// # Overview
//
// The tree format is the JSON (or YAML) encoding of [resolve.Node]: each
// node carries its coordinate, scope, status and children.
//
//	{
//	  "groupId": "org.example",
//	  "artifactId": "app",
//	  "version": "1.0.0",
//	  "scope": "compile",
//	  "status": "RESOLVED",
//	  "children": [
//	    {"groupId": "org.lib", "artifactId": "a", "version": "1.0",
//	     "scope": "compile", "status": "CONFLICT",
//	     "message": "omitted for conflict with 2.0", "children": []}
//	  ]
//	}
//
// Exported trees can be re-imported and rendered later without touching
// any registry:
//
//	tree, err := io.ImportTree("deps.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [WriteJSON] and [WriteYAML] accept any value, so the same helpers encode
// vulnerability reports and intelligence results for the CLI.
//
// [resolve.Node]: github.com/matzehuels/gavtree/pkg/core/resolve.Node
package io
