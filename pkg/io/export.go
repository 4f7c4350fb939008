package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gavtree/pkg/core/resolve"
)

// WriteJSON encodes v as indented JSON and writes it to w.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes v as YAML and writes it to w.
func WriteYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportTree writes a tree to path, as YAML for .yaml/.yml paths and JSON
// otherwise.
func ExportTree(tree *resolve.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if isYAML(path) {
		return WriteYAML(tree, f)
	}
	return WriteJSON(tree, f)
}
