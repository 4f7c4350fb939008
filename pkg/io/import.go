package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gavtree/pkg/core/resolve"
)

// ReadJSON decodes a JSON tree from r and validates it.
//
// Every node must name a groupId and artifactId and carry a known status.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*resolve.Node, error) {
	var tree resolve.Node
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ReadYAML decodes a YAML tree from r and validates it like [ReadJSON].
func ReadYAML(r io.Reader) (*resolve.Node, error) {
	var tree resolve.Node
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ImportTree reads a tree file, choosing the decoder by extension.
func ImportTree(path string) (*resolve.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if isYAML(path) {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

func validate(tree *resolve.Node) error {
	var err error
	tree.Walk(func(n *resolve.Node, depth int) bool {
		if err != nil {
			return false
		}
		switch {
		case n.Group == "" || n.Artifact == "":
			err = fmt.Errorf("node at depth %d: missing groupId or artifactId", depth)
		case !slices.Contains(resolve.Statuses, n.Status):
			err = fmt.Errorf("node %s: unknown status %q", n.Name(), n.Status)
		}
		return err == nil
	})
	return err
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
