package render

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/gavtree/pkg/core/resolve"
	"github.com/matzehuels/gavtree/pkg/errors"
	gavio "github.com/matzehuels/gavtree/pkg/io"
)

// Format is an output format for trees.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatDOT, FormatSVG}

// ParseFormat parses a format name, case-insensitively. Empty means text.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %s)", s, formatList())
	}
	return f, nil
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Options configures rendering.
type Options struct {
	// Detailed adds scopes to text lines and DOT edges.
	Detailed bool

	// Styled colors statuses in text output. Leave false for files and pipes.
	Styled bool
}

// Tree renders tree to w in format f.
func Tree(ctx context.Context, w io.Writer, tree *resolve.Node, f Format, opts Options) error {
	switch f {
	case FormatText, "":
		_, err := io.WriteString(w, Text(tree, opts))
		return err
	case FormatJSON:
		return gavio.WriteJSON(tree, w)
	case FormatYAML:
		return gavio.WriteYAML(tree, w)
	case FormatDOT:
		_, err := io.WriteString(w, ToDOT(tree, opts))
		return err
	case FormatSVG:
		svg, err := RenderSVG(ctx, ToDOT(tree, opts))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// Summary describes the dependencies below the root by status, e.g.
// "12 dependencies: 10 resolved, 2 conflict".
func Summary(tree *resolve.Node) string {
	stats := tree.Stats()
	var parts []string
	for _, s := range resolve.Statuses {
		if n := stats[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(s))))
		}
	}
	if len(parts) == 0 {
		return "0 dependencies"
	}
	return fmt.Sprintf("%d dependencies: %s", tree.Size(), strings.Join(parts, ", "))
}
