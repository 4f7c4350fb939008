package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/resolve"
)

var statusFill = map[resolve.Status]string{
	resolve.StatusResolved: "white",
	resolve.StatusConflict: "#fde68a",
	resolve.StatusOptional: "#e5e7eb",
	resolve.StatusMissing:  "#fecaca",
	resolve.StatusLocal:    "#bfdbfe",
	resolve.StatusError:    "#f87171",
}

// ToDOT converts a tree to Graphviz DOT. Node IDs are assigned in
// depth-first order, so repeated coordinates get separate boxes.
//
// Conflict and optional nodes are drawn with dashed outlines.
func ToDOT(tree *resolve.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	ids := map[*resolve.Node]string{}
	tree.Walk(func(n *resolve.Node, _ int) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n), ", "))
		return true
	})
	tree.Walk(func(n *resolve.Node, _ int) bool {
		for _, c := range n.Children {
			edges = append(edges, fmtEdge(ids[n], ids[c], c, opts.Detailed))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *resolve.Node) string {
	label := n.Name() + "\n" + n.Version
	if n.Status != resolve.StatusResolved && n.Status != "" {
		label += "\n[" + string(n.Status) + "]"
	}
	return label
}

func fmtAttrs(n *resolve.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n))}
	if fill, ok := statusFill[n.Status]; ok && n.Status != resolve.StatusResolved {
		attrs = append(attrs, "fillcolor=\""+fill+"\"")
	}
	switch n.Status {
	case resolve.StatusConflict, resolve.StatusOptional:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if n.Message != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Message))
	}
	return attrs
}

func fmtEdge(from, to string, child *resolve.Node, detailed bool) string {
	var attrs []string
	if detailed && child.Scope != "" && child.Scope != artifact.ScopeCompile {
		attrs = append(attrs, fmt.Sprintf("label=%q", string(child.Scope)), "fontsize=10")
	}
	if child.Status == resolve.StatusConflict {
		attrs = append(attrs, "style=dashed")
	}
	if len(attrs) == 0 {
		return fmt.Sprintf("  %s -> %s;\n", from, to)
	}
	return fmt.Sprintf("  %s -> %s [%s];\n", from, to, strings.Join(attrs, ", "))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox origin is zero and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
