package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/resolve"
	"github.com/matzehuels/gavtree/pkg/errors"
)

func node(coord string, status resolve.Status, children ...*resolve.Node) *resolve.Node {
	c, err := artifact.ParseCoordinate(coord)
	if err != nil {
		panic(err)
	}
	return &resolve.Node{Coordinate: c, Scope: artifact.ScopeCompile, Status: status, Children: children}
}

func sampleTree() *resolve.Node {
	conflict := node("org.lib:b:1.0", resolve.StatusConflict)
	conflict.Message = "omitted for conflict with 1.1"
	test := node("org.lib:t:3.0", resolve.StatusResolved)
	test.Scope = artifact.ScopeTest
	return node("org.example:app:1.0.0", resolve.StatusResolved,
		node("org.lib:a:2.0", resolve.StatusResolved, conflict),
		node("org.lib:b:1.1", resolve.StatusResolved),
		test,
	)
}

func TestText(t *testing.T) {
	want := `org.example:app:1.0.0
├── org.lib:a:2.0
│   └── org.lib:b:1.0 [CONFLICT] omitted for conflict with 1.1
├── org.lib:b:1.1
└── org.lib:t:3.0
`
	if got := Text(sampleTree(), Options{}); got != want {
		t.Errorf("Text() =\n%s\nwant:\n%s", got, want)
	}

	detailed := Text(sampleTree(), Options{Detailed: true})
	if !strings.Contains(detailed, "org.lib:t:3.0 (test)") {
		t.Errorf("detailed output lacks scope:\n%s", detailed)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="org.example:app\n1.0.0"]`,
		`n2 [label="org.lib:b\n1.0\n[CONFLICT]", fillcolor="#fde68a", style="rounded,filled,dashed", tooltip="omitted for conflict with 1.1"]`,
		"n1 -> n2 [style=dashed];",
		`n0 -> n4 [label="test", fontsize=10];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != 4 {
		t.Errorf("expected 4 edges:\n%s", dot)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"JSON", FormatJSON},
		{" svg ", FormatSVG},
		{"dot", FormatDOT},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(png) err = %v", err)
	}
}

func TestTreeJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Tree(context.Background(), &buf, sampleTree(), FormatJSON, Options{}); err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "CONFLICT"`) {
		t.Errorf("unexpected JSON:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	if got, want := Summary(sampleTree()), "4 dependencies: 3 resolved, 1 conflict"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if got := Summary(node("a:b:1", resolve.StatusMissing)); got != "0 dependencies" {
		t.Errorf("Summary(leaf) = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
}
