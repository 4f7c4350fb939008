package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/resolve"
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyles = map[resolve.Status]lipgloss.Style{
		resolve.StatusConflict: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		resolve.StatusOptional: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		resolve.StatusMissing:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		resolve.StatusLocal:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		resolve.StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// Text renders tree as an indented tree:
//
//	org.example:app:1.0.0
//	├── org.lib:a:2.0
//	│   └── org.lib:b:1.0 [CONFLICT] omitted for conflict with 1.1
//	└── org.lib:c:1.1
func Text(tree *resolve.Node, opts Options) string {
	var b strings.Builder
	b.WriteString(line(tree, opts))
	b.WriteByte('\n')
	writeChildren(&b, tree, "", opts)
	return b.String()
}

func writeChildren(b *strings.Builder, n *resolve.Node, prefix string, opts Options) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}
		b.WriteString(style(opts, dimStyle, prefix+connector))
		b.WriteString(line(child, opts))
		b.WriteByte('\n')
		writeChildren(b, child, prefix+indent, opts)
	}
}

func line(n *resolve.Node, opts Options) string {
	s := n.Coordinate.String()
	if opts.Detailed && n.Scope != "" && n.Scope != artifact.ScopeCompile {
		s += style(opts, dimStyle, " ("+string(n.Scope)+")")
	}
	if n.Status != resolve.StatusResolved && n.Status != "" {
		s += " " + style(opts, statusStyles[n.Status], "["+string(n.Status)+"]")
	}
	if n.Message != "" {
		s += " " + style(opts, dimStyle, n.Message)
	}
	return s
}

func style(opts Options, st lipgloss.Style, s string) string {
	if !opts.Styled {
		return s
	}
	return st.Render(s)
}
