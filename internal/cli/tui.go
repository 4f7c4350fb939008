package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/intel"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// VersionListModel - Interactive version selection
// =============================================================================

// VersionListModel is the bubbletea model for picking a version out of an
// intelligence listing. The recommended version starts selected.
type VersionListModel struct {
	Versions    []intel.Assessment
	Recommended string
	Cursor      int
	Selected    *intel.Assessment
	Height      int
	Offset      int
	now         time.Time
}

// NewVersionListModel creates a new version list model.
func NewVersionListModel(in *intel.Intelligence, now time.Time) VersionListModel {
	m := VersionListModel{
		Versions: in.Versions,
		Height:   15,
		now:      now,
	}
	if in.Recommended != nil {
		m.Recommended = in.Recommended.Version
		for i, a := range in.Versions {
			if a.Version == m.Recommended {
				m.Cursor = i
				break
			}
		}
		if m.Cursor >= m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m
}

func (m VersionListModel) Init() tea.Cmd {
	return nil
}

func (m VersionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Versions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Versions) == 0 {
				return m, nil
			}
			a := m.Versions[m.Cursor]
			m.Selected = &a
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m VersionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Version"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Versions) {
		end = len(m.Versions)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		a := m.Versions[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		version := a.Version
		if version == m.Recommended {
			version += " ★"
		}
		rows = append(rows, []string{
			cursor,
			version,
			string(a.Grade),
			fmt.Sprintf("%d", a.VulnerabilityCount),
			formatRelativeTime(a.Timestamp, m.now),
			a.Label,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Version", "Grade", "Vulns", "Released", "Safety").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Versions) {
				return lipgloss.NewStyle()
			}
			a := m.Versions[idx]
			base := lipgloss.NewStyle()
			if col == 5 {
				base = safetyStyle(a.Safety)
			} else if col == 2 || col == 3 || col == 4 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Versions))))

	return b.String()
}

// =============================================================================
// SnippetListModel - Interactive build tool selection
// =============================================================================

// SnippetListModel is the bubbletea model for choosing which build tool's
// dependency declaration to print.
type SnippetListModel struct {
	Coordinate artifact.Coordinate
	Formats    []string
	Cursor     int
	Selected   string
}

// NewSnippetListModel creates a new snippet list model for c.
func NewSnippetListModel(c artifact.Coordinate) SnippetListModel {
	return SnippetListModel{Coordinate: c, Formats: artifact.SnippetFormats}
}

func (m SnippetListModel) Init() tea.Cmd {
	return nil
}

func (m SnippetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Formats)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Formats[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SnippetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Build Tool"))
	b.WriteString(" ")
	b.WriteString(StyleHighlight.Render(m.Coordinate.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, f := range m.Formats {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		line := cursor + f
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
