package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/intel"
)

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestVersionListModel(t *testing.T) {
	in := &intel.Intelligence{
		Group:    "org.lib",
		Artifact: "a",
		Versions: []intel.Assessment{
			{Version: "3.0", Safety: intel.SafetyDanger, Label: "1 security issue"},
			{Version: "2.0", IsRelease: true, Safety: intel.SafetySafe},
			{Version: "1.0", IsRelease: true, Safety: intel.SafetySafe},
		},
	}
	in.Recommended = &in.Versions[1]

	m := NewVersionListModel(in, time.Now())
	if m.Cursor != 1 {
		t.Fatalf("initial cursor = %d, want the recommended version", m.Cursor)
	}
	if !strings.Contains(m.View(), "2.0 ★") {
		t.Error("view does not mark the recommended version")
	}

	next, _ := m.Update(key(tea.KeyDown))
	next, _ = next.Update(key(tea.KeyDown)) // clamped at the end
	next, cmd := next.Update(key(tea.KeyEnter))
	got := next.(VersionListModel)
	if got.Selected == nil || got.Selected.Version != "1.0" {
		t.Errorf("selected = %+v, want 1.0", got.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestVersionListModelQuit(t *testing.T) {
	m := NewVersionListModel(&intel.Intelligence{Versions: []intel.Assessment{{Version: "1.0"}}}, time.Now())
	next, cmd := m.Update(key(tea.KeyEsc))
	if next.(VersionListModel).Selected != nil {
		t.Error("esc should not select")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestSnippetListModel(t *testing.T) {
	c := artifact.Coordinate{Group: "org.lib", Artifact: "a", Version: "1.0"}
	m := NewSnippetListModel(c)
	next, _ := m.Update(key(tea.KeyDown))
	next, _ = next.Update(key(tea.KeyEnter))
	got := next.(SnippetListModel)
	if got.Selected != artifact.SnippetFormats[1] {
		t.Errorf("selected = %q, want %q", got.Selected, artifact.SnippetFormats[1])
	}
	if !strings.Contains(m.View(), "org.lib:a:1.0") {
		t.Error("view does not show the coordinate")
	}
}
