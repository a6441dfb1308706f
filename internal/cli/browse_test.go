package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchdoc/sketchdoc/pkg/model"
)

func browseTestDiagram(t *testing.T) *model.Diagram {
	t.Helper()

	diagram := model.NewDiagram("Arch")
	page := model.NewPage("Main")
	a := model.NewShape("a", model.ShapeKindRectangle)
	a.SetPosition(model.Point{X: 10, Y: 20})
	a.SetSize(100, 60)
	a.SetValue("API")
	b := model.NewShape("b", model.ShapeKindEllipse)
	b.SetPosition(model.Point{X: 200, Y: 20})
	b.SetSize(80, 80)
	c := model.NewConnector("c", "a", "b")
	for _, el := range []model.Element{a, b, c} {
		if err := page.AddElement(el); err != nil {
			t.Fatalf("AddElement(%s) error = %v", el.ID(), err)
		}
	}
	diagram.AddPage(page)
	diagram.AddPage(model.NewPage("Second"))
	return diagram
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m BrowseModel, keys ...string) (BrowseModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(BrowseModel)
	}
	return m, cmd
}

func TestBrowseNavigatePages(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	if m.Page != nil {
		t.Fatal("new model should start at the page list")
	}

	m, _ = update(t, m, "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	// Cursor stops at the last row
	m, _ = update(t, m, "down", "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", m.Cursor)
	}

	m, _ = update(t, m, "up", "up", "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after ups, want 0 (clamped)", m.Cursor)
	}
}

func TestBrowseDrillDown(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	m, _ = update(t, m, "enter")
	if m.Page == nil || m.Page.Name() != "Main" {
		t.Fatal("enter should open the selected page")
	}
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after drill down, want 0", m.Cursor)
	}

	m, _ = update(t, m, "down", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	m, _ = update(t, m, "esc")
	if m.Page != nil {
		t.Error("esc should return to the page list")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	t.Run("q quits", func(t *testing.T) {
		_, cmd := update(t, m, "q")
		if cmd == nil {
			t.Fatal("q should return a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("q should quit")
		}
	})

	t.Run("esc at page level quits", func(t *testing.T) {
		_, cmd := update(t, m, "esc")
		if cmd == nil {
			t.Fatal("esc should return a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("esc at the top level should quit")
		}
	})

	t.Run("esc inside a page does not quit", func(t *testing.T) {
		m2, cmd := update(t, m, "enter", "esc")
		if cmd != nil {
			t.Error("esc inside a page should not quit")
		}
		if m2.Page != nil {
			t.Error("esc inside a page should go back to the page list")
		}
	})
}

func TestBrowseYankSetsStatus(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	// Yank at the page level is a no-op
	m, _ = update(t, m, "y")
	if m.Status != "" {
		t.Errorf("status = %q at page level, want empty", m.Status)
	}

	// Inside a page, y reports either a copy or a clipboard failure
	m, _ = update(t, m, "enter", "y")
	if m.Status == "" {
		t.Error("y on an element should set the status line")
	}
}

func TestBrowseView(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	top := m.View()
	for _, want := range []string{"Arch", "Main", "Second", "[1/2]"} {
		if !strings.Contains(top, want) {
			t.Errorf("page view should contain %q", want)
		}
	}

	m, _ = update(t, m, "enter")
	detail := m.View()
	for _, want := range []string{"Main", "a", "rectangle", "API", "connector", "[1/3]"} {
		if !strings.Contains(detail, want) {
			t.Errorf("element view should contain %q", want)
		}
	}
}

func TestBrowseWindowResize(t *testing.T) {
	m := NewBrowseModel(browseTestDiagram(t))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(BrowseModel)
	if m.Height != 22 {
		t.Errorf("height = %d after resize, want 22", m.Height)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 6})
	m = next.(BrowseModel)
	if m.Height != 5 {
		t.Errorf("height = %d after tiny resize, want 5 (floor)", m.Height)
	}
}

func TestElementKind(t *testing.T) {
	shape := model.NewShape("s", model.ShapeKindDiamond)
	conn := model.NewConnector("c", "a", "b")
	group := model.NewGroup("g")

	if got := elementKind(shape); got != "diamond" {
		t.Errorf("elementKind(shape) = %q, want %q", got, "diamond")
	}
	if got := elementKind(conn); got != "connector" {
		t.Errorf("elementKind(connector) = %q, want %q", got, "connector")
	}
	if got := elementKind(group); got != "group" {
		t.Errorf("elementKind(group) = %q, want %q", got, "group")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer label than fits", 10, "a longer …"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
