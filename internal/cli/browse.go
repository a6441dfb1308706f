package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore pages and elements interactively",
		Long:  `Open an interactive explorer for the document. The top level lists pages; enter drills into a page's elements. Press y on an element to copy its style string to the clipboard.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runBrowse(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	diagram, err := drawio.Import(path)
	if err != nil {
		return err
	}
	logger.Debugf("browsing %s: %d page(s)", path, diagram.PageCount())

	p := tea.NewProgram(NewBrowseModel(diagram))
	_, err = p.Run()
	return err
}

// =============================================================================
// BrowseModel - Interactive document explorer
// =============================================================================

// BrowseModel is the bubbletea model for the document explorer. It shows
// the page list at the top level and drills into a page's elements.
type BrowseModel struct {
	Diagram *model.Diagram
	Page    *model.Page // nil while browsing the page list
	Cursor  int
	Height  int
	Offset  int
	Status  string
}

// NewBrowseModel creates a new explorer model for the diagram.
func NewBrowseModel(diagram *model.Diagram) BrowseModel {
	return BrowseModel{
		Diagram: diagram,
		Height:  15,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// rowCount is the number of rows at the current level.
func (m BrowseModel) rowCount() int {
	if m.Page == nil {
		return m.Diagram.PageCount()
	}
	return len(m.Page.Elements())
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Page != nil {
				m.Page = nil
				m.Cursor = 0
				m.Offset = 0
				m.Status = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Page == nil && m.Cursor < m.Diagram.PageCount() {
				m.Page = m.Diagram.PageAt(m.Cursor)
				m.Cursor = 0
				m.Offset = 0
				m.Status = ""
			}
		case "y":
			if m.Page != nil {
				els := m.Page.Elements()
				if m.Cursor < len(els) {
					el := els[m.Cursor]
					if err := clipboard.WriteAll(el.Style().String()); err != nil {
						m.Status = fmt.Sprintf("clipboard: %v", err)
					} else {
						m.Status = fmt.Sprintf("copied style of %s", el.ID())
					}
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	if m.Page == nil {
		return m.viewPages()
	}
	return m.viewElements()
}

func (m BrowseModel) viewPages() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Diagram.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.Diagram.PageCount() {
		end = m.Diagram.PageCount()
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		page := m.Diagram.PageAt(i)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		grid := "off"
		if page.GridEnabled() {
			grid = fmt.Sprintf("%dpx", page.GridSize())
		}

		rows = append(rows, []string{
			cursor,
			page.Name(),
			fmt.Sprintf("%d", len(page.Elements())),
			grid,
		})
	}

	b.WriteString(m.renderTable([]string{"", "Page", "Elements", "Grid"}, rows))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Diagram.PageCount())))

	return b.String()
}

func (m BrowseModel) viewElements() string {
	var b strings.Builder
	els := m.Page.Elements()

	b.WriteString(StyleTitle.Render(m.Diagram.Name() + " · " + m.Page.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  y copy style  esc back  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(els) {
		end = len(els)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		el := els[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			el.ID(),
			elementKind(el),
			truncate(el.Value(), 24),
			elementGeometry(el),
		})
	}

	b.WriteString(m.renderTable([]string{"", "ID", "Kind", "Label", "Geometry"}, rows))
	b.WriteString("\n\n")
	if len(els) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(els))))
	} else {
		b.WriteString(listDimStyle.Render("  (empty page)"))
	}
	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render("  " + m.Status))
	}

	return b.String()
}

func (m BrowseModel) renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	return t.Render()
}

// elementKind names the element type for display.
func elementKind(el model.Element) string {
	switch e := el.(type) {
	case *model.Shape:
		return string(e.Kind())
	case *model.Connector:
		return "connector"
	case *model.Group:
		return "group"
	default:
		return "element"
	}
}

// elementGeometry summarizes position and extent for display.
func elementGeometry(el model.Element) string {
	switch e := el.(type) {
	case *model.Shape:
		pos := e.Position()
		return fmt.Sprintf("%g,%g %gx%g", pos.X, pos.Y, e.Width(), e.Height())
	case *model.Connector:
		route := fmt.Sprintf("%s → %s", e.SourceID(), e.TargetID())
		if n := len(e.Waypoints()); n > 0 {
			route += fmt.Sprintf(" (%d waypoints)", n)
		}
		return route
	case *model.Group:
		pos := e.Position()
		return fmt.Sprintf("%g,%g %d children", pos.X, pos.Y, len(e.ChildIDs()))
	default:
		pos := el.Position()
		return fmt.Sprintf("%g,%g", pos.X, pos.Y)
	}
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
