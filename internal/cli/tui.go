package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// maxSignatureWidth truncates signatures in the class table.
const maxSignatureWidth = 60

// =============================================================================
// ClassListModel - Interactive symmetry class browser
// =============================================================================

// ClassListModel is the bubbletea model for browsing symmetry classes.
// Enter selects a class and quits; the caller reads Selected.
type ClassListModel struct {
	Classes  []pipeline.ClassEntry
	Graph    *graph.Graph
	Cursor   int
	Selected *pipeline.ClassEntry
	Height   int
	Offset   int
	Expanded bool
}

// NewClassListModel creates a class browser over res.
func NewClassListModel(g *graph.Graph, res *pipeline.ClassesResult) ClassListModel {
	return ClassListModel{
		Classes: res.Classes,
		Graph:   g,
		Height:  15,
	}
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Classes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "tab":
			m.Expanded = !m.Expanded
		case "enter":
			if len(m.Classes) == 0 {
				return m, nil
			}
			sel := m.Classes[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ClassListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Symmetry Classes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space expand  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Classes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cl := m.Classes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(len(cl.Members)),
			m.symbolOf(cl),
			m.memberIDs(cl),
			truncate(cl.Signature, maxSignatureWidth),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Size", "Symbol", "Members", "Signature").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Classes) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col == 4 {
					return base.Foreground(colorGray).Bold(true)
				}
				return base.Foreground(colorGreen).Bold(true)
			}
			if len(m.Classes[actualIdx].Members) > 1 && col != 4 {
				return base.Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Cursor < len(m.Classes) {
		b.WriteString("\n")
		b.WriteString(StyleValue.Render(m.Classes[m.Cursor].Signature))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Classes)), len(m.Classes))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// symbolOf returns the symbol shared by the members of cl.
func (m ClassListModel) symbolOf(cl pipeline.ClassEntry) string {
	if m.Graph == nil || len(cl.Members) == 0 {
		return "—"
	}
	return m.Graph.VertexSymbol(cl.Members[0])
}

// memberIDs lists the vertex IDs of cl, or its indices without a graph.
func (m ClassListModel) memberIDs(cl pipeline.ClassEntry) string {
	if m.Graph == nil {
		return formatMembers(cl.Members)
	}
	ids := make([]string, len(cl.Members))
	for i, v := range cl.Members {
		ids[i] = m.Graph.Vertex(v).ID
	}
	return truncate(strings.Join(ids, ","), maxSignatureWidth/2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
