package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"netcanvas/internal/propedit"
	"netcanvas/internal/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666"))

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1).
			Width(44)

	nodeStyles = map[render.NodeState]lipgloss.Style{
		render.StateNormal:     lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ADD8E6")),
		render.StateLinkSource: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD27F")),
		render.StateEditing:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#B7F0B1")),
	}

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("netcanvas"))
	s.WriteString("\n")

	canvas := canvasStyle.Render(renderGrid(render.NewGrid(m.session.Scene())))
	panel := panelStyle.Render(m.renderForm())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", panel))
	s.WriteString("\n")

	if id, at, ok := m.session.DragPreview(); ok {
		s.WriteString(mutedStyle.Render(fmt.Sprintf("moving %s to (%.0f, %.0f)", id, at.X, at.Y)))
	} else if m.message != "" {
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return s.String()
}

func (m Model) renderForm() string {
	view := m.session.Form()
	if view.Placeholder {
		return mutedStyle.Render(view.Prompt)
	}

	var s strings.Builder
	title := view.Title
	if view.Dirty {
		title += dirtyStyle.Render(" *")
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	for i, f := range view.Fields {
		if i == m.focus && m.input.Focused() {
			s.WriteString(m.input.View())
		} else {
			s.WriteString(fieldLine(f))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

func fieldLine(f propedit.FieldView) string {
	line := f.Label + ": " + f.Value
	if f.Dirty {
		return dirtyStyle.Render(line)
	}
	return line
}

// renderGrid styles the grid row by row, one style per run of like cells
func renderGrid(g *render.Grid) string {
	lines := make([]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		var (
			line strings.Builder
			run  strings.Builder
			cur  lipgloss.Style
			have bool
		)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(cur.Render(run.String()))
				run.Reset()
			}
		}
		for c := 0; c < g.Cols; c++ {
			cell := g.At(c, r)
			st := cellStyle(cell)
			if !have || !sameStyle(st, cur) {
				flush()
				cur, have = st, true
			}
			run.WriteRune(cell.Ch)
		}
		flush()
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(c render.Cell) lipgloss.Style {
	switch c.Kind {
	case render.CellNode:
		return nodeStyles[c.State]
	case render.CellLink:
		return linkStyle
	}
	return lipgloss.NewStyle()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() && a.GetBackground() == b.GetBackground()
}
