package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/whaeuser/splitflap/internal/model"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderInputLine())
	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.lastError))
	}
	return b.String()
}

// renderBoard draws the flap faces currently at rest, one styled cell per
// glyph, with 1-based line numbers in the gutter.
func (m *Model) renderBoard() string {
	grid := m.display.Grid()
	colors := m.display.LineColors()

	rows := make([]string, 0, model.Rows)
	for r := 0; r < model.Rows; r++ {
		style := cellStyle(colors[r])
		var row strings.Builder
		for c := 0; c < model.Cols; c++ {
			ch := grid[r][c]
			if ch == 0 {
				ch = ' '
			}
			row.WriteString(style.Render(fmt.Sprintf(" %c ", ch)))
		}
		gutter := statusStyle.Render(fmt.Sprintf("%d ", r+1))
		rows = append(rows, gutter+row.String())
	}
	return boardFrame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderStatus() string {
	parts := make([]string, 0, 5)
	if m.connected {
		parts = append(parts, statusActive.Render("verbunden"))
	} else {
		parts = append(parts, errorStyle.Render("getrennt"))
	}
	if m.display.IsAnimating() {
		parts = append(parts, statusActive.Render("flips"))
	}
	if m.display.DateTimeActive() {
		parts = append(parts, statusActive.Render("uhr"))
	}
	if mode := m.display.ActiveMode(); mode != "" {
		parts = append(parts, statusActive.Render(mode))
	}
	if m.muted {
		parts = append(parts, statusStyle.Render("stumm"))
	}
	return statusStyle.Render(" ") + strings.Join(parts, statusStyle.Render(" | "))
}

func (m *Model) renderInputLine() string {
	if m.inputActive {
		return promptStyle.Render(m.input.View())
	}
	help := []string{}
	for _, binding := range []struct{ k, desc string }{
		{":", "command"}, {"c", "clear"}, {"d", "demo"},
		{"t", "clock"}, {"m", "mute"}, {"q", "quit"},
	} {
		help = append(help, statusActive.Render(binding.k)+statusStyle.Render(" "+binding.desc))
	}
	return " " + strings.Join(help, statusStyle.Render("  "))
}
