package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/whaeuser/splitflap/internal/model"
)

// Terminal colors for the fixed German color vocabulary.
var colorPalette = map[model.Color]lipgloss.Color{
	model.ColorBlau:      lipgloss.Color("#2563EB"),
	model.ColorHellblau:  lipgloss.Color("#7DD3FC"),
	model.ColorRot:       lipgloss.Color("#DC2626"),
	model.ColorGruen:     lipgloss.Color("#16A34A"),
	model.ColorHellgruen: lipgloss.Color("#86EFAC"),
	model.ColorOrange:    lipgloss.Color("#EA580C"),
	model.ColorViolett:   lipgloss.Color("#7C3AED"),
	model.ColorRosa:      lipgloss.Color("#F472B6"),
	model.ColorGelb:      lipgloss.Color("#FACC15"),
	model.ColorWeiss:     lipgloss.Color("#F5F5F4"),
}

var (
	boardFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#44403C")).
			Padding(1, 2)

	cellBase = lipgloss.NewStyle().
			Background(lipgloss.Color("#1C1917")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A29E"))

	statusActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FACC15"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DD3FC"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626"))
)

// cellStyle returns the style for a flap face in the given line color.
func cellStyle(c model.Color) lipgloss.Style {
	fg, ok := colorPalette[c]
	if !ok {
		fg = colorPalette[model.ColorWeiss]
	}
	return cellBase.Foreground(fg)
}
