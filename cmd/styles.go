package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/philipparndt/tokenviz/pkg/particles"
)

var (
	colorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	keyStyle     = lipgloss.NewStyle().Foreground(colorMuted).Width(14).PaddingLeft(2)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// idColor is the particle color of a token ID as a terminal color
func idColor(id int) lipgloss.Color {
	c := particles.HueColor(id)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func keyValue(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value))
}
