// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Combines icon, value, and subtitle in a titled border

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/basinventario/inventario-cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#2563EB"), // Blue
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title string, value string, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}

	// Inner width excludes the two border columns and the two leading spaces
	innerWidth := config.Width - 4

	// Top border spends five columns on "┌─ ", the space after the title and "┐"
	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), config.Width-5)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	topBorder := borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) + borderStyle.Render(" "+
		strings.Repeat("─", max(0, config.Width-5-lipgloss.Width(titleStr)))+"┐")

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	line := func(content string) string {
		pad := max(0, innerWidth-lipgloss.Width(content))
		return borderStyle.Render("│") + "  " + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}

	bottomBorder := borderStyle.Render(fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2)))

	return strings.Join([]string{
		topBorder,
		line(valueStyle.Render(truncate(value, innerWidth))),
		line(subtitleStyle.Render(truncate(subtitle, innerWidth))),
		bottomBorder,
	}, "\n")
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// truncate shortens a string to maxLen cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:min(len(r), maxLen)])
	}
	for len(r) > 0 && lipgloss.Width(string(r))+3 > maxLen {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
