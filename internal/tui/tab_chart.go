package tui

import (
	"github.com/theirongolddev/seventy/internal/tui/components"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderChartTab(cw, contentH int) string {
	t := theme.Active
	v := a.view

	if v.Chart.Len() == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Nothing to chart yet.")
		return components.ContentCard("Spent vs Allowed (70%)", empty, cw)
	}

	chartH := max(contentH-8, 4)
	chart := components.SpendChart(v.Chart, components.CardInnerWidth(cw), chartH)

	bg := lipgloss.NewStyle().Background(t.Surface)
	legend := lipgloss.NewStyle().Foreground(t.Within).Background(t.Surface).Render("█ within") +
		bg.Render("  ") +
		lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface).Render("█ over") +
		bg.Render("  ") +
		lipgloss.NewStyle().Foreground(t.Allowed).Background(t.Surface).Bold(true).Render("━ allowed")

	return components.ContentCard("Spent vs Allowed (70%)", chart+"\n\n"+legend, cw)
}
