package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/seventy/internal/tui/components"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderEntriesTab(cw int) string {
	t := theme.Active
	v := a.view

	if len(v.Rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No entries yet. Press i to add today's numbers.")
		return components.ContentCard("Entries", empty, cw)
	}

	var b strings.Builder
	b.WriteString(a.entries.View())
	b.WriteString("\n")

	within := lipgloss.NewStyle().Foreground(t.Within).Background(t.Surface).
		Render(fmt.Sprintf("● %d within", v.Within))
	over := lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface).
		Render(fmt.Sprintf("● %d over", v.Total-v.Within))
	sep := lipgloss.NewStyle().Background(t.Surface).Render("   ")
	spark := components.Sparkline(v.Chart.Spent, t.Accent)
	b.WriteString(within + sep + over + sep + spark)

	return components.ContentCard(v.Score, b.String(), cw)
}
