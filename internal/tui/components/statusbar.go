package components

import (
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a short notice (saved, exported, storage warning) and the theme on the right.
func RenderStatusBar(width int, hints, notice string, warn bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	if warn {
		noticeStyle = noticeStyle.Foreground(t.Over)
	}
	themeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := hintStyle.Render(" " + hints)
	right := ""
	if notice != "" {
		right = noticeStyle.Render(notice) + barStyle.Render("  ")
	}
	right += themeStyle.Render("◐ "+t.Name) + barStyle.Render(" ")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + barStyle.Render(spaces(gap)) + right
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
