package components

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/report"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRate returns the within color at or above the good rate, the
// yellow warning color in the band below it, and the over color otherwise.
func ColorForRate(rate float64) lipgloss.Color {
	t := theme.Active
	switch {
	case rate >= report.GoodRate:
		return t.Within
	case rate >= report.GoodRate/2:
		return t.Yellow
	default:
		return t.Over
	}
}

// ScoreBar renders the discipline score as a labeled progress bar.
func ScoreBar(label string, rate float64, labelW, barWidth int) string {
	t := theme.Active

	pct := min(max(rate/100, 0), 1)
	color := ColorForRate(rate)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", rate))
}
