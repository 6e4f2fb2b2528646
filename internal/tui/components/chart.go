package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/seventy/internal/report"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// SpendChart renders one vertical bar per entry for the amount spent,
// green when within the limit and red when over, with the allowed amount
// drawn as a horizontal tick across each bar.
func SpendChart(s report.Series, width, height int) string {
	n := s.Len()
	if n == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(s.Spent, t.Accent)
	}

	maxVal := 0.0
	for i := range s.Spent {
		maxVal = max(maxVal, s.Spent[i], s.Allowed[i])
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	// Keep the most recent entries when they don't all fit at 2 columns each.
	gap := 1
	maxBars := max((chartW+gap)/(2+gap), 1)
	spent, allowed, within, labels := s.Spent, s.Allowed, s.Within, s.Labels
	if n > maxBars {
		from := n - maxBars
		spent, allowed, within, labels = spent[from:], allowed[from:], within[from:], labels[from:]
		n = maxBars
	}
	if n == 1 {
		gap = 0
	}
	barW := min(max((chartW-(n-1)*gap)/n, 2), 6)
	axisLen := n*barW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	lineStyle := lipgloss.NewStyle().Foreground(t.Allowed).Background(t.Surface).Bold(true)

	allowedRow := func(v float64) int {
		return int(math.Round(v / ceiling * float64(chartH)))
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range spent {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(t.Status(within[i])).Background(t.Surface)

			if allowedRow(allowed[i]) == row {
				b.WriteString(lineStyle.Render(strings.Repeat("━", barW)))
				continue
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := min(max(int((v-rowBottom)/(rowTop-rowBottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(axisLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// axisLabels places as many labels under their bars as fit without overlap,
// always trying to keep the last one.
func axisLabels(labels []string, barW, gap, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	place := func(i int, force bool) {
		lbl := labels[i]
		pos := i * (barW + gap)
		end := pos + len(lbl)
		if end > axisLen {
			if !force {
				return
			}
			pos = max(axisLen-len(lbl), 0)
			end = axisLen
			lbl = lbl[:end-pos]
		}
		if pos <= lastEnd {
			return
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	for i := 0; i < len(labels)-1; i++ {
		place(i, false)
	}
	if len(labels) > 0 {
		place(len(labels)-1, true)
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
