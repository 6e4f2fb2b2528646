package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/seventy/internal/report"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// styles are rebuilt on every render so a theme switch takes effect at once.
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	dim    lipgloss.Style
	within lipgloss.Style
	over   lipgloss.Style
	line   lipgloss.Style
}

func current() styles {
	t := theme.Active
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
		within: lipgloss.NewStyle().Foreground(t.Within),
		over:   lipgloss.NewStyle().Foreground(t.Over),
		line:   lipgloss.NewStyle().Foreground(t.Allowed).Bold(true),
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	st := current()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(st.title.Render(title))
}

// RenderTable renders a bordered table with headers and rows. Cells may
// already carry styling; widths are measured on what is displayed.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	st := current()

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(st.header.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(st.dim.Render(left))
		for i, w := range widths {
			b.WriteString(st.dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render(mid))
			}
		}
		b.WriteString(st.dim.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(st.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(st.header.Render(" " + pad(h, widths[i], false) + " "))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(st.dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Right-align money columns (all except first and last)
			right := i > 0 && i < numCols-1
			b.WriteString(" " + st.value.Render(pad(cell, widths[i], right)) + " ")
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")
	return b.String()
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderStatus colors a status label by outcome.
func RenderStatus(status string, within bool) string {
	st := current()
	if within {
		return st.within.Render(status)
	}
	return st.over.Render(status)
}

// RenderEntries renders the ledger table.
func RenderEntries(v report.View, currency string) string {
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []string{
			r.Date,
			FormatMoney(r.Income, currency),
			FormatMoney(r.Spent, currency),
			FormatMoney(r.Allowed, currency),
			RenderStatus(r.Status, r.Within),
		})
	}
	return RenderTable(Table{
		Title:   "Entries",
		Headers: []string{"Date", "Income", "Spent", "Allowed (70%)", "Status"},
		Rows:    rows,
	})
}

// RenderScore renders the score line, a progress bar and the message.
func RenderScore(v report.View, width int) string {
	st := current()
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(st.header.Render(v.Score))
	b.WriteString("\n  ")
	b.WriteString(RenderProgressBar(v.Rate, width, v.Rate >= report.GoodRate))
	b.WriteString(" ")
	b.WriteString(st.muted.Render(FormatRatio(v.Within, v.Total)))
	b.WriteString("\n  ")
	b.WriteString(st.value.Render(v.Message))
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a 0-100 rate as a block bar.
func RenderProgressBar(rate float64, width int, good bool) string {
	if width <= 0 {
		return ""
	}
	st := current()
	pct := min(max(rate/100, 0), 1)
	filled := min(int(pct*float64(width)), width)

	fill := st.over
	if good {
		fill = st.within
	}
	return "[" + fill.Render(strings.Repeat("█", filled)) + st.dim.Render(strings.Repeat("░", width-filled)) + "]"
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderChart draws one horizontal bar per entry for the amount spent,
// colored by outcome, with a "│" marking the allowed amount on that row.
func RenderChart(s report.Series, width int, currency string) string {
	if s.Len() == 0 {
		return ""
	}
	st := current()

	labelW := 0
	peak := 0.0
	for i := range s.Spent {
		labelW = max(labelW, lipgloss.Width(s.Labels[i]))
		peak = max(peak, s.Spent[i], s.Allowed[i])
	}
	if peak <= 0 {
		peak = 1
	}
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(st.header.Render("Spent vs Allowed (70%)"))
	b.WriteString("\n")

	for i := range s.Spent {
		bar := int(s.Spent[i] / peak * float64(width))
		mark := min(int(s.Allowed[i]/peak*float64(width)), width-1)

		style := st.over
		if s.Within[i] {
			style = st.within
		}

		var row strings.Builder
		for c := 0; c < width; c++ {
			switch {
			case c == mark:
				row.WriteString(st.line.Render("│"))
			case c < bar:
				row.WriteString(style.Render("█"))
			default:
				row.WriteString(" ")
			}
		}

		fmt.Fprintf(&b, "  %s %s %s\n",
			st.muted.Render(pad(s.Labels[i], labelW, false)),
			row.String(),
			st.value.Render(fmt.Sprintf("%s%.2f", currency, s.Spent[i])))
	}

	fmt.Fprintf(&b, "  %s %s  %s\n",
		strings.Repeat(" ", labelW),
		st.within.Render("█ within"),
		st.over.Render("█ over")+"  "+st.line.Render("│ allowed"))
	return b.String()
}
