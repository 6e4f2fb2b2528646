package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/seventy/internal/cli"
	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/tui/components"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderTrackTab(cw int) string {
	t := theme.Active
	v := a.view
	cur := a.svc.Config().General.Currency
	var b strings.Builder

	// Row 1: Metric cards
	last := components.Metric{Label: "Last entry", Value: "-"}
	if n := len(v.Rows); n > 0 {
		r := v.Rows[n-1]
		last = components.Metric{
			Label: "Last entry",
			Value: r.Status,
			Note:  fmt.Sprintf("%s of %s allowed", cli.FormatMoney(r.Spent, cur), cli.FormatMoney(r.Allowed, cur)),
			Color: t.Status(r.Within),
		}
	}
	cards := []components.Metric{
		{Label: "Discipline score", Value: cli.FormatPercent(v.Rate), Note: v.Message, Color: components.ColorForRate(v.Rate)},
		{Label: "Days tracked", Value: cli.FormatNumber(int64(v.Total)), Note: cli.FormatRatio(v.Within, v.Total) + " within"},
		last,
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: entry form + quote of the day
	form := a.renderEntryForm()
	quote := a.renderQuote()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("New entry", form, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Quote of the day", quote, cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("New entry", form, halves[0]),
			components.ContentCard("Quote of the day", quote, halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 3: score bar
	barW := max(components.CardInnerWidth(cw)-24, 10)
	b.WriteString(components.ContentCard("",
		components.ScoreBar("Within 70%", v.Rate, 12, barW),
		cw))

	return b.String()
}

func (a App) renderEntryForm() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	mascotStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for i, in := range a.inputs {
		b.WriteString(in.View())
		if i < len(a.inputs)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	income, spent := a.inputs[fieldIncome].Value(), a.inputs[fieldSpent].Value()
	if preview := allowancePreview(income, spent, a.svc.Config().General.Currency); preview != "" {
		b.WriteString(labelStyle.Render(preview))
	} else {
		b.WriteString(hintStyle.Render("Enter today's income and spending."))
	}
	b.WriteString("\n")
	b.WriteString(mascotStyle.Render(a.mascot.View()))
	return b.String()
}

func (a App) renderQuote() string {
	t := theme.Active
	quoteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Italic(true)
	authorStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	return quoteStyle.Render("\""+a.quote+"\"") + "\n" + authorStyle.Render("- "+a.svc.QuoteAuthor())
}

// allowancePreview shows what the limit would be while the user types.
func allowancePreview(incomeText, spentText, currency string) string {
	e, ok := previewEntry(incomeText, spentText)
	if !ok {
		return ""
	}
	verdict := "within the limit"
	if !e.Within() {
		verdict = "over the limit"
	}
	return fmt.Sprintf("Allowed %s, %s", cli.FormatMoney(e.Allowed(), currency), verdict)
}

func previewEntry(incomeText, spentText string) (ledger.Entry, bool) {
	income, err := ledger.ParseAmount("income", incomeText)
	if err != nil || income <= 0 {
		return ledger.Entry{}, false
	}
	spent, err := ledger.ParseAmount("spent", spentText)
	if err != nil || spent < 0 {
		return ledger.Entry{}, false
	}
	return ledger.Entry{Income: decimal.NewFromFloat(income), Spent: decimal.NewFromFloat(spent)}, true
}
