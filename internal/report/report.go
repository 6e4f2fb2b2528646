// Package report turns ledger state into what the CLI and TUI draw:
// table rows, the discipline score line and the chart series.
package report

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/ledger"

	"github.com/shopspring/decimal"
)

// GoodRate is the score at or above which the summary congratulates.
const GoodRate = 70.0

// Row is one table line.
type Row struct {
	Date    string
	Income  decimal.Decimal
	Spent   decimal.Decimal
	Allowed decimal.Decimal
	Within  bool
	Status  string
}

// Series is the chart input: one bar per entry for spending, colored by
// Within, and one line for the allowed amount.
type Series struct {
	Labels  []string
	Spent   []float64
	Allowed []float64
	Within  []bool
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Spent) }

// View is everything a renderer needs.
type View struct {
	Rows    []Row
	Rate    float64
	Within  int
	Total   int
	Score   string
	Message string
	Chart   Series
}

// Summary returns the score line followed by the encouragement line.
func (v View) Summary() string {
	return v.Score + "\n" + v.Message
}

// Build computes the view for entries in ledger order.
func Build(entries []ledger.Entry) View {
	sum := ledger.Summarize(entries)
	v := View{
		Rows:    make([]Row, 0, len(entries)),
		Rate:    sum.Rate,
		Within:  sum.Within,
		Total:   sum.Total,
		Score:   ScoreLine(sum.Rate),
		Message: Message(sum.Rate),
		Chart: Series{
			Labels:  make([]string, 0, len(entries)),
			Spent:   make([]float64, 0, len(entries)),
			Allowed: make([]float64, 0, len(entries)),
			Within:  make([]bool, 0, len(entries)),
		},
	}

	for _, e := range entries {
		allowed := e.Allowed()
		within := e.Within()
		v.Rows = append(v.Rows, Row{
			Date:    e.Date,
			Income:  e.Income,
			Spent:   e.Spent,
			Allowed: allowed,
			Within:  within,
			Status:  e.Status(),
		})
		v.Chart.Labels = append(v.Chart.Labels, e.Date)
		v.Chart.Spent = append(v.Chart.Spent, e.Spent.InexactFloat64())
		v.Chart.Allowed = append(v.Chart.Allowed, allowed.Round(2).InexactFloat64())
		v.Chart.Within = append(v.Chart.Within, within)
	}
	return v
}

// ScoreLine formats the discipline score.
func ScoreLine(rate float64) string {
	return fmt.Sprintf("Your Discipline Score: %.1f%%", rate)
}

// Message returns the encouragement line for rate.
func Message(rate float64) string {
	if rate >= GoodRate {
		return "Great, keep it up!"
	}
	return "Focus, small wins add up."
}
