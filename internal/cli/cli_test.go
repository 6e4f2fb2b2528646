package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"7.07", "$7.07"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"-42.1", "-$42.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in), "$"), tt.in)
	}
	assert.Equal(t, "€3.00", FormatMoney(decimal.NewFromInt(3), "€"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1 of 1 day", FormatRatio(1, 1))
	assert.Equal(t, "2 of 3 days", FormatRatio(2, 3))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Status"},
		Rows: [][]string{
			{"3/9/2026", RenderStatus("Within Limit", true)},
			{"3/10/2026", RenderStatus("Over Limit", false)},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := lipgloss.Width(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, lipgloss.Width(l), l)
	}
	assert.Contains(t, out, "Within Limit")
}

func TestRenderEntries(t *testing.T) {
	v := report.Build([]ledger.Entry{
		{Date: "3/9/2026", Income: decimal.NewFromInt(100), Spent: decimal.NewFromInt(50)},
	})
	out := RenderEntries(v, "$")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "$70.00")
	assert.Contains(t, out, "Within Limit")
}

func TestRenderProgressBar(t *testing.T) {
	assert.Empty(t, RenderProgressBar(50, 0, true))
	assert.Equal(t, 12, lipgloss.Width(RenderProgressBar(50, 10, true)))
	assert.Equal(t, 12, lipgloss.Width(RenderProgressBar(250, 10, true)))
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil))
	assert.Equal(t, "▁█", RenderSparkline([]float64{0, 10}))
}

func TestRenderChart(t *testing.T) {
	assert.Empty(t, RenderChart(report.Series{}, 20, "$"))

	v := report.Build([]ledger.Entry{
		{Date: "3/9/2026", Income: decimal.NewFromInt(100), Spent: decimal.NewFromInt(50)},
		{Date: "3/10/2026", Income: decimal.NewFromInt(100), Spent: decimal.NewFromInt(90)},
	})
	out := RenderChart(v.Chart, 20, "$")
	assert.Contains(t, out, "3/10/2026")
	assert.Contains(t, out, "$90.00")
	assert.Contains(t, out, "│ allowed")
}
