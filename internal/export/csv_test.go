package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/theirongolddev/seventy/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	rows := []ledger.Row{
		{Date: "3/9/2026", Income: "100.00", Spent: "50.00", Allowed: "70.00", Status: "Within Limit"},
		{Date: "3/10/2026", Income: "100.00", Spent: "80.00", Allowed: "70.00", Status: "Over Limit"},
	}

	want := `"Date","Income","Spent","Allowed70","Status"` + "\n" +
		`"3/9/2026","100.00","50.00","70.00","Within Limit"` + "\n" +
		`"3/10/2026","100.00","80.00","70.00","Over Limit"`
	assert.Equal(t, want, CSV(rows))
}

func TestCSV_DoublesQuotes(t *testing.T) {
	rows := []ledger.Row{{Date: `Mar "9"`, Income: "1.00", Spent: "0.00", Allowed: "0.70", Status: "Within Limit"}}
	assert.Contains(t, CSV(rows), `"Mar ""9""","1.00"`)
}

func TestCSV_HeaderOnly(t *testing.T) {
	assert.Equal(t, `"Date","Income","Spent","Allowed70","Status"`, CSV(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []ledger.Row{{Date: "d", Income: "1.00", Spent: "1.00", Allowed: "0.70", Status: "Over Limit"}}))
	assert.Equal(t, CSV([]ledger.Row{{Date: "d", Income: "1.00", Spent: "1.00", Allowed: "0.70", Status: "Over Limit"}}), buf.String())
}

func TestFileName(t *testing.T) {
	day := time.Date(2026, time.October, 15, 22, 10, 0, 0, time.UTC)
	assert.Equal(t, "7030-entries-2026-10-15.csv", FileName(day))

	// 22:10 in New York is already the next day in UTC.
	ny := time.Date(2026, time.October, 15, 22, 10, 0, 0, time.FixedZone("EDT", -4*60*60))
	assert.Equal(t, "7030-entries-2026-10-16.csv", FileName(ny))
}
