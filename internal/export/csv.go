// Package export serializes ledger rows for use outside seventy.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/theirongolddev/seventy/internal/ledger"

	"github.com/jinzhu/now"
)

// Header is the first CSV row.
var Header = []string{"Date", "Income", "Spent", "Allowed70", "Status"}

// FileName returns the default export file name for the UTC day of day.
func FileName(day time.Time) string {
	return fmt.Sprintf("7030-entries-%s.csv", now.With(day.UTC()).BeginningOfDay().Format("2006-01-02"))
}

// CSV renders rows with a header. Every cell is quoted and embedded quotes
// are doubled; lines are separated by "\n" with no trailing newline.
func CSV(rows []ledger.Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvLine(Header))
	for _, r := range rows {
		lines = append(lines, csvLine([]string{r.Date, r.Income, r.Spent, r.Allowed, r.Status}))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes CSV(rows) to w.
func WriteCSV(w io.Writer, rows []ledger.Row) error {
	if _, err := io.WriteString(w, CSV(rows)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func csvLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
