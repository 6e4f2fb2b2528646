// Package ledger holds the append-only list of daily entries and the
// 70% spending rule computed over it.
package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LimitRatio is the share of income a day's spending may reach.
var LimitRatio = decimal.New(7, -1)

// Status labels.
const (
	StatusWithin = "Within Limit"
	StatusOver   = "Over Limit"
)

// Entry is one recorded day. Entries are never edited after creation.
type Entry struct {
	Date   string
	Income decimal.Decimal
	Spent  decimal.Decimal
}

// Allowed is the spending ceiling for this entry.
func (e Entry) Allowed() decimal.Decimal {
	return e.Income.Mul(LimitRatio)
}

// Within reports whether spending stayed at or under the ceiling.
// Exact equality counts as within.
func (e Entry) Within() bool {
	return e.Spent.LessThanOrEqual(e.Allowed())
}

// Status returns the human label for Within.
func (e Entry) Status() string {
	if e.Within() {
		return StatusWithin
	}
	return StatusOver
}

func (e Entry) valid() bool {
	return e.Income.IsPositive() && !e.Spent.IsNegative()
}

// entryJSON is the stored shape: plain JSON numbers, one object per entry.
type entryJSON struct {
	Date   string  `json:"date"`
	Income float64 `json:"income"`
	Spent  float64 `json:"spent"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Date:   e.Date,
		Income: e.Income.InexactFloat64(),
		Spent:  e.Spent.InexactFloat64(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Date = raw.Date
	e.Income = decimal.NewFromFloat(raw.Income)
	e.Spent = decimal.NewFromFloat(raw.Spent)
	return nil
}
