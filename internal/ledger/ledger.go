package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/seventy/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultDateLayout matches the en-US short date.
const DefaultDateLayout = "1/2/2006"

var hundred = decimal.NewFromInt(100)

// Outcome is emitted after every successful AddEntry.
type Outcome struct {
	Entry  Entry
	Within bool
}

// Summary is the aggregate view over the ledger.
type Summary struct {
	Rate    float64 // percent of entries within the limit, one decimal place
	Within  int
	Total   int
	Entries []Entry
}

// Row is one export line with every value already formatted.
type Row struct {
	Date    string
	Income  string
	Spent   string
	Allowed string
	Status  string
}

// Ledger is the ordered list of entries for the session. It is rebuilt from
// the store on startup and written back after every mutation.
// Not safe for concurrent use; the UI drives it from a single goroutine.
type Ledger struct {
	kv         store.KV
	entries    []Entry
	now        func() time.Time
	dateLayout string
	listener   func(Outcome)
	log        *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides time.Now for entry dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithDateLayout sets the layout used to stamp entry dates.
func WithDateLayout(layout string) Option {
	return func(l *Ledger) {
		if layout != "" {
			l.dateLayout = layout
		}
	}
}

// WithListener registers fn to receive the outcome of every saved entry.
func WithListener(fn func(Outcome)) Option {
	return func(l *Ledger) { l.listener = fn }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// New loads the ledger from kv. A missing or unreadable value yields an empty
// ledger; the ledger is always usable.
func New(kv store.KV, opts ...Option) *Ledger {
	l := &Ledger{
		kv:         kv,
		now:        time.Now,
		dateLayout: DefaultDateLayout,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = l.load()
	return l
}

func (l *Ledger) load() []Entry {
	raw, ok, err := l.kv.Load(store.KeyEntries)
	if err != nil {
		l.log.Warn("loading entries failed, starting empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var stored []Entry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		l.log.Warn("stored entries are corrupt, starting empty", zap.Error(err))
		return nil
	}

	entries := stored[:0]
	for _, e := range stored {
		if !e.valid() {
			l.log.Warn("dropping invalid stored entry",
				zap.String("date", e.Date),
				zap.String("income", e.Income.String()),
				zap.String("spent", e.Spent.String()))
			continue
		}
		entries = append(entries, e)
	}
	l.log.Debug("ledger loaded", zap.Int("entries", len(entries)))
	return entries
}

func (l *Ledger) persist() error {
	data, err := json.Marshal(l.entries)
	if err != nil {
		return &StorageUnavailableError{Op: "encode entries", Err: err}
	}
	if err := l.kv.Save(store.KeyEntries, string(data)); err != nil {
		l.log.Error("saving entries failed", zap.Error(err))
		return &StorageUnavailableError{Op: "save entries", Err: err}
	}
	return nil
}

// SetDateLayout changes the layout used for entries added from now on.
// Existing entries keep the date they were stamped with. An empty layout is ignored.
func (l *Ledger) SetDateLayout(layout string) {
	if layout != "" {
		l.dateLayout = layout
	}
}

// AddEntry validates and appends a new entry stamped with today's date.
//
// On a persistence failure the entry is still appended and returned together
// with a *StorageUnavailableError.
func (l *Ledger) AddEntry(income, spent float64) (Entry, error) {
	if err := checkAmount("income", income); err != nil {
		return Entry{}, err
	}
	if err := checkAmount("spent", spent); err != nil {
		return Entry{}, err
	}
	if income <= 0 {
		return Entry{}, &ValidationError{Field: "income", Value: formatFloat(income), Reason: "must be greater than zero"}
	}
	if spent < 0 {
		return Entry{}, &ValidationError{Field: "spent", Value: formatFloat(spent), Reason: "must not be negative"}
	}

	e := Entry{
		Date:   l.now().Format(l.dateLayout),
		Income: decimal.NewFromFloat(income),
		Spent:  decimal.NewFromFloat(spent),
	}
	l.entries = append(l.entries, e)
	err := l.persist()

	l.log.Info("entry saved",
		zap.String("date", e.Date),
		zap.String("income", e.Income.String()),
		zap.String("spent", e.Spent.String()),
		zap.Bool("within", e.Within()))

	if l.listener != nil {
		l.listener(Outcome{Entry: e, Within: e.Within()})
	}
	return e, err
}

// Clear removes every entry. Confirmation belongs to the caller.
func (l *Ledger) Clear() error {
	l.entries = nil
	if err := l.kv.Remove(store.KeyEntries); err != nil {
		l.log.Error("clearing entries failed", zap.Error(err))
		return &StorageUnavailableError{Op: "clear entries", Err: err}
	}
	l.log.Info("ledger cleared")
	return nil
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Summary computes the compliance rate. It never mutates the ledger.
func (l *Ledger) Summary() Summary {
	return Summarize(l.entries)
}

// Summarize computes the compliance rate over entries.
func Summarize(entries []Entry) Summary {
	s := Summary{
		Total:   len(entries),
		Entries: make([]Entry, len(entries)),
	}
	copy(s.Entries, entries)

	for _, e := range entries {
		if e.Within() {
			s.Within++
		}
	}
	if s.Total > 0 {
		s.Rate = decimal.NewFromInt(int64(s.Within)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(s.Total))).
			Round(1).
			InexactFloat64()
	}
	return s
}

// ExportRows returns one formatted row per entry, or ErrEmptyLedger.
func (l *Ledger) ExportRows() ([]Row, error) {
	if len(l.entries) == 0 {
		return nil, ErrEmptyLedger
	}
	rows := make([]Row, 0, len(l.entries))
	for _, e := range l.entries {
		rows = append(rows, Row{
			Date:    e.Date,
			Income:  e.Income.StringFixed(2),
			Spent:   e.Spent.StringFixed(2),
			Allowed: e.Allowed().StringFixed(2),
			Status:  e.Status(),
		})
	}
	return rows, nil
}

// ParseAmount parses user-typed money. A leading "$" and surrounding spaces
// are accepted; anything else that isn't a finite number is a ValidationError.
func ParseAmount(field, s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "is not a number"}
	}
	if err := checkAmount(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: formatFloat(v), Reason: "is not a finite number"}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
