// Package app wires the store, ledger, quote selector and asset cache into
// the single object the CLI commands and the TUI talk to.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/seventy/internal/assets"
	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/export"
	"github.com/theirongolddev/seventy/internal/feedback"
	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/prefs"
	"github.com/theirongolddev/seventy/internal/quote"
	"github.com/theirongolddev/seventy/internal/report"
	"github.com/theirongolddev/seventy/internal/store"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"go.uber.org/zap"
)

// Backend is the storage an App runs on. *store.DB and *store.Memory satisfy it.
type Backend interface {
	store.KV
	assets.Bucket
	Close() error
}

// Result is what a save produces for the interface to show.
type Result struct {
	Entry    ledger.Entry
	Reaction feedback.Reaction
	View     report.View
	// Warning is set when the entry was kept in memory but could not be persisted.
	Warning error
}

// App is the application root. It is created once per process and passed
// to whoever needs it.
type App struct {
	cfg      config.Config
	backend  Backend
	ledger   *ledger.Ledger
	quotes   *quote.Selector
	assets   *assets.Cache
	log      *zap.Logger
	now      func() time.Time
	fetcher  assets.Fetcher
	degraded error
	reaction feedback.Reaction
}

// Option configures an App.
type Option func(*App)

// WithBackend skips opening the database and uses b instead.
func WithBackend(b Backend) Option {
	return func(a *App) { a.backend = b }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithFetcher replaces the HTTP asset fetcher built from config.
func WithFetcher(f assets.Fetcher) Option {
	return func(a *App) { a.fetcher = f }
}

// Open builds an App from cfg. If the database can't be opened the App runs
// on an in-memory store and Degraded reports why.
func Open(cfg config.Config, log *zap.Logger, opts ...Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{cfg: cfg, log: log, now: time.Now}

	for _, opt := range opts {
		opt(a)
	}

	if a.backend == nil {
		path := config.DBPath(cfg)
		db, err := store.Open(path)
		if err != nil {
			a.degraded = &ledger.StorageUnavailableError{Op: "open " + path, Err: err}
			log.Warn("database unavailable, entries will not persist", zap.String("path", path), zap.Error(err))
			a.backend = store.NewMemory()
		} else {
			a.backend = db
		}
	}

	a.ledger = ledger.New(a.backend,
		ledger.WithClock(func() time.Time { return a.now() }),
		ledger.WithDateLayout(cfg.General.DateFormat),
		ledger.WithLogger(log.Named("ledger")),
		ledger.WithListener(func(o ledger.Outcome) { a.reaction = feedback.React(o) }),
	)
	a.quotes = quote.NewSelector(a.backend, quote.WithLogger(log.Named("quote")))
	a.assets = a.newAssetCache()

	theme.SetActive(prefs.Theme(a.backend))
	return a
}

// newAssetCache builds the asset cache from a.cfg. A fetcher passed with
// WithFetcher always wins over the configured origin.
func (a *App) newAssetCache() *assets.Cache {
	var f assets.Fetcher = a.fetcher
	if f == nil {
		if hf := assets.NewHTTPFetcher(config.AssetsBaseURL(a.cfg), time.Duration(a.cfg.Assets.TimeoutSec)*time.Second); hf != nil {
			f = hf
		}
	}
	return assets.New(a.backend, f,
		assets.WithWorkers(a.cfg.Assets.Workers),
		assets.WithLogger(a.log.Named("assets")))
}

// Reconfigure applies cfg to the running App. Entries added afterwards use
// the new date layout and the asset cache uses the new origin and workers.
func (a *App) Reconfigure(cfg config.Config) {
	a.cfg = cfg
	a.ledger.SetDateLayout(cfg.General.DateFormat)
	a.assets = a.newAssetCache()
	a.log.Info("configuration applied",
		zap.String("date_format", cfg.General.DateFormat),
		zap.String("currency", cfg.General.Currency))
}

// Close releases the backend.
func (a *App) Close() error {
	return a.backend.Close()
}

// Degraded returns the *ledger.StorageUnavailableError that forced the
// in-memory fallback, or nil.
func (a *App) Degraded() error {
	return a.degraded
}

// Config returns the configuration the App was opened with.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger { return a.log }

// OnSave parses the two amounts and records an entry. Validation problems
// are returned as errors and leave the ledger untouched; a persistence
// failure keeps the entry and is reported in Result.Warning.
func (a *App) OnSave(incomeText, spentText string) (Result, error) {
	income, err := ledger.ParseAmount("income", incomeText)
	if err != nil {
		return Result{}, err
	}
	spent, err := ledger.ParseAmount("spent", spentText)
	if err != nil {
		return Result{}, err
	}
	return a.Add(income, spent)
}

// Add records an entry from already-parsed amounts.
func (a *App) Add(income, spent float64) (Result, error) {
	a.reaction = feedback.Reaction{}
	e, err := a.ledger.AddEntry(income, spent)
	if err != nil && !ledger.IsStorageUnavailable(err) {
		return Result{}, err
	}
	return Result{
		Entry:    e,
		Reaction: a.reaction,
		View:     a.View(),
		Warning:  err,
	}, nil
}

// OnClear removes every entry.
func (a *App) OnClear() error {
	return a.ledger.Clear()
}

// OnExport writes the ledger as CSV to w. An empty ledger yields
// ledger.ErrEmptyLedger and writes nothing.
func (a *App) OnExport(w io.Writer) error {
	rows, err := a.ledger.ExportRows()
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, rows); err != nil {
		return err
	}
	a.log.Info("ledger exported", zap.Int("rows", len(rows)))
	return nil
}

// ExportFileName returns the default CSV file name for today.
func (a *App) ExportFileName() string {
	return export.FileName(a.now())
}

// Summary returns the compliance rate over every entry.
func (a *App) Summary() ledger.Summary {
	return a.ledger.Summary()
}

// View returns the rendered-ready state of the ledger.
func (a *App) View() report.View {
	return report.Build(a.ledger.Entries())
}

// Len returns the number of entries.
func (a *App) Len() int {
	return a.ledger.Len()
}

// Quote returns the quote of the day for today.
func (a *App) Quote() string {
	return a.quotes.Get(a.now())
}

// QuoteAuthor returns the author credited for every quote.
func (a *App) QuoteAuthor() string {
	return a.quotes.Author()
}

// Motivation returns the mascot prompt with a fresh random quote.
func (a *App) Motivation() feedback.Reaction {
	return feedback.Motivation(a.quotes.Random())
}

// Theme returns the saved theme name.
func (a *App) Theme() string {
	return prefs.Theme(a.backend)
}

// SetTheme saves and activates name.
func (a *App) SetTheme(name string) error {
	if err := prefs.SetTheme(a.backend, name); err != nil {
		return err
	}
	theme.SetActive(name)
	return nil
}

// ToggleTheme flips the theme and returns the new name. The new theme is
// active even if saving it failed.
func (a *App) ToggleTheme() (string, error) {
	next, err := prefs.ToggleTheme(a.backend)
	theme.SetActive(next)
	if err != nil {
		return next, fmt.Errorf("toggling theme: %w", err)
	}
	return next, nil
}

// Assets returns the offline asset cache.
func (a *App) Assets() *assets.Cache {
	return a.assets
}

// IsEmpty reports whether err means there was nothing to act on.
func IsEmpty(err error) bool {
	return errors.Is(err, ledger.ErrEmptyLedger)
}
