package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/feedback"
	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/store"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, time.March, 9, 20, 0, 0, 0, time.UTC) }

func newTestApp(t *testing.T) (*App, *store.Memory) {
	t.Helper()
	t.Setenv("SEVENTY_ASSETS_URL", "")
	mem := store.NewMemory()
	a := Open(config.DefaultConfig(), nil, WithBackend(mem), WithClock(fixedNow))
	t.Cleanup(func() { theme.SetActive(theme.Light.Name) })
	return a, mem
}

func TestOpen_SQLite(t *testing.T) {
	t.Setenv("SEVENTY_DATA_DIR", t.TempDir())
	a := Open(config.DefaultConfig(), nil, WithClock(fixedNow))
	defer a.Close()

	assert.NoError(t, a.Degraded())
	_, err := a.OnSave("100", "50")
	require.NoError(t, err)

	b := Open(config.DefaultConfig(), nil)
	defer b.Close()
	assert.Equal(t, 1, b.Len())
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv("SEVENTY_DATA_DIR", filepath.Join(blocker, "data"))

	a := Open(config.DefaultConfig(), nil)
	defer a.Close()

	require.Error(t, a.Degraded())
	assert.True(t, ledger.IsStorageUnavailable(a.Degraded()))

	res, err := a.OnSave("100", "60")
	require.NoError(t, err)
	assert.NoError(t, res.Warning)
	assert.Equal(t, 1, a.Len())
}

func TestOnSave_WithinCelebrates(t *testing.T) {
	a, _ := newTestApp(t)

	res, err := a.OnSave("$100", " 70 ")
	require.NoError(t, err)
	assert.Equal(t, "3/9/2026", res.Entry.Date)
	assert.Equal(t, feedback.MoodHappy, res.Reaction.Mood)
	assert.True(t, res.Reaction.Confetti)
	assert.Equal(t, 100.0, res.View.Rate)
	assert.Len(t, res.View.Rows, 1)
}

func TestOnSave_OverNudges(t *testing.T) {
	a, _ := newTestApp(t)

	res, err := a.OnSave("100", "71")
	require.NoError(t, err)
	assert.Equal(t, "Try again", res.Reaction.Badge)
	assert.False(t, res.Reaction.Modal())
}

func TestOnSave_ValidationLeavesLedger(t *testing.T) {
	a, _ := newTestApp(t)

	for _, tc := range [][2]string{{"", "5"}, {"abc", "5"}, {"0", "5"}, {"100", "-1"}, {"100", ""}} {
		_, err := a.OnSave(tc[0], tc[1])
		require.Error(t, err, tc)
		assert.True(t, ledger.IsValidation(err), tc)
	}
	assert.Zero(t, a.Len())
}

func TestOnExport(t *testing.T) {
	a, _ := newTestApp(t)

	var buf bytes.Buffer
	assert.True(t, IsEmpty(a.OnExport(&buf)))
	assert.Empty(t, buf.String())

	_, err := a.OnSave("100", "50")
	require.NoError(t, err)
	require.NoError(t, a.OnExport(&buf))
	assert.Equal(t,
		`"Date","Income","Spent","Allowed70","Status"`+"\n"+`"3/9/2026","100.00","50.00","70.00","Within Limit"`,
		buf.String())
	assert.Equal(t, "7030-entries-2026-03-09.csv", a.ExportFileName())
}

func TestOnClear(t *testing.T) {
	a, mem := newTestApp(t)
	_, err := a.OnSave("100", "50")
	require.NoError(t, err)

	require.NoError(t, a.OnClear())
	assert.Zero(t, a.Len())
	_, ok, _ := mem.Load(store.KeyEntries)
	assert.False(t, ok)
}

func TestQuote_StableForTheDay(t *testing.T) {
	a, _ := newTestApp(t)
	q := a.Quote()
	assert.NotEmpty(t, q)
	assert.Equal(t, q, a.Quote())
	assert.NotEmpty(t, a.QuoteAuthor())
	assert.Equal(t, feedback.MoodThinking, a.Motivation().Mood)
}

func TestToggleTheme_Activates(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "light", a.Theme())

	next, err := a.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, "dark", next)
	assert.Equal(t, "dark", theme.Active.Name)

	assert.Error(t, a.SetTheme("sepia"))
	require.NoError(t, a.SetTheme("light"))
	assert.Equal(t, "light", theme.Active.Name)
}

func TestReconfigure_AppliesToNewEntries(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.OnSave("100", "50")
	require.NoError(t, err)

	cfg := a.Config()
	cfg.General.DateFormat = "2006-01-02"
	cfg.General.Currency = "€"
	a.Reconfigure(cfg)

	res, err := a.OnSave("100", "50")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", res.Entry.Date)
	assert.Equal(t, "3/9/2026", res.View.Rows[0].Date)
	assert.Equal(t, "€", a.Config().General.Currency)
}
