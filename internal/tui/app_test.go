package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/seventy/internal/app"
	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/store"
	"github.com/theirongolddev/seventy/internal/tui/components"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) App {
	t.Helper()
	t.Setenv("SEVENTY_ASSETS_URL", "")
	svc := app.Open(config.DefaultConfig(), nil, app.WithBackend(store.NewMemory()))
	t.Cleanup(func() { theme.SetActive("light") })

	m, _ := NewApp(svc, false).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(App)
	}
	return m
}

func enterAmounts(m App, income, spent string) App {
	m.inputs[fieldIncome].SetValue(income)
	m.inputs[fieldSpent].SetValue(spent)
	m.focus = fieldSpent
	return send(m, key("enter"))
}

func TestSaveWithinShowsCelebration(t *testing.T) {
	m := enterAmounts(newTestModel(t), "100", "70")

	if !m.showModal {
		t.Fatal("expected celebration modal")
	}
	if m.confetti == 0 {
		t.Error("expected confetti to start")
	}
	if m.view.Total != 1 || m.view.Rate != 100 {
		t.Errorf("view = %d entries at %.1f%%, want 1 at 100%%", m.view.Total, m.view.Rate)
	}
	if !strings.Contains(m.View(), "Nice job!") {
		t.Error("modal text missing from view")
	}

	m = send(m, key("enter"))
	if m.showModal {
		t.Error("enter should close the modal")
	}
}

func TestSaveOverShowsBadge(t *testing.T) {
	m := enterAmounts(newTestModel(t), "100", "90")

	if m.showModal {
		t.Error("over-limit entry must not open a modal")
	}
	if m.notice != "Try again" || !m.warn {
		t.Errorf("notice = %q warn=%v", m.notice, m.warn)
	}
}

func TestSaveInvalidKeepsInputs(t *testing.T) {
	m := enterAmounts(newTestModel(t), "abc", "5")

	if m.view.Total != 0 {
		t.Error("invalid entry was saved")
	}
	if !strings.HasPrefix(m.notice, "Please enter valid numbers") {
		t.Errorf("notice = %q", m.notice)
	}
	if m.inputs[fieldIncome].Value() != "abc" {
		t.Error("inputs should keep what the user typed")
	}
}

func TestClearNeedsConfirmation(t *testing.T) {
	m := enterAmounts(newTestModel(t), "100", "90")
	m = send(m, key("esc"), key("C"))
	if !m.confirmClear {
		t.Fatal("C should ask for confirmation")
	}

	m = send(m, key("n"))
	if m.view.Total != 1 {
		t.Fatal("declining must keep entries")
	}

	m = send(m, key("C"), key("y"))
	if m.view.Total != 0 {
		t.Error("confirming should clear entries")
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t)
	send(m, key("ctrl+t"))
	if theme.Active.Name != "dark" {
		t.Errorf("theme = %s, want dark", theme.Active.Name)
	}
}

func TestTabKeys(t *testing.T) {
	m := send(newTestModel(t), key("esc"), key("c"))
	if m.activeTab != tabChart {
		t.Errorf("activeTab = %d, want chart", m.activeTab)
	}
	m = send(m, key("e"))
	if m.activeTab != tabEntries {
		t.Errorf("activeTab = %d, want entries", m.activeTab)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
	}
}

func TestAllowancePreview(t *testing.T) {
	if got := allowancePreview("100", "70", "$"); got != "Allowed $70.00, within the limit" {
		t.Errorf("preview = %q", got)
	}
	if got := allowancePreview("100", "70.01", "$"); got != "Allowed $70.00, over the limit" {
		t.Errorf("preview = %q", got)
	}
	if got := allowancePreview("", "5", "$"); got != "" {
		t.Errorf("preview for empty income = %q", got)
	}
}

func TestEnterOnIncomeSavesWhenBothFilled(t *testing.T) {
	m := newTestModel(t)
	m.inputs[fieldIncome].SetValue("100")
	m.inputs[fieldSpent].SetValue("90")
	m.focus = fieldIncome

	m = send(m, key("enter"))
	if m.view.Total != 1 {
		t.Fatalf("entries = %d, want 1", m.view.Total)
	}
}

func TestEnterOnIncomeMovesToEmptySpent(t *testing.T) {
	m := newTestModel(t)
	m.inputs[fieldIncome].SetValue("100")
	m.focus = fieldIncome

	m = send(m, key("enter"))
	if m.view.Total != 0 {
		t.Error("saved without a spent amount")
	}
	if m.focus != fieldSpent {
		t.Errorf("focus = %d, want spent", m.focus)
	}
}

func TestExportSnapshotsBeforeLaterSaves(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	m := enterAmounts(newTestModel(t), "100", "90")
	m = send(m, key("esc"))
	next, cmd := m.Update(key("x"))
	m = next.(App)
	if cmd == nil {
		t.Fatal("x should return a write command")
	}

	// A save lands before the command gets to run.
	m = send(m, key("i"))
	m = enterAmounts(m, "200", "10")
	if m.view.Total != 2 {
		t.Fatalf("entries = %d, want 2", m.view.Total)
	}

	msg, ok := cmd().(ExportedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("export msg = %#v", msg)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(msg.Path)))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv has %d lines, want header + 1 row:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[1], `"90.00"`) {
		t.Errorf("row = %s, want the entry saved before export", lines[1])
	}
}

func TestExportEmptyLedger(t *testing.T) {
	m := send(newTestModel(t), key("esc"))
	next, cmd := m.Update(key("x"))
	m = next.(App)
	if cmd != nil {
		t.Error("nothing to write for an empty ledger")
	}
	if m.notice != "No entries to export" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSetupAppliesWithoutRestart(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := enterAmounts(newTestModel(t), "100", "50")

	m.setupVals = NewSetupValues(m.svc.Config(), m.svc.Theme())
	m.setupVals.Currency = "€"
	m.setupVals.DateFormat = "2006-01-02"
	m.saveSetup()

	if got := m.svc.Config().General.Currency; got != "€" {
		t.Errorf("currency = %q, want €", got)
	}
	if m.notice != "Settings saved" {
		t.Errorf("notice = %q", m.notice)
	}
	if row := m.entries.Rows()[0]; !strings.HasPrefix(row[1], "€") {
		t.Errorf("income cell = %q, want € prefix", row[1])
	}
}
