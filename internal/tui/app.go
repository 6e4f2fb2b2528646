// Package tui provides the interactive Bubble Tea tracker for seventy.
package tui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/seventy/internal/app"
	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/feedback"
	"github.com/theirongolddev/seventy/internal/ledger"
	"github.com/theirongolddev/seventy/internal/report"
	"github.com/theirongolddev/seventy/internal/tui/components"
	"github.com/theirongolddev/seventy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ExportedMsg is sent when a CSV export finishes.
type ExportedMsg struct {
	Path string
	Err  error
}

type confettiTickMsg struct{}

const (
	tabTrack = iota
	tabEntries
	tabChart
)

const (
	fieldIncome = iota
	fieldSpent
	fieldNone = -1
)

const (
	minTerminalWidth = 60
	compactWidth     = 90
	maxContentWidth  = 120
	minContentHeight = 5

	confettiFrames = 18
	confettiEvery  = 90 * time.Millisecond
)

// App is the root Bubble Tea model.
type App struct {
	svc *app.App

	// Derived from the ledger after every mutation
	view  report.View
	quote string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Entry form
	inputs []textinput.Model
	focus  int

	entries table.Model

	// Feedback
	reaction     feedback.Reaction
	showModal    bool
	confetti     int // frames left
	confettiSeed uint64
	mascot       spinner.Model

	confirmClear bool
	notice       string
	warn         bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

// NewApp creates the TUI model over svc. needSetup shows the setup wizard first.
func NewApp(svc *app.App, needSetup bool) App {
	a := App{
		svc:       svc,
		needSetup: needSetup,
		focus:     fieldIncome,
		inputs:    []textinput.Model{newAmountInput("Income"), newAmountInput("Spent")},
		entries:   table.New(table.WithColumns(entryColumns()), table.WithFocused(true), table.WithHeight(8)),
	}
	a.inputs[fieldIncome].Focus()
	a.mascot = newMascot(feedback.MoodIdle)
	a.refresh()
	a.quote = svc.Quote()

	if err := svc.Degraded(); err != nil {
		a.notice = "Storage unavailable: entries last for this session only"
		a.warn = true
	}

	if needSetup {
		a.setupVals = NewSetupValues(svc.Config(), svc.Theme())
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

func newAmountInput(label string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = fmt.Sprintf("%-7s ", label)
	ti.Placeholder = "0.00"
	ti.CharLimit = 16
	ti.Width = 16
	return ti
}

func newMascot(m feedback.Mood) spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: feedback.Frames(m),
		FPS:    time.Second / 3,
	}))
}

func entryColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Income", Width: 12},
		{Title: "Spent", Width: 12},
		{Title: "Allowed (70%)", Width: 13},
		{Title: "Status", Width: 12},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion, textinput.Blink, a.mascot.Tick}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// refresh recomputes everything derived from the ledger.
func (a *App) refresh() {
	a.view = a.svc.View()

	cur := a.svc.Config().General.Currency
	rows := make([]table.Row, 0, len(a.view.Rows))
	for _, r := range a.view.Rows {
		rows = append(rows, table.Row{
			r.Date,
			cur + r.Income.StringFixed(2),
			cur + r.Spent.StringFixed(2),
			cur + r.Allowed.StringFixed(2),
			r.Status,
		})
	}
	a.entries.SetRows(rows)
	a.entries.GotoBottom()
	a.styleTable()
}

func (a *App) styleTable() {
	t := theme.Active
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	st.Cell = st.Cell.Foreground(t.TextPrimary)
	st.Selected = st.Selected.Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(false)
	a.entries.SetStyles(st)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.entries.SetHeight(max(a.height-10, 3))
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.showModal || a.confirmClear || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabEntries {
				a.entries.MoveUp(1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabEntries {
				a.entries.MoveDown(1)
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "ctrl+t" {
			return a.toggleTheme(), nil
		}

		if a.showModal {
			switch key {
			case "enter", "esc", " ", "q":
				a.showModal = false
				a.mascot = newMascot(feedback.MoodIdle)
				return a, a.mascot.Tick
			}
			return a, nil
		}

		if a.confirmClear {
			return a.updateConfirmClear(key)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Entry form intercepts keys while focused
		if a.activeTab == tabTrack && a.focus != fieldNone {
			return a.updateForm(msg)
		}

		if a.activeTab == tabEntries {
			switch key {
			case "j", "k", "up", "down", "g", "G", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				a.entries, cmd = a.entries.Update(msg)
				return a, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "?":
			a.showHelp = true
		case "T":
			return a.toggleTheme(), nil
		case "i", "enter":
			a.activeTab = tabTrack
			return a, a.focusField(fieldIncome)
		case "x":
			return a.export()
		case "C":
			if a.svc.Len() == 0 {
				a.notice, a.warn = "Nothing to clear", false
				return a, nil
			}
			a.confirmClear = true
		case "m":
			a.reaction = a.svc.Motivation()
			a.showModal = true
			a.mascot = newMascot(a.reaction.Mood)
			return a, a.mascot.Tick
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case ExportedMsg:
		switch {
		case msg.Err != nil:
			a.notice, a.warn = "Export failed: "+msg.Err.Error(), true
		default:
			a.notice, a.warn = "Exported "+filepath.Base(msg.Path), false
		}
		return a, nil

	case confettiTickMsg:
		if a.confetti > 0 {
			a.confetti--
			a.confettiSeed++
			if a.confetti > 0 {
				return a, confettiTick()
			}
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.mascot, cmd = a.mascot.Update(msg)
		return a, cmd
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.focus != fieldNone {
		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetup()
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}
	return a, cmd
}

func (a *App) saveSetup() {
	cfg := a.svc.Config()
	a.setupVals.Apply(&cfg)
	a.svc.Reconfigure(cfg)
	if err := config.Save(cfg); err != nil {
		a.svc.Logger().Warn("saving setup config failed", zap.Error(err))
		a.notice, a.warn = "Could not save config: settings apply to this session only", true
	} else {
		a.notice, a.warn = "Settings saved", false
	}
	if err := a.svc.SetTheme(a.setupVals.Theme); err != nil {
		a.svc.Logger().Warn("saving theme failed", zap.Error(err))
	}
	a.refresh()
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.inputs[a.focus].Blur()
		a.focus = fieldNone
		return a, nil
	case "tab", "down":
		return a, a.focusField((a.focus + 1) % len(a.inputs))
	case "shift+tab", "up":
		return a, a.focusField((a.focus + len(a.inputs) - 1) % len(a.inputs))
	case "enter":
		if a.focus == fieldIncome && strings.TrimSpace(a.inputs[fieldSpent].Value()) == "" {
			return a, a.focusField(fieldSpent)
		}
		return a.save()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a *App) focusField(i int) tea.Cmd {
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
	a.focus = i
	return a.inputs[i].Focus()
}

func (a App) save() (tea.Model, tea.Cmd) {
	res, err := a.svc.OnSave(a.inputs[fieldIncome].Value(), a.inputs[fieldSpent].Value())
	if err != nil {
		a.notice, a.warn = validationNotice(err), true
		return a, nil
	}

	for i := range a.inputs {
		a.inputs[i].Reset()
	}
	a.refresh()
	a.reaction = res.Reaction
	a.notice, a.warn = res.Reaction.Badge, res.Reaction.Badge != ""
	if res.Warning != nil {
		a.notice, a.warn = "Saved for this session only: storage unavailable", true
	}

	cmds := []tea.Cmd{a.focusField(fieldIncome)}
	a.mascot = newMascot(res.Reaction.Mood)
	cmds = append(cmds, a.mascot.Tick)
	if res.Reaction.Modal() {
		a.showModal = true
	}
	if res.Reaction.Confetti {
		a.confetti = confettiFrames
		a.confettiSeed = uint64(time.Now().UnixNano())
		cmds = append(cmds, confettiTick())
	}
	return a, tea.Batch(cmds...)
}

// export snapshots the ledger as CSV on the update loop; only the file
// write runs in the returned command.
func (a App) export() (tea.Model, tea.Cmd) {
	if a.svc.Len() == 0 {
		a.notice, a.warn = "No entries to export", true
		return a, nil
	}
	var buf bytes.Buffer
	if err := a.svc.OnExport(&buf); err != nil {
		a.notice, a.warn = "Export failed: "+err.Error(), true
		return a, nil
	}
	return a, writeExportCmd(a.svc.ExportFileName(), buf.Bytes())
}

func validationNotice(err error) string {
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		return "Please enter valid numbers: " + ve.Field + " " + ve.Reason
	}
	return "Please enter valid numbers."
}

func (a App) updateConfirmClear(key string) (tea.Model, tea.Cmd) {
	a.confirmClear = false
	switch key {
	case "y", "Y":
		if err := a.svc.OnClear(); err != nil {
			a.notice, a.warn = "Cleared for this session only: storage unavailable", true
		} else {
			a.notice, a.warn = "All entries cleared", false
		}
		a.refresh()
	default:
		a.notice, a.warn = "", false
	}
	return a, nil
}

func (a App) toggleTheme() App {
	if _, err := a.svc.ToggleTheme(); err != nil {
		a.svc.Logger().Warn("saving theme failed", zap.Error(err))
	}
	a.styleTable()
	return a
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.showModal {
		return a.viewModal()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  seventy needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	notice := a.notice
	if a.confirmClear {
		notice = "Clear every entry? y/n"
	}
	statusBar := components.RenderStatusBar(w, a.hints(), notice, a.warn || a.confirmClear)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := max(h-headerH-statusH, minContentHeight)

	var content string
	switch a.activeTab {
	case tabTrack:
		content = a.renderTrackTab(cw)
	case tabEntries:
		content = a.renderEntriesTab(cw)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	}

	if a.confetti > 0 {
		content = feedback.Confetti(cw, a.confettiSeed) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch {
	case a.activeTab == tabTrack && a.focus != fieldNone:
		return "[enter]save  [tab]next field  [esc]menu  [^t]theme"
	case a.activeTab == tabEntries:
		return "[j/k]scroll  [x]export  [C]clear  [?]help  [q]uit"
	default:
		return "[i]new entry  [m]motivate  [x]export  [?]help  [q]uit"
	}
}

func (a App) viewModal() string {
	t := theme.Active
	r := a.reaction

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(56, a.width-4))

	mascotStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(mascotStyle.Render(a.mascot.View()))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(r.Body))
	if r.Mood == feedback.MoodThinking {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("- " + a.svc.QuoteAuthor()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press Enter to close"))

	card := cardStyle.Render(b.String())
	if a.confetti > 0 {
		line := feedback.Confetti(lipgloss.Width(card), a.confettiSeed)
		card = lipgloss.JoinVertical(lipgloss.Center, line, card, feedback.Confetti(lipgloss.Width(card), a.confettiSeed+1))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Entry", []struct{ key, desc string }{
			{"i", "Focus the entry form"},
			{"Tab", "Next field"},
			{"Enter", "Next field / Save"},
			{"Esc", "Leave the form"},
		}},
		{"Navigation", []struct{ key, desc string }{
			{"t e c", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll entries"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"x", "Export CSV"},
			{"C", "Clear all entries"},
			{"m", "Motivate me"},
			{"^t T", "Toggle light / dark"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func confettiTick() tea.Cmd {
	return tea.Tick(confettiEvery, func(time.Time) tea.Msg {
		return confettiTickMsg{}
	})
}

// writeExportCmd writes data to name in the working directory.
func writeExportCmd(name string, data []byte) tea.Cmd {
	return func() tea.Msg {
		path, err := filepath.Abs(name)
		if err != nil {
			return ExportedMsg{Err: err}
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return ExportedMsg{Err: err}
		}
		return ExportedMsg{Path: path}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}
