package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/prefs"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	Currency   string
	DateFormat string
	Theme      string
	AssetsURL  string
	Workers    string
}

// NewSetupValues seeds the wizard from cfg and the current theme.
func NewSetupValues(cfg config.Config, themeName string) *SetupValues {
	return &SetupValues{
		Currency:   cfg.General.Currency,
		DateFormat: cfg.General.DateFormat,
		Theme:      themeName,
		AssetsURL:  cfg.Assets.BaseURL,
		Workers:    strconv.Itoa(cfg.Assets.Workers),
	}
}

// Apply copies the answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.General.Currency = v.Currency
	cfg.General.DateFormat = v.DateFormat
	cfg.Assets.BaseURL = strings.TrimSpace(v.AssetsURL)
	if n, err := strconv.Atoi(strings.TrimSpace(v.Workers)); err == nil && n > 0 {
		cfg.Assets.Workers = n
	}
}

// NewSetupForm builds the huh wizard used by `seventy setup` and on first launch of the TUI.
func NewSetupForm(vals *SetupValues) *huh.Form {
	dateOpts := make([]huh.Option[string], 0, len(config.DateFormats))
	for _, layout := range config.DateFormats {
		dateOpts = append(dateOpts, huh.NewOption(layout+"  (e.g. "+sampleDate(layout)+")", layout))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to seventy").
				Description("Spend at most 70% of what you earn each day.\nA few questions, then you're tracking."),
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(
					huh.NewOption("$", "$"),
					huh.NewOption("€", "€"),
					huh.NewOption("£", "£"),
					huh.NewOption("₹", "₹"),
					huh.NewOption("¥", "¥"),
				).
				Value(&vals.Currency),
			huh.NewSelect[string]().
				Title("Date format").
				Options(dateOpts...).
				Value(&vals.DateFormat),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Light", prefs.ThemeLight),
					huh.NewOption("Dark", prefs.ThemeDark),
				).
				Value(&vals.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Offline asset origin").
				Description("Base URL `seventy assets install` downloads from. Leave blank to skip.").
				Placeholder("https://example.com").
				Value(&vals.AssetsURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Parallel downloads").
				Value(&vals.Workers).
				Validate(validateWorkers),
		),
	).WithShowHelp(true)
}

func validateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return nil
	}
	return errors.New("must start with http:// or https://")
}

func validateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 32 {
		return errors.New("enter a number from 1 to 32")
	}
	return nil
}

var sampleDay = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func sampleDate(layout string) string {
	return sampleDay.Format(layout)
}
