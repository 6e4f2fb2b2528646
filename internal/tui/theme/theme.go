// Package theme defines the light and dark palettes shared by the CLI and TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout seventy.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row, focused input
	Border       lipgloss.Color // Subtle borders
	BorderBright lipgloss.Color // Cards, modals
	BorderAccent lipgloss.Color // Focus states
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Within       lipgloss.Color // Spending inside the limit
	Over         lipgloss.Color // Spending past the limit
	Allowed      lipgloss.Color // The 70% line
	Yellow       lipgloss.Color
	Magenta      lipgloss.Color
	Blue         lipgloss.Color
}

// Light is the default palette, Flexoki paper tones.
var Light = Theme{
	Name:         "light",
	Background:   lipgloss.Color("#FFFCF0"),
	Surface:      lipgloss.Color("#F2F0E5"),
	SurfaceHover: lipgloss.Color("#E6E4D9"),
	Border:       lipgloss.Color("#DAD8CE"),
	BorderBright: lipgloss.Color("#B7B5AC"),
	BorderAccent: lipgloss.Color("#24837B"),
	TextDim:      lipgloss.Color("#B7B5AC"),
	TextMuted:    lipgloss.Color("#6F6E69"),
	TextPrimary:  lipgloss.Color("#100F0F"),
	Accent:       lipgloss.Color("#24837B"),
	AccentBright: lipgloss.Color("#3AA99F"),
	Within:       lipgloss.Color("#66800B"),
	Over:         lipgloss.Color("#AF3029"),
	Allowed:      lipgloss.Color("#205EA6"),
	Yellow:       lipgloss.Color("#AD8301"),
	Magenta:      lipgloss.Color("#A02F6F"),
	Blue:         lipgloss.Color("#205EA6"),
}

// Dark is Flexoki's dark variant.
var Dark = Theme{
	Name:         "dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderBright: lipgloss.Color("#575653"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Within:       lipgloss.Color("#879A39"),
	Over:         lipgloss.Color("#D14D41"),
	Allowed:      lipgloss.Color("#4385BE"),
	Yellow:       lipgloss.Color("#D0A215"),
	Magenta:      lipgloss.Color("#CE5D97"),
	Blue:         lipgloss.Color("#4385BE"),
}

// Active is the currently selected theme.
var Active = Light

// All available themes.
var All = []Theme{Light, Dark}

// ByName returns a theme by its name, defaulting to Light.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Light
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Status returns the color for a within/over outcome.
func (t Theme) Status(within bool) lipgloss.Color {
	if within {
		return t.Within
	}
	return t.Over
}
