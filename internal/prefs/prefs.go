// Package prefs reads and writes user preferences kept in the store.
package prefs

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/store"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme returns the saved theme, defaulting to light for missing or unknown values.
func Theme(kv store.KV) string {
	v, ok, err := kv.Load(store.KeyTheme)
	if err != nil || !ok || v != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme saves name, which must be "dark" or "light".
func SetTheme(kv store.KV, name string) error {
	if name != ThemeDark && name != ThemeLight {
		return fmt.Errorf("unknown theme %q (want dark or light)", name)
	}
	if err := kv.Save(store.KeyTheme, name); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between dark and light and returns the new theme.
func ToggleTheme(kv store.KV) (string, error) {
	next := ThemeDark
	if Theme(kv) == ThemeDark {
		next = ThemeLight
	}
	return next, SetTheme(kv, next)
}
