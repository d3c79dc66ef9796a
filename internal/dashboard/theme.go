package dashboard

import (
	"fmt"

	"github.com/davetashner/triage/internal/i18n"
)

// Theme is the color scheme of the graphical front ends.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unsupported theme %q (want light or dark)", s)
}

// ParseThemeOr parses s and returns def when s is not a theme.
func ParseThemeOr(s string, def Theme) Theme {
	t, err := ParseTheme(s)
	if err != nil {
		return def
	}
	return t
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Theme returns the current theme.
func (d *Dashboard) Theme() Theme {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ParseThemeOr(d.prefs.Theme, d.defaults.Theme)
}

// SetTheme stores the theme preference.
func (d *Dashboard) SetTheme(t Theme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prefs.Theme = string(t)
	d.savePrefs()
}

// ToggleTheme switches between light and dark and returns the new theme.
func (d *Dashboard) ToggleTheme() Theme {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := ParseThemeOr(d.prefs.Theme, d.defaults.Theme).Toggle()
	d.prefs.Theme = string(t)
	d.savePrefs()
	return t
}

// SetLanguage stores the language preference.
func (d *Dashboard) SetLanguage(l i18n.Lang) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prefs.Language = string(l.OrDefault())
	d.savePrefs()
}

// ToggleLanguage switches between the supported languages and returns the
// new one.
func (d *Dashboard) ToggleLanguage() i18n.Lang {
	d.mu.Lock()
	defer d.mu.Unlock()
	l := d.lang().Toggle()
	d.prefs.Language = string(l)
	d.savePrefs()
	return l
}
