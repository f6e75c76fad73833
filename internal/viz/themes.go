package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme shared by the TUI and the image exporters.
// Background is only used by the exporters; the TUI draws on the terminal's
// own background.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:       "nebula",
		Primary:    lipgloss.Color("#c77dff"),
		Secondary:  lipgloss.Color("#48cae4"),
		Accent:     lipgloss.Color("#ffd166"),
		Background: lipgloss.Color("#10002b"),
		Text:       lipgloss.Color("#f1e9ff"),
		Muted:      lipgloss.Color("#6c5b7b"),
		Warning:    lipgloss.Color("#ff6d00"),
	}

	ThemePhosphor = Theme{
		Name:       "phosphor",
		Primary:    lipgloss.Color("#33ff66"),
		Secondary:  lipgloss.Color("#a3ffb4"),
		Accent:     lipgloss.Color("#ffff66"),
		Background: lipgloss.Color("#001a00"),
		Text:       lipgloss.Color("#ccffcc"),
		Muted:      lipgloss.Color("#2e7d32"),
		Warning:    lipgloss.Color("#ffb300"),
	}

	ThemeEventHorizon = Theme{
		Name:       "horizon",
		Primary:    lipgloss.Color("#ff9e00"),
		Secondary:  lipgloss.Color("#ff5400"),
		Accent:     lipgloss.Color("#fff3b0"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#f8f9fa"),
		Muted:      lipgloss.Color("#5c5c5c"),
		Warning:    lipgloss.Color("#e63946"),
	}

	ThemeRedshift = Theme{
		Name:       "redshift",
		Primary:    lipgloss.Color("#ef476f"),
		Secondary:  lipgloss.Color("#118ab2"),
		Accent:     lipgloss.Color("#06d6a0"),
		Background: lipgloss.Color("#1b1b2f"),
		Text:       lipgloss.Color("#edf2f4"),
		Muted:      lipgloss.Color("#8d99ae"),
		Warning:    lipgloss.Color("#ffd166"),
	}

	Themes = []Theme{
		ThemeNebula,
		ThemePhosphor,
		ThemeEventHorizon,
		ThemeRedshift,
	}
)

// GetTheme looks a theme up by name. Unknown names get the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
