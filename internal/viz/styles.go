package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/warpsim/internal/config"
)

type styles struct {
	title, subtitle, label, selected, value, muted, key, warn, panel lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		value:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		key:      lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		warn:     lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// SliderBar draws a horizontal track with a knob at v's position in r.
func SliderBar(r config.Range, v float64, width int) string {
	if width < 3 {
		width = 3
	}
	frac := 0.0
	if r.Max > r.Min {
		frac = (v - r.Min) / (r.Max - r.Min)
	}
	frac = clamp01(frac)
	pos := int(frac*float64(width-1) + 0.5)
	return strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-1-pos)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// tabs renders a selector row with the active entry highlighted.
func tabs(items []string, active int, on, off lipgloss.Style) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if i == active {
			parts[i] = on.Render("[" + it + "]")
		} else {
			parts[i] = off.Render(" " + it + " ")
		}
	}
	return strings.Join(parts, " ")
}
