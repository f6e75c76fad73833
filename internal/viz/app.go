package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
)

const (
	plotWidth  = 60
	plotHeight = 18
	sliderBar  = 20
)

// tickMsg carries the animation generation it was scheduled for, so a
// stale tick left over from a previous pause/resume cycle is dropped.
type tickMsg struct {
	gen int
	at  time.Time
}

// Model is the interactive slider front end. It owns one parameter set and
// re-samples it on every change.
type Model struct {
	mode     metric.Mode
	view     metric.View
	params   metric.Params
	selected int
	animate  bool
	gen      int
	fps      int
	mesh     bool
	theme    Theme
	st       styles
	camera   *Camera
	canvas   *Canvas
	width    int
	height   int
}

func NewModel(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	theme := GetTheme(cfg.Theme)
	return Model{
		mode:    cfg.Mode,
		view:    cfg.View,
		params:  config.Clamp(cfg.Params),
		animate: cfg.Animate,
		fps:     fps,
		mesh:    true,
		theme:   theme,
		st:      newStyles(theme),
		camera:  NewCamera(),
		canvas:  NewCanvas(plotWidth, plotHeight),
		width:   100,
		height:  30,
	}
}

func (m Model) Mode() metric.Mode     { return m.mode }
func (m Model) View2D() bool          { return m.view == metric.View2D }
func (m Model) Params() metric.Params { return m.params }
func (m Model) Animating() bool       { return m.animate }
func (m Model) Theme() Theme          { return m.theme }

// Selected returns the name of the slider under the cursor.
func (m Model) Selected() string { return config.Ranges[m.selected].Name }

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m Model) Init() tea.Cmd {
	if m.animate {
		return m.tick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		if !m.animate || msg.gen != m.gen {
			return m, nil
		}
		m.params = config.Tick(m.params)
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(config.Ranges)-1 {
			m.selected++
		}
	case "left", "h":
		m.params, _ = config.Nudge(m.params, m.Selected(), -1)
	case "right", "l":
		m.params, _ = config.Nudge(m.params, m.Selected(), 1)
	case "tab":
		m.mode = m.mode.Next()
	case "v":
		m.view = m.view.Toggle()
	case " ":
		m.animate = !m.animate
		m.gen++
		if m.animate {
			return m, m.tick()
		}
	case "r":
		m.params = config.Defaults()
		m.camera = NewCamera()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	case "m":
		m.mesh = !m.mesh
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("WARPSIM") + "  " + m.st.subtitle.Render("metric sampler") + "\n")
	modes := make([]string, 0, 3)
	for _, md := range metric.Modes() {
		modes = append(modes, md.String())
	}
	b.WriteString(tabs(modes, int(m.mode), m.st.value, m.st.muted))
	b.WriteString("   ")
	b.WriteString(tabs([]string{"2d", "3d"}, int(m.view), m.st.value, m.st.muted))
	b.WriteString("\n\n")

	plot := m.st.panel.Render(m.renderPlot())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, plot, "  ", m.renderSliders()))
	b.WriteString("\n")
	b.WriteString(m.help())
	return b.String()
}

func (m Model) renderPlot() string {
	if m.view == metric.View2D {
		pts := metric.Sample2D(m.mode, m.params, metric.Domain2D)
		return lipgloss.NewStyle().Foreground(m.theme.Primary).
			Render(Chart2D(pts, plotWidth, plotHeight-2, Caption2D(m.mode, pts)))
	}
	m.canvas.Clear()
	RenderCloud(m.canvas, metric.Sample3D(m.mode, m.params, metric.Domain3D), m.camera, m.mesh)
	return lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(m.canvas.String())
}

func (m Model) renderSliders() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("PARAMETERS") + "\n\n")
	for i, r := range config.Ranges {
		v, _ := config.Get(m.params, r.Name)
		line := fmt.Sprintf("%-14s %s %7s", r.Label, SliderBar(r, v, sliderBar), formatSlider(r, v))
		if i == m.selected {
			b.WriteString(m.st.key.Render("▸ ") + m.st.selected.Render(line) + "\n")
		} else {
			b.WriteString("  " + m.st.label.Render(line) + "\n")
		}
	}
	b.WriteString("\n")
	if m.mode == metric.Warp {
		w := metric.WarpMetric(0, 0, m.params.WarpStrength)
		b.WriteString(m.st.label.Render("energy(0,0) ") + m.st.warn.Render(fmt.Sprintf("%.4g", w.EnergyDensity)) + "\n")
	}
	status := "paused"
	if m.animate {
		status = fmt.Sprintf("rotating @ %d fps", m.fps)
	}
	b.WriteString(m.st.label.Render("status      ") + m.st.value.Render(status) + "\n")
	b.WriteString(m.st.label.Render("theme       ") + m.st.value.Render(m.theme.Name) + "\n")
	return b.String()
}

func (m Model) help() string {
	pairs := [][2]string{
		{"j/k", "select"}, {"h/l", "adjust"}, {"tab", "mode"}, {"v", "view"},
		{"space", "animate"}, {"r", "reset"}, {"t", "theme"}, {"q", "quit"},
	}
	if m.view == metric.View3D {
		pairs = append(pairs, [2]string{"x/y", "orbit"}, [2]string{"+/-", "zoom"}, [2]string{"m", "mesh"})
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = m.st.key.Render(p[0]) + m.st.muted.Render(" "+p[1])
	}
	return strings.Join(parts, "  ")
}

func formatSlider(r config.Range, v float64) string {
	if r.Step >= 1 {
		return metric.FormatFixed(v, 0) + "°"
	}
	return metric.FormatFixed(v, 1)
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}
