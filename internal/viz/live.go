package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	canvasCols      = 80
	canvasRows      = 30
	historyCapacity = 600
)

type TickMsg time.Time

// frameClock measures the rate of Bubble Tea ticks. Pacing itself is done
// by tea.Tick, so Tick only records the target.
type frameClock struct {
	target int
	last   time.Time
	fps    float64
}

func (c *frameClock) Tick(fps int) { c.target = fps }

func (c *frameClock) FPS() float64 { return c.fps }

func (c *frameClock) observe(now time.Time) {
	if !c.last.IsZero() {
		if dt := now.Sub(c.last).Seconds(); dt > 0 {
			inst := 1 / dt
			if c.fps == 0 {
				c.fps = inst
			} else {
				c.fps = 0.9*c.fps + 0.1*inst
			}
		}
	}
	c.last = now
}

// Model contains simulation state, visualization buffers, and UI context.
type Model struct {
	name     string
	cfg      sim.Config
	loop     *sim.Loop
	term     *Terminal
	clock    *frameClock
	tracked  *physics.Body
	history  []float64
	running  bool
	theme    Theme
	styles   styles
	quitting bool
}

// NewModel builds the bodies described by cfg and fits its window onto a
// terminal canvas of cols x rows cells.
func NewModel(cfg *config.Config, cols, rows int) (Model, error) {
	bodies, err := cfg.Build()
	if err != nil {
		return Model{}, err
	}

	term := NewTerminal(cols, rows)
	proj := fitProjection(cfg, term.Canvas())

	loop, err := sim.NewLoop(cfg.SimConfig(), bodies, proj, term, term)
	if err != nil {
		return Model{}, err
	}
	clock := &frameClock{}
	loop.UseClock(clock)

	var tracked *physics.Body
	for _, b := range bodies {
		if !b.IsAnchor() {
			tracked = b
			break
		}
	}

	theme := Themes[0]
	return Model{
		name:    cfg.Name,
		cfg:     cfg.SimConfig(),
		loop:    loop,
		term:    term,
		clock:   clock,
		tracked: tracked,
		history: make([]float64, 0, historyCapacity),
		running: true,
		theme:   theme,
		styles:  newStyles(theme),
	}, nil
}

// fitProjection scales the configured window onto the canvas, keeping the
// configured zoom relative to the window's shorter side.
func fitProjection(cfg *config.Config, c *Canvas) sim.Projection {
	sx := float64(c.DotWidth()) / float64(cfg.Window.Width)
	sy := float64(c.DotHeight()) / float64(cfg.Window.Height)
	return sim.NewProjection(cfg.ProjectionScale()*math.Min(sx, sy), c.DotWidth(), c.DotHeight())
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		}
	case TickMsg:
		m.clock.Tick(m.cfg.FPS)
		m.clock.observe(time.Time(msg))
		if m.running {
			m.loop.Frame()
			m.record()
		} else {
			m.loop.Render()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	if m.tracked == nil {
		return
	}
	m.history = append(m.history, m.tracked.DistanceToAnchor/physics.AU)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	days := m.loop.SimTime() / 86400
	s.WriteString(st.label.Render("Days") + st.value.Render(fmt.Sprintf("%.1f", days)) + "\n")
	s.WriteString(st.label.Render("Steps") + st.value.Render(fmt.Sprintf("%d", m.loop.Steps())) + "\n")
	s.WriteString(st.label.Render("FPS") + st.value.Render(fmt.Sprintf("%.1f", m.clock.FPS())) + "\n")
	s.WriteString(st.label.Render("Ordering") + st.value.Render(m.cfg.Ordering.String()) + "\n")

	s.WriteString("\nDISTANCE TO ANCHOR\n")
	for _, b := range m.loop.Bodies() {
		if b.IsAnchor() {
			continue
		}
		s.WriteString(st.label.Render(b.Name) + st.value.Render(fmt.Sprintf("%.3f AU", b.DistanceToAnchor/physics.AU)) + "\n")
	}

	if len(m.history) > 1 && m.tracked != nil {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Precision(3),
			asciigraph.Caption(m.tracked.Name+" (AU)"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause T:Theme Q:Quit"))

	canvasView := st.canvas.Render(m.term.Frame())
	statsView := st.stats.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// RunLive runs the terminal view until the user quits or ctx is done.
func RunLive(ctx context.Context, cfg *config.Config) error {
	m, err := NewModel(cfg, canvasCols, canvasRows)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
