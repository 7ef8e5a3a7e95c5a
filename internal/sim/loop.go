package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/orbitsim/internal/physics"
)

const secondsPerDay = 86400

// Loop owns a fixed body set and drives the update-then-render cycle.
// It is not safe for concurrent use.
type Loop struct {
	cfg       Config
	bodies    []*physics.Body
	proj      Projection
	surface   Surface
	hud       HUD
	clock     Clock
	observers []Observer

	steps   int
	simTime float64
	path    []Point
}

// NewLoop binds bodies to the render context they will be drawn on.
func NewLoop(cfg Config, bodies []*physics.Body, proj Projection, surface Surface, hud HUD) (*Loop, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, errors.New("no bodies to simulate")
	}
	if surface == nil || hud == nil {
		return nil, errors.New("loop needs a surface and a hud")
	}
	return &Loop{
		cfg:     cfg,
		bodies:  bodies,
		proj:    proj,
		surface: surface,
		hud:     hud,
	}, nil
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// UseClock sets the clock whose measured rate is shown in the HUD.
func (l *Loop) UseClock(c Clock) { l.clock = c }

func (l *Loop) Bodies() []*physics.Body { return l.bodies }
func (l *Loop) Steps() int              { return l.steps }
func (l *Loop) SimTime() float64        { return l.simTime }
func (l *Loop) Projection() Projection  { return l.proj }

// Advance performs one physics step of TimeScale simulated seconds.
func (l *Loop) Advance() {
	physics.StepAll(l.bodies, l.cfg.Gravity, l.cfg.TimeScale, l.cfg.Ordering)
	l.steps++
	l.simTime += l.cfg.TimeScale

	for _, o := range l.observers {
		o.OnStep(l.bodies, l.simTime)
	}
}

// Render draws orbits, bodies, distance labels and telemetry, then
// presents the frame.
func (l *Loop) Render() {
	l.surface.Clear(l.cfg.Background)

	for _, b := range l.bodies {
		if traj := b.Trajectory(); len(traj) > 2 {
			l.path = l.proj.PathToScreen(l.path, traj)
			l.surface.DrawPolyline(b.Color, l.path)
		}

		p := l.proj.ToScreen(b.Pos)
		l.surface.DrawCircle(b.Color, p.X, p.Y, l.proj.BodyRadius(b.Radius(), l.cfg.RadiusExaggeration))

		if !b.IsAnchor() {
			label := fmt.Sprintf("%.1f KM", b.DistanceToAnchor/1000)
			w, h := l.hud.MeasureText(label)
			l.hud.Text(label, p.X-w/2, p.Y-h/2, l.cfg.TextColor)
		}
	}

	y := 0.0
	for _, line := range l.telemetry() {
		l.hud.Text(line, 0, y, l.cfg.TextColor)
		_, h := l.hud.MeasureText(line)
		y += h * 1.2
	}

	l.surface.Present()
}

// Frame advances the simulation one step and draws the result.
func (l *Loop) Frame() {
	l.Advance()
	l.Render()
}

// Run iterates until input reports a quit or ctx is done. An iteration
// that has started always completes.
func (l *Loop) Run(ctx context.Context, input Input, clock Clock) error {
	l.clock = clock
	for {
		clock.Tick(l.cfg.FPS)

		if input.QuitRequested() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.Frame()
	}
}

func (l *Loop) telemetry() []string {
	lines := make([]string, 0, 3)
	if l.clock != nil {
		lines = append(lines, fmt.Sprintf("FPS: %.2f", l.clock.FPS()))
	}
	lines = append(lines,
		fmt.Sprintf("Seconds: %.0f", l.simTime),
		fmt.Sprintf("Days: %.2f", l.simTime/secondsPerDay),
	)
	return lines
}

func validateConfig(cfg Config) error {
	if !(cfg.TimeScale > 0) {
		return fmt.Errorf("time scale must be positive, got %g", cfg.TimeScale)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if !(cfg.Gravity.G > 0) {
		return fmt.Errorf("gravitational constant must be positive, got %g", cfg.Gravity.G)
	}
	return nil
}
