package sim

import (
	"fmt"
	"image/color"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Point is a position in screen space, in pixels.
type Point struct {
	X, Y float64
}

// Surface is the drawing target for one frame.
type Surface interface {
	Clear(c color.RGBA)
	DrawCircle(c color.RGBA, x, y, r float64)
	DrawPolyline(c color.RGBA, pts []Point)
	Present()
}

// HUD renders informational text on top of the surface.
type HUD interface {
	Text(s string, x, y float64, c color.RGBA)
	MeasureText(s string) (w, h float64)
}

// Input is polled once per iteration without blocking.
type Input interface {
	QuitRequested() bool
}

// Clock paces iterations.
type Clock interface {
	// Tick blocks long enough to cap the iteration rate at fps.
	Tick(fps int)
	FPS() float64
}

// Backend bundles every collaborator a windowed run needs.
type Backend interface {
	Surface
	HUD
	Input
	Clock
}

type Observer interface {
	OnStep(bodies []*physics.Body, t float64)
}

type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Gravity physics.Gravity
	// TimeScale is the simulated time, in seconds, advanced per iteration.
	TimeScale float64
	FPS       int
	Ordering  physics.Ordering
	// RadiusExaggeration multiplies a body's radius by the projection
	// scale to get its pixel radius. Zero draws the radius as pixels.
	RadiusExaggeration float64
	Background         color.RGBA
	TextColor          color.RGBA
	// ValidateState stops headless runs on NaN/Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Gravity:            physics.DefaultGravity(),
		TimeScale:          86400,
		FPS:                60,
		Ordering:           physics.Snapshot,
		RadiusExaggeration: 1e9,
		Background:         color.RGBA{0, 0, 0, 255},
		TextColor:          color.RGBA{255, 255, 255, 255},
		ValidateState:      true,
	}
}

type Result struct {
	StepsTaken int
	SimTime    float64
	Metrics    map[string]float64
	Errors     []error
}

// SimError marks the step at which a headless run went bad.
type SimError struct {
	Time    float64
	Step    int
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
