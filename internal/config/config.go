package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth              = 800
	DefaultHeight             = 800
	DefaultFPS                = 60
	DefaultTimeScale          = 3600 * 24
	DefaultPixelsPerAU        = 100
	DefaultRadiusExaggeration = 1e9
	DefaultTrailWidth         = 2
	DefaultTitle              = "Planet Simulation"
)

var (
	ErrNoBodies         = errors.New("config: no bodies defined")
	ErrMultipleAnchors  = errors.New("config: more than one anchor body")
	ErrInvalidColor     = errors.New("config: invalid color")
	ErrCoincidentBodies = errors.New("config: bodies share a starting position")
	ErrDuplicateName    = errors.New("config: duplicate body name")
)

type Config struct {
	Name               string       `yaml:"name"`
	Window             WindowConfig `yaml:"window"`
	FPS                int          `yaml:"fps"`
	GravityConstant    float64      `yaml:"gravity_constant"`
	TimeScale          float64      `yaml:"time_scale"`
	Scale              float64      `yaml:"scale,omitempty"`
	PixelsPerAU        float64      `yaml:"pixels_per_au"`
	RadiusExaggeration float64      `yaml:"radius_exaggeration"`
	Ordering           string       `yaml:"ordering"`
	MinDistance        float64      `yaml:"min_distance"`
	TrailWidth         float64      `yaml:"trail_width"`
	Background         string       `yaml:"background"`
	TextColor          string       `yaml:"text_color"`
	Bodies             []BodyConfig `yaml:"bodies"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// BodyConfig gives a body's initial conditions in SI units.
type BodyConfig struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Anchor bool    `yaml:"anchor,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "inner",
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		FPS:                DefaultFPS,
		GravityConstant:    physics.G,
		TimeScale:          DefaultTimeScale,
		PixelsPerAU:        DefaultPixelsPerAU,
		RadiusExaggeration: DefaultRadiusExaggeration,
		Ordering:           physics.Snapshot.String(),
		TrailWidth:         DefaultTrailWidth,
		Background:         "#000000",
		TextColor:          "#ffffff",
		Bodies:             innerPlanets(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks everything the simulation relies on before any body is
// built.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if !(c.GravityConstant > 0) {
		return fmt.Errorf("gravity_constant must be positive, got %g", c.GravityConstant)
	}
	if !(c.TimeScale > 0) {
		return fmt.Errorf("time_scale must be positive, got %g", c.TimeScale)
	}
	if !(c.ProjectionScale() > 0) {
		return fmt.Errorf("scale or pixels_per_au must be positive")
	}
	if c.MinDistance < 0 {
		return fmt.Errorf("min_distance must not be negative, got %g", c.MinDistance)
	}
	if _, err := physics.ParseOrdering(c.Ordering); err != nil {
		return err
	}
	for _, hex := range []string{c.Background, c.TextColor} {
		if _, err := parseColor(hex); err != nil {
			return err
		}
	}

	if len(c.Bodies) == 0 {
		return ErrNoBodies
	}

	anchors := 0
	seen := make(map[r2.Vec]string, len(c.Bodies))
	names := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if names[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		names[b.Name] = true

		if !(b.Mass > 0) {
			return fmt.Errorf("%w: %s has mass %g", physics.ErrNonPositiveMass, b.Name, b.Mass)
		}
		if _, err := parseColor(b.Color); err != nil {
			return fmt.Errorf("%s: %w", b.Name, err)
		}
		if b.Anchor {
			anchors++
		}
		pos := r2.Vec{X: b.X, Y: b.Y}
		if other, ok := seen[pos]; ok {
			return fmt.Errorf("%w: %s and %s", ErrCoincidentBodies, other, b.Name)
		}
		seen[pos] = b.Name
	}
	if anchors > 1 {
		return fmt.Errorf("%w: found %d", ErrMultipleAnchors, anchors)
	}
	return nil
}

// Build validates the configuration and constructs its bodies, in
// configuration order.
func (c *Config) Build() ([]*physics.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]*physics.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		col, _ := parseColor(bc.Color)
		b, err := physics.NewBody(physics.BodyParams{
			Name:     bc.Name,
			Position: r2.Vec{X: bc.X, Y: bc.Y},
			Velocity: r2.Vec{X: bc.VX, Y: bc.VY},
			Mass:     bc.Mass,
			Radius:   bc.Radius,
			Color:    col,
			Anchor:   bc.Anchor,
		})
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// SimConfig assumes c has been validated.
func (c *Config) SimConfig() sim.Config {
	order, _ := physics.ParseOrdering(c.Ordering)
	bg, _ := parseColor(c.Background)
	fg, _ := parseColor(c.TextColor)
	return sim.Config{
		Gravity: physics.Gravity{
			G:           c.GravityConstant,
			MinDistance: c.MinDistance,
		},
		TimeScale:          c.TimeScale,
		FPS:                c.FPS,
		Ordering:           order,
		RadiusExaggeration: c.RadiusExaggeration,
		Background:         bg,
		TextColor:          fg,
		ValidateState:      true,
	}
}

// ProjectionScale returns pixels per meter. An explicit scale wins over
// pixels_per_au.
func (c *Config) ProjectionScale() float64 {
	if c.Scale > 0 {
		return c.Scale
	}
	return c.PixelsPerAU / physics.AU
}

func (c *Config) Projection() sim.Projection {
	return sim.NewProjection(c.ProjectionScale(), c.Window.Width, c.Window.Height)
}

func parseColor(hex string) (color.RGBA, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, hex)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
