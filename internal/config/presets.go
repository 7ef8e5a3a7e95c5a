package config

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	sunMass     = 1.98892e30
	earthMass   = 5.9742e24
	marsMass    = 6.39e23
	mercuryMass = 3.30e23
	venusMass   = 4.8685e24
)

// Presets holds named starting configurations. Each call builds a fresh
// copy.
var Presets = map[string]func() *Config{
	"inner": DefaultConfig,
	"close": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "close"
		cfg.PixelsPerAU = 200
		cfg.RadiusExaggeration = 0.5e9
		return cfg
	},
	"earth": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "earth"
		cfg.PixelsPerAU = 250
		cfg.Bodies = innerPlanets()[:2]
		return cfg
	},
	"slow": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "slow"
		cfg.TimeScale = 3600
		return cfg
	},
}

// innerPlanets returns the sun and the four rocky planets, each starting on
// the negative x axis with a tangential velocity.
func innerPlanets() []BodyConfig {
	return []BodyConfig{
		{Name: "sun", Mass: sunMass, Radius: 30, Color: "#ffff00", Anchor: true},
		{Name: "earth", X: -1 * physics.AU, VY: 29783, Mass: earthMass, Radius: 16, Color: "#6495ed"},
		{Name: "mars", X: -1.524 * physics.AU, VY: 24077, Mass: marsMass, Radius: 12, Color: "#bc2732"},
		{Name: "mercury", X: -0.387 * physics.AU, VY: 47400, Mass: mercuryMass, Radius: 8, Color: "#504e51"},
		{Name: "venus", X: -0.723 * physics.AU, VY: 35020, Mass: venusMass, Radius: 13, Color: "#ffffff"},
	}
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
