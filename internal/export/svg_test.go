package export

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func testBodies(t *testing.T) []*physics.Body {
	t.Helper()
	sun, err := physics.NewBody(physics.BodyParams{
		Name: "sun", Mass: 1.98892e30, Radius: 30, Anchor: true,
		Color: color.RGBA{255, 255, 0, 255},
	})
	if err != nil {
		t.Fatal(err)
	}
	earth, err := physics.NewBody(physics.BodyParams{
		Name: "earth", Mass: 5.9742e24, Radius: 16,
		Position: r2.Vec{X: -physics.AU},
		Velocity: r2.Vec{Y: 29783},
		Color:    color.RGBA{100, 149, 237, 255},
	})
	if err != nil {
		t.Fatal(err)
	}
	return []*physics.Body{sun, earth}
}

func TestOrbitsToSVG(t *testing.T) {
	bodies := testBodies(t)
	for i := 0; i < 10; i++ {
		physics.StepAll(bodies, physics.DefaultGravity(), 86400, physics.Snapshot)
	}

	proj := sim.NewProjection(100/physics.AU, 800, 800)
	svg := OrbitsToSVG(bodies, proj, 800, 800, color.RGBA{A: 255}, 1e9)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
	for _, want := range []string{`fill="#000000"`, `stroke="#6495ed"`, "<title>earth</title>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
}

func TestOrbitsToSVGPixelRadius(t *testing.T) {
	bodies := testBodies(t)
	proj := sim.NewProjection(100/physics.AU, 800, 800)

	svg := OrbitsToSVG(bodies, proj, 800, 800, color.RGBA{A: 255}, 0)

	for _, want := range []string{`r="30.0"`, `r="16.0"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s:\n%s", want, svg)
		}
	}
}

func TestOrbitsToSVGShortTrail(t *testing.T) {
	bodies := testBodies(t)
	physics.StepAll(bodies, physics.DefaultGravity(), 86400, physics.Snapshot)

	svg := OrbitsToSVG(bodies, sim.NewProjection(100/physics.AU, 800, 800), 800, 800, color.RGBA{}, 1e9)

	if strings.Contains(svg, "<path") {
		t.Error("a single trail point should not produce a path")
	}
}

func TestWritePathSkipsNonFinite(t *testing.T) {
	var sb strings.Builder
	writePath(&sb, []sim.Point{{X: 1, Y: 1}, {X: math.NaN(), Y: 0}, {X: 2, Y: 2}, {X: 3, Y: 3}}, "#ffffff")

	out := sb.String()
	if strings.Contains(out, "NaN") {
		t.Errorf("path contains NaN: %s", out)
	}
	if !strings.Contains(out, `d="M1.0,1.0M2.0,2.0 L3.0,3.0"`) {
		t.Errorf("unexpected path data: %s", out)
	}
}

func TestDistanceSeriesToSVG(t *testing.T) {
	if DistanceSeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single value")
	}

	svg := DistanceSeriesToSVG([]float64{1, 1.5, 1}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if !strings.Contains(svg, "M0.0,") || !strings.Contains(svg, " L100.0,") {
		t.Errorf("path should span the width: %s", svg)
	}
}
