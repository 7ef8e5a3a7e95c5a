package sim

import (
	"image/color"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	sunMass   = 1.98892e30
	earthMass = 5.9742e24
)

type circle struct {
	c       color.RGBA
	x, y, r float64
}

// recorder is an in-memory Backend.
type recorder struct {
	clears    int
	presents  int
	circles   []circle
	polylines [][]Point
	texts     []string
	ticks     int
	quitAfter int
	fps       float64
}

func (r *recorder) Clear(color.RGBA) {
	r.clears++
	r.circles = r.circles[:0]
	r.polylines = r.polylines[:0]
	r.texts = r.texts[:0]
}

func (r *recorder) DrawCircle(c color.RGBA, x, y, rad float64) {
	r.circles = append(r.circles, circle{c, x, y, rad})
}

func (r *recorder) DrawPolyline(_ color.RGBA, pts []Point) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.polylines = append(r.polylines, cp)
}

func (r *recorder) Present() { r.presents++ }

func (r *recorder) Text(s string, _, _ float64, _ color.RGBA) { r.texts = append(r.texts, s) }

func (r *recorder) MeasureText(s string) (float64, float64) { return float64(len(s)) * 8, 16 }

func (r *recorder) QuitRequested() bool { return r.ticks > r.quitAfter }

func (r *recorder) Tick(int) { r.ticks++ }

func (r *recorder) FPS() float64 { return r.fps }

func sunEarth() ([]*physics.Body, error) {
	sun, err := physics.NewBody(physics.BodyParams{
		Name:   "sun",
		Mass:   sunMass,
		Radius: 30,
		Color:  color.RGBA{255, 255, 0, 255},
		Anchor: true,
	})
	if err != nil {
		return nil, err
	}
	earth, err := physics.NewBody(physics.BodyParams{
		Name:     "earth",
		Position: r2.Vec{X: -physics.AU},
		Velocity: r2.Vec{Y: 29783},
		Mass:     earthMass,
		Radius:   16,
		Color:    color.RGBA{100, 149, 237, 255},
	})
	if err != nil {
		return nil, err
	}
	return []*physics.Body{sun, earth}, nil
}

func mustSunEarth(t *testing.T) []*physics.Body {
	t.Helper()
	bodies, err := sunEarth()
	if err != nil {
		t.Fatalf("building bodies: %v", err)
	}
	return bodies
}
