package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
)

// Terminal draws simulation frames onto a braille canvas. Coordinates are
// canvas dots; text is placed on the enclosing character cell.
type Terminal struct {
	canvas *Canvas
	frame  string
	frames int
}

func NewTerminal(cols, rows int) *Terminal {
	return &Terminal{canvas: NewCanvas(cols, rows)}
}

func (t *Terminal) Canvas() *Canvas { return t.canvas }

// Frame returns the last presented frame.
func (t *Terminal) Frame() string { return t.frame }

// Frames counts presented frames.
func (t *Terminal) Frames() int { return t.frames }

// Clear ignores the color; the terminal background shows through.
func (t *Terminal) Clear(color.RGBA) { t.canvas.Clear() }

func (t *Terminal) DrawCircle(c color.RGBA, x, y, r float64) {
	if !t.near(sim.Point{X: x, Y: y}) {
		return
	}
	limit := float64(max(t.canvas.DotWidth(), t.canvas.DotHeight()))
	t.canvas.SetPen(c)
	t.canvas.FillCircle(round(x), round(y), round(math.Min(r, limit)))
}

func (t *Terminal) DrawPolyline(c color.RGBA, pts []sim.Point) {
	t.canvas.SetPen(c)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if !t.near(a) || !t.near(b) {
			continue
		}
		t.canvas.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
	}
}

func (t *Terminal) Present() {
	t.frame = t.canvas.String()
	t.frames++
}

func (t *Terminal) Text(s string, x, y float64, c color.RGBA) {
	t.canvas.SetPen(c)
	t.canvas.Text(round(x)/2, round(y)/4, s)
}

func (t *Terminal) MeasureText(s string) (float64, float64) {
	return float64(2 * len([]rune(s))), 4
}

// near reports whether p lies within one canvas size of the visible area,
// which keeps line rasterization bounded. NaN fails every comparison.
func (t *Terminal) near(p sim.Point) bool {
	w, h := float64(t.canvas.DotWidth()), float64(t.canvas.DotHeight())
	return p.X >= -w && p.X <= 2*w && p.Y >= -h && p.Y <= 2*h
}

func round(v float64) int {
	return int(math.Round(v))
}
