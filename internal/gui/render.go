package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/sim"
)

func (w *Window) Clear(c color.RGBA) {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
	rl.ClearBackground(c)
}

func (w *Window) DrawCircle(c color.RGBA, x, y, r float64) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), c)
}

func (w *Window) DrawPolyline(c color.RGBA, pts []sim.Point) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		rl.DrawLineEx(
			rl.NewVector2(float32(a.X), float32(a.Y)),
			rl.NewVector2(float32(b.X), float32(b.Y)),
			w.trailWidth, c,
		)
	}
}

func (w *Window) Present() {
	if !w.drawing {
		rl.BeginDrawing()
	}
	rl.EndDrawing()
	w.drawing = false
}

func (w *Window) Text(s string, x, y float64, c color.RGBA) {
	rl.DrawText(s, int32(x), int32(y), w.fontSize, c)
}

func (w *Window) MeasureText(s string) (float64, float64) {
	return float64(rl.MeasureText(s, w.fontSize)), float64(w.fontSize)
}
