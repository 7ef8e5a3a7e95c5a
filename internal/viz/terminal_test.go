package viz

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/sim"
)

func TestTerminalPresentSnapshotsCanvas(t *testing.T) {
	term := NewTerminal(10, 5)
	white := color.RGBA{255, 255, 255, 255}

	term.Clear(color.RGBA{})
	term.DrawCircle(white, 10, 10, 1)
	if term.Frame() != "" {
		t.Error("frame should be empty before Present")
	}

	term.Present()
	first := term.Frame()
	if first == "" || term.Frames() != 1 {
		t.Fatalf("expected one presented frame, got %d", term.Frames())
	}

	term.Clear(color.RGBA{})
	if term.Frame() != first {
		t.Error("Clear should not change the presented frame")
	}
}

func TestTerminalSkipsFarAndInvalidPoints(t *testing.T) {
	term := NewTerminal(10, 5)
	white := color.RGBA{255, 255, 255, 255}

	term.DrawPolyline(white, []sim.Point{{X: 0, Y: 0}, {X: 1e12, Y: 0}, {X: math.NaN(), Y: 1}})
	term.DrawCircle(white, math.Inf(1), 0, 3)
	term.DrawCircle(white, 5, 5, 1e9)

	if term.Canvas().Grid[0][0] == brailleBlank {
		t.Error("expected the huge circle to be clamped and drawn")
	}
}

func TestTerminalText(t *testing.T) {
	term := NewTerminal(20, 5)

	w, h := term.MeasureText("12.0 KM")
	if w != 14 || h != 4 {
		t.Errorf("MeasureText = %v x %v", w, h)
	}

	term.Text("FPS", 4, 8, color.RGBA{255, 255, 255, 255})
	if string(term.Canvas().Grid[2][2:5]) != "FPS" {
		t.Errorf("text not placed at cell (2,2): %q", string(term.Canvas().Grid[2]))
	}
}
