package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// OrbitsToSVG draws the traced path of every body and a disc at its current
// position, using the same projection as the live window.
func OrbitsToSVG(bodies []*physics.Body, proj sim.Projection, width, height int, bg color.RGBA, radiusExaggeration float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(bg)))

	var pts []sim.Point
	for _, b := range bodies {
		pts = proj.PathToScreen(pts, b.Trajectory())
		if len(pts) > 2 {
			writePath(&sb, pts, hex(b.Color))
		}
	}

	for _, b := range bodies {
		p := proj.ToScreen(b.Pos)
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		r := proj.BodyRadius(b.Radius(), radiusExaggeration)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, p.X, p.Y, r, hex(b.Color), b.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, pts []sim.Point, stroke string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2" d="`, stroke))
	move := true
	for _, p := range pts {
		// broken states leave gaps instead of invalid path data
		if !finite(p.X) || !finite(p.Y) {
			move = true
			continue
		}
		if move {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
			move = false
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString(`"/>
`)
}

func hex(c color.RGBA) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DistanceSeriesToSVG plots a single series, such as a body's distance to
// the anchor over time, scaled to fill the image.
func DistanceSeriesToSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	maxV += span * 0.1
	span = maxV - minV

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	pts := make([]sim.Point, len(values))
	for i, v := range values {
		pts[i] = sim.Point{
			X: float64(i) / float64(len(values)-1) * float64(width),
			Y: float64(height) - (v-minV)/span*float64(height),
		}
	}
	writePath(&sb, pts, stroke)

	sb.WriteString("</svg>")
	return sb.String()
}
