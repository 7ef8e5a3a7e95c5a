package sim

import "gonum.org/v1/gonum/spatial/r2"

// Projection maps simulated meters to screen pixels.
type Projection struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewProjection centers the origin on a width x height surface.
func NewProjection(scale float64, width, height int) Projection {
	return Projection{
		Scale:   scale,
		OffsetX: float64(width) / 2,
		OffsetY: float64(height) / 2,
	}
}

func (p Projection) ToScreen(v r2.Vec) Point {
	return Point{
		X: v.X*p.Scale + p.OffsetX,
		Y: v.Y*p.Scale + p.OffsetY,
	}
}

// PathToScreen projects every point of path into dst, reusing its storage.
func (p Projection) PathToScreen(dst []Point, path []r2.Vec) []Point {
	dst = dst[:0]
	for _, v := range path {
		dst = append(dst, p.ToScreen(v))
	}
	return dst
}

// BodyRadius returns the on-screen radius of a body. A positive
// exaggeration scales the physical radius with the projection; otherwise
// the radius is taken as pixels.
func (p Projection) BodyRadius(radius, exaggeration float64) float64 {
	if exaggeration > 0 {
		return radius * p.Scale * exaggeration
	}
	return radius
}
