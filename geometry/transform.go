package geometry

import "github.com/tdewolff/canvas"

// Transform places raw component coordinates in the design. Points are
// first rotated by Rotation degrees counter-clockwise about Pivot, then
// translated by Offset. The order is fixed.
type Transform struct {
	Rotation float64
	Pivot    Point
	Offset   Point
}

// Placement is the common case: rotate about the origin, then move to (x, y).
func Placement(rotation, x, y float64) Transform {
	return Transform{Rotation: rotation, Offset: Pt(x, y)}
}

// Matrix returns the composed affine matrix. canvas matrices apply the
// right-most factor first.
func (t Transform) Matrix() canvas.Matrix {
	return canvas.Identity.
		Translate(t.Offset.X, t.Offset.Y).
		Translate(t.Pivot.X, t.Pivot.Y).
		Rotate(t.Rotation).
		Translate(-t.Pivot.X, -t.Pivot.Y)
}

// Apply maps points through t into a new slice.
func (t Transform) Apply(points []Point) []Point {
	m := t.Matrix()
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = m.Dot(p)
	}
	return out
}

// ApplyPayload maps a payload through t, keeping its kind.
func (t Transform) ApplyPayload(p Payload) Payload {
	switch x := p.(type) {
	case Path:
		return Path{Coords: t.Apply(x.Coords)}
	case Polygon:
		return Polygon{Coords: t.Apply(x.Coords)}
	default:
		return p
	}
}
