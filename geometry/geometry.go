// Package geometry defines the planar primitives a component hands to its
// host, the metadata that tags them, and the validation applied before any
// of them reaches a store.
//
// Coordinates are canvas.Point values in the design's base unit.
package geometry

import (
	"encoding/json"
	"math"

	"github.com/tdewolff/canvas"
)

// Point is a coordinate in the design's base unit.
type Point = canvas.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Kind names a geometry table.
type Kind string

const (
	KindPath    Kind = "path"
	KindPolygon Kind = "poly"
)

// Payload is the coordinate content of one geometry entry.
type Payload interface {
	Kind() Kind
	Points() []Point
}

// Path is an open polyline. Its stroke width travels in Metadata.
type Path struct {
	Coords []Point
}

// NewPath copies points into a Path.
func NewPath(points ...Point) Path { return Path{Coords: clonePoints(points)} }

func (p Path) Kind() Kind      { return KindPath }
func (p Path) Points() []Point { return p.Coords }

// Polygon is a closed ring; the closing edge is implicit.
type Polygon struct {
	Coords []Point
}

// NewPolygon copies points into a Polygon.
func NewPolygon(points ...Point) Polygon { return Polygon{Coords: clonePoints(points)} }

func (p Polygon) Kind() Kind      { return KindPolygon }
func (p Polygon) Points() []Point { return p.Coords }

// Rectangle returns an axis-aligned w×h polygon centred on (cx, cy), wound
// counter-clockwise from the lower-left corner.
func Rectangle(w, h, cx, cy float64) Polygon {
	x0, x1 := cx-w/2, cx+w/2
	y0, y1 := cy-h/2, cy+h/2
	return Polygon{Coords: []Point{Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1)}}
}

// Metadata tags a registration with fabrication and rendering attributes.
type Metadata struct {
	Layer    int    `json:"layer"`
	Chip     string `json:"chip"`
	Subtract bool   `json:"subtract"`
	Helper   bool   `json:"helper"`
	// Width is the stroke width of path entries; ignored for polygons.
	Width float64 `json:"width,omitempty"`
}

// Key identifies an entry in a design-wide store.
type Key struct {
	Component string
	Name      string
}

func (k Key) String() string { return k.Component + "/" + k.Name }

// Entry is one registered primitive.
type Entry struct {
	Component string
	Name      string
	Kind      Kind
	Payload   Payload
	Metadata
}

// Key returns the store key of e.
func (e Entry) Key() Key { return Key{Component: e.Component, Name: e.Name} }

// Points returns the entry's coordinates.
func (e Entry) Points() []Point {
	if e.Payload == nil {
		return nil
	}
	return e.Payload.Points()
}

// Clone returns e with its own coordinate slice.
func (e Entry) Clone() Entry {
	e.Payload = clonePayload(e.Payload)
	return e
}

// ToPath converts the entry into a canvas path. Polygons are closed.
func (e Entry) ToPath() *canvas.Path {
	p := &canvas.Path{}
	pts := e.Points()
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if e.Kind == KindPolygon && len(pts) > 0 {
		p.Close()
	}
	return p
}

// Length returns the centre-line length of a path, or the perimeter of a
// polygon.
func (e Entry) Length() float64 { return e.ToPath().Length() }

// Bounds returns the lower-left and upper-right corners of the entry's
// coordinates, ignoring stroke width.
func (e Entry) Bounds() (Point, Point) {
	pts := e.Points()
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi := pts[0], pts[0]
	for _, pt := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, pt.X), math.Min(lo.Y, pt.Y)
		hi.X, hi.Y = math.Max(hi.X, pt.X), math.Max(hi.Y, pt.Y)
	}
	return lo, hi
}

type entryJSON struct {
	Component string   `json:"component"`
	Name      string   `json:"name"`
	Kind      Kind     `json:"kind"`
	Points    []Point  `json:"points"`
	Length    float64  `json:"length"`
	Bounds    [2]Point `json:"bounds"`
	Metadata
}

// MarshalJSON flattens the payload into a point list, with the centre-line
// length and bounding box alongside.
func (e Entry) MarshalJSON() ([]byte, error) {
	lo, hi := e.Bounds()
	return json.Marshal(entryJSON{
		Component: e.Component,
		Name:      e.Name,
		Kind:      e.Kind,
		Points:    e.Points(),
		Length:    e.Length(),
		Bounds:    [2]Point{lo, hi},
		Metadata:  e.Metadata,
	})
}

func clonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

func clonePayload(p Payload) Payload {
	switch x := p.(type) {
	case Path:
		return NewPath(x.Coords...)
	case Polygon:
		return NewPolygon(x.Coords...)
	default:
		return p
	}
}
