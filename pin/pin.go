// Package pin derives oriented connection points from geometry coordinates.
//
// Orientation contract, shared by every component so that docked pins face
// each other:
//
//   - FromTwoPoints: the two points span the pin edge. The normal is the
//     unit segment direction rotated 90° clockwise, (t.Y, -t.X). The points
//     (1,-1) → (-1,-1) therefore yield the normal (0,1).
//   - FromTangent: the two points are the last segment of a trace. The pin
//     sits on the second point and its normal continues the trace direction;
//     the pin edge is perpendicular to it, width wide.
package pin

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByLCY/lithos/geometry"
)

var (
	ErrDegenerate = errors.New("degenerate pin points")
	ErrPointCount = errors.New("pin needs exactly two points")
	ErrBadWidth   = errors.New("invalid pin width")
)

// Mode selects how the two defining points are interpreted.
type Mode int

const (
	FromTwoPoints Mode = iota
	FromTangent
)

func (m Mode) String() string {
	switch m {
	case FromTwoPoints:
		return "two-points"
	case FromTangent:
		return "tangent"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText encodes the mode name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// PinError reports pin input that cannot produce a finite orientation.
type PinError struct {
	Component string
	Pin       string
	Err       error
}

func (e *PinError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("pin %s: %v", e.Pin, e.Err)
	}
	return fmt.Sprintf("pin %s/%s: %v", e.Component, e.Pin, e.Err)
}

func (e *PinError) Unwrap() error { return e.Err }

// Pin is an immutable, oriented connection point.
type Pin struct {
	Name      string            `json:"name"`
	Component string            `json:"component"`
	Chip      string            `json:"chip"`
	Mode      Mode              `json:"mode"`
	Anchors   [2]geometry.Point `json:"anchors"` // defining points as given
	Edge      [2]geometry.Point `json:"edge"`    // pin edge, width apart
	Middle    geometry.Point    `json:"middle"`
	Normal    geometry.Point    `json:"normal"`  // unit, points away from the component
	Tangent   geometry.Point    `json:"tangent"` // unit, along Edge[0] → Edge[1]
	Width     float64           `json:"width"`
}

// New derives a pin from two points. In FromTwoPoints mode a zero width
// takes the distance between the points.
func New(name string, points []geometry.Point, width float64, mode Mode) (Pin, error) {
	fail := func(err error) (Pin, error) { return Pin{}, &PinError{Pin: name, Err: err} }

	if len(points) != 2 {
		return fail(fmt.Errorf("%w: got %d", ErrPointCount, len(points)))
	}
	p0, p1 := points[0], points[1]
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return fail(fmt.Errorf("%w: non-finite coordinate", ErrDegenerate))
		}
	}
	d := p1.Sub(p0)
	length := d.Length()
	if !(length > 0) || !finite(length) {
		return fail(fmt.Errorf("%w: %v and %v coincide", ErrDegenerate, p0, p1))
	}
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return fail(fmt.Errorf("%w: %g", ErrBadWidth, width))
	}
	dir := d.Div(length)

	pin := Pin{Name: name, Mode: mode, Anchors: [2]geometry.Point{p0, p1}}
	switch mode {
	case FromTwoPoints:
		if width < 0 {
			return fail(fmt.Errorf("%w: %g", ErrBadWidth, width))
		}
		if width == 0 {
			width = length
		}
		pin.Edge = pin.Anchors
		pin.Middle = p0.Add(p1).Div(2)
		pin.Tangent = dir
		pin.Normal = geometry.Pt(dir.Y, -dir.X)
	case FromTangent:
		if width <= 0 {
			return fail(fmt.Errorf("%w: %g", ErrBadWidth, width))
		}
		pin.Normal = dir
		pin.Tangent = geometry.Pt(-dir.Y, dir.X)
		half := pin.Tangent.Mul(width / 2)
		pin.Middle = p1
		pin.Edge = [2]geometry.Point{p1.Sub(half), p1.Add(half)}
	default:
		return fail(fmt.Errorf("unknown mode %v", mode))
	}
	pin.Width = width
	return pin, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
