package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDegenerate   = errors.New("degenerate geometry")
	ErrMissingWidth = errors.New("path requires a positive width")
	ErrBadMetadata  = errors.New("invalid metadata")
	ErrKindMismatch = errors.New("payload does not match kind")
	ErrUnknownKind  = errors.New("unknown geometry kind")
)

// GeometryError reports an entry rejected before registration.
type GeometryError struct {
	Component string
	Entry     string
	Kind      Kind
	Detail    string
	Err       error
}

func (e *GeometryError) Error() string {
	msg := fmt.Sprintf("geometry: %s %s/%s: %v", e.Kind, e.Component, e.Entry, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *GeometryError) Unwrap() error { return e.Err }

// Validate checks one entry against its kind and metadata.
func Validate(e Entry) error {
	fail := func(err error, detail string, args ...any) error {
		return &GeometryError{
			Component: e.Component,
			Entry:     e.Name,
			Kind:      e.Kind,
			Detail:    fmt.Sprintf(detail, args...),
			Err:       err,
		}
	}
	if e.Name == "" {
		return fail(ErrBadMetadata, "empty entry name")
	}
	if e.Payload == nil {
		return fail(ErrDegenerate, "no payload")
	}
	if e.Layer < 1 {
		return fail(ErrBadMetadata, "layer %d, want >= 1", e.Layer)
	}
	if e.Chip == "" {
		return fail(ErrBadMetadata, "empty chip")
	}

	pts := e.Payload.Points()
	for i, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			return fail(ErrDegenerate, "point %d is not finite", i)
		}
	}

	switch e.Kind {
	case KindPath:
		if _, ok := e.Payload.(Path); !ok {
			return fail(ErrKindMismatch, "got %T", e.Payload)
		}
		if n := distinct(pts); n < 2 {
			return fail(ErrDegenerate, "%d distinct points, want >= 2", n)
		}
		if !(e.Width > 0) || !finite(e.Width) {
			return fail(ErrMissingWidth, "width %g", e.Width)
		}
	case KindPolygon:
		if _, ok := e.Payload.(Polygon); !ok {
			return fail(ErrKindMismatch, "got %T", e.Payload)
		}
		if n := distinct(pts); n < 3 {
			return fail(ErrDegenerate, "%d distinct points, want >= 3", n)
		}
	default:
		return fail(ErrUnknownKind, "")
	}
	return nil
}

func distinct(pts []Point) int {
	seen := make(map[Point]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
