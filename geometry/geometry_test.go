package geometry

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathEntry(points ...Point) Entry {
	return Entry{
		Component: "q1",
		Name:      "trace",
		Kind:      KindPath,
		Payload:   NewPath(points...),
		Metadata:  Metadata{Layer: 1, Chip: "main", Width: 1},
	}
}

func TestValidatePath(t *testing.T) {
	require.NoError(t, Validate(pathEntry(Pt(0, 0), Pt(1, 0))))

	err := Validate(pathEntry(Pt(0, 0)))
	var ge *GeometryError
	require.True(t, errors.As(err, &ge))
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.Equal(t, "q1", ge.Component)
	assert.Equal(t, "trace", ge.Entry)

	assert.ErrorIs(t, Validate(pathEntry(Pt(2, 2), Pt(2, 2), Pt(2, 2))), ErrDegenerate)
	assert.ErrorIs(t, Validate(pathEntry(Pt(0, 0), Pt(math.NaN(), 1))), ErrDegenerate)

	e := pathEntry(Pt(0, 0), Pt(1, 0))
	e.Width = 0
	assert.ErrorIs(t, Validate(e), ErrMissingWidth)
}

func TestValidateMetadata(t *testing.T) {
	e := pathEntry(Pt(0, 0), Pt(1, 0))
	e.Layer = 0
	assert.ErrorIs(t, Validate(e), ErrBadMetadata)

	e = pathEntry(Pt(0, 0), Pt(1, 0))
	e.Chip = ""
	assert.ErrorIs(t, Validate(e), ErrBadMetadata)

	e = pathEntry(Pt(0, 0), Pt(1, 0))
	e.Name = ""
	assert.ErrorIs(t, Validate(e), ErrBadMetadata)
}

func TestValidatePolygon(t *testing.T) {
	e := Entry{
		Component: "pad",
		Name:      "body",
		Kind:      KindPolygon,
		Payload:   Rectangle(2, 1, 0, 0),
		Metadata:  Metadata{Layer: 2, Chip: "main"},
	}
	require.NoError(t, Validate(e), "polygons need no width")

	e.Payload = NewPolygon(Pt(0, 0), Pt(1, 0), Pt(0, 0))
	assert.ErrorIs(t, Validate(e), ErrDegenerate)

	e.Payload = NewPath(Pt(0, 0), Pt(1, 0), Pt(1, 1))
	assert.ErrorIs(t, Validate(e), ErrKindMismatch)

	e.Kind = "ellipse"
	assert.ErrorIs(t, Validate(e), ErrUnknownKind)
}

// TestTransformRotatesBeforeTranslating pins the order: (1,0) rotated 90° about
// the origin is (0,1), then moved by (10,0). The reverse order would give (0,11).
func TestTransformRotatesBeforeTranslating(t *testing.T) {
	got := Placement(90, 10, 0).Apply([]Point{Pt(1, 0)})
	require.Len(t, got, 1)
	assert.InDelta(t, 10, got[0].X, 1e-12)
	assert.InDelta(t, 1, got[0].Y, 1e-12)
}

func TestTransformPivot(t *testing.T) {
	tr := Transform{Rotation: 180, Pivot: Pt(1, 1), Offset: Pt(0, 5)}
	got := tr.Apply([]Point{Pt(2, 1), Pt(1, 1)})
	assert.InDelta(t, 0, got[0].X, 1e-12)
	assert.InDelta(t, 6, got[0].Y, 1e-12)
	assert.InDelta(t, 1, got[1].X, 1e-12)
	assert.InDelta(t, 6, got[1].Y, 1e-12)
}

func TestTransformApplyPayloadKeepsInput(t *testing.T) {
	in := NewPolygon(Pt(0, 0), Pt(1, 0), Pt(1, 1))
	out := Placement(0, 3, 4).ApplyPayload(in)

	poly, ok := out.(Polygon)
	require.True(t, ok)
	assert.Equal(t, Pt(3, 4), poly.Coords[0])
	assert.Equal(t, Pt(0, 0), in.Coords[0])
}

func TestEntryLengthAndBounds(t *testing.T) {
	e := pathEntry(Pt(0, 0), Pt(3, 0), Pt(3, 4))
	assert.InDelta(t, 7, e.Length(), 1e-9)

	lo, hi := e.Bounds()
	assert.Equal(t, Pt(0, 0), lo)
	assert.Equal(t, Pt(3, 4), hi)

	sq := Entry{Kind: KindPolygon, Payload: Rectangle(2, 2, 0, 0)}
	assert.InDelta(t, 8, sq.Length(), 1e-9)
}

func TestEntryCloneIsIndependent(t *testing.T) {
	e := pathEntry(Pt(0, 0), Pt(1, 0))
	c := e.Clone()
	c.Payload.(Path).Coords[0] = Pt(9, 9)
	assert.Equal(t, Pt(0, 0), e.Points()[0])
}

func TestEntryJSON(t *testing.T) {
	data, err := json.Marshal(pathEntry(Pt(0, 0), Pt(1, 0)))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"component": "q1", "name": "trace", "kind": "path",
		"points": [{"X": 0, "Y": 0}, {"X": 1, "Y": 0}],
		"length": 1, "bounds": [{"X": 0, "Y": 0}, {"X": 1, "Y": 0}],
		"layer": 1, "chip": "main", "subtract": false, "helper": false, "width": 1
	}`, string(data))
}
