package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/units"
)

func sampleOptions() *options.Options {
	return options.New(
		options.P("n", "3"),
		options.P("width", "1um"),
		options.P("radius", "10mm"),
		options.P("subtract", "False"),
		options.P("helper", "True"),
		options.P("chip", "main"),
		options.P("layer", "1"),
		options.P("pads", []any{options.New(options.P("x", "1um"))}),
		options.P("cpw", options.New(options.P("gap", "6um"), options.P("width", "10um"))),
	)
}

func TestViewTypedAccess(t *testing.T) {
	v := New(sampleOptions(), nil)

	n, err := v.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	r, err := v.Float("radius")
	require.NoError(t, err)
	assert.InDelta(t, 10000, r, 1e-9)

	sub, err := v.Bool("subtract")
	require.NoError(t, err)
	assert.False(t, sub)
	helper, err := v.Bool("helper")
	require.NoError(t, err)
	assert.True(t, helper)

	chip, err := v.String("chip")
	require.NoError(t, err)
	assert.Equal(t, "main", chip)

	gap, err := v.Float("cpw.gap")
	require.NoError(t, err)
	assert.Equal(t, 6.0, gap)
}

func TestViewPathWithIndex(t *testing.T) {
	v := New(sampleOptions(), nil)
	got, err := v.Get("pads[0].x")
	require.NoError(t, err)
	// lists are not parsed
	assert.Equal(t, "1um", got)

	_, err = v.Get("pads[3].x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = v.Get("pads[x]")
	assert.Error(t, err)
}

func TestViewSeesOptionEdits(t *testing.T) {
	opts := sampleOptions()
	v := New(opts, nil)

	w, err := v.Float("width")
	require.NoError(t, err)
	assert.Equal(t, 1.0, w)

	opts.Set("width", "2.5um")
	w, err = v.Float("width")
	require.NoError(t, err)
	assert.Equal(t, 2.5, w)

	// edits through a nested mapping are seen as well
	cpw, _ := opts.Get("cpw")
	cpw.(*options.Options).Set("gap", "1mm")
	gap, err := v.Float("cpw.gap")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, gap)
}

func TestViewSub(t *testing.T) {
	opts := sampleOptions()
	v := New(opts, nil)
	cpw, err := v.Sub("cpw")
	require.NoError(t, err)

	w, err := cpw.Float("width")
	require.NoError(t, err)
	assert.Equal(t, 10.0, w)

	require.NoError(t, opts.SetPath("cpw.width", "12um"))
	w, err = cpw.Float("width")
	require.NoError(t, err)
	assert.Equal(t, 12.0, w)

	_, err = v.Sub("width")
	assert.ErrorIs(t, err, ErrType)
}

func TestViewReadOnly(t *testing.T) {
	opts := sampleOptions()
	v := New(opts, nil)

	tree, err := v.Tree()
	require.NoError(t, err)
	tree.Set("width", "100um")

	got, err := v.Get("cpw")
	require.NoError(t, err)
	got.(*options.Options).Set("gap", "100um")

	w, err := v.Float("width")
	require.NoError(t, err)
	assert.Equal(t, 1.0, w)
	gap, err := v.Float("cpw.gap")
	require.NoError(t, err)
	assert.Equal(t, 6.0, gap)
}

func TestViewErrors(t *testing.T) {
	opts := sampleOptions()
	v := New(opts, nil)

	_, err := v.Float("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = v.Float("chip")
	assert.ErrorIs(t, err, ErrType)

	_, err = v.Bool("width")
	assert.ErrorIs(t, err, ErrType)

	opts.Set("n", "2.5")
	_, err = v.Int("n")
	assert.ErrorIs(t, err, ErrType)

	opts.Set("width", "1furlong")
	_, err = v.Float("n")
	var pe *units.ParseError
	require.True(t, errors.As(err, &pe), "a bad unit anywhere fails every read")
	assert.Equal(t, "width", pe.Path)
}

func TestViewCustomTable(t *testing.T) {
	mm, err := units.NewTable("mm", nil)
	require.NoError(t, err)
	v := New(sampleOptions(), mm)
	w, err := v.Float("width")
	require.NoError(t, err)
	assert.InDelta(t, 0.001, w, 1e-15)
	assert.Equal(t, "mm", v.Units().Base())
}

func TestReaderStickyError(t *testing.T) {
	r := New(sampleOptions(), nil).Reader()
	n := r.Int("n")
	_ = r.Float("chip")
	w := r.Float("width")

	assert.Equal(t, 3, n)
	assert.Equal(t, 0.0, w, "reads after a failure return zero")
	assert.ErrorIs(t, r.Err(), ErrType)
}

// TestNumberRejectsUnits 角度等无量纲参数不接受长度单位。
func TestNumberRejectsUnits(t *testing.T) {
	opts := options.New(
		options.P("rotation", "90"),
		options.P("tilt", 45.0),
		options.P("bad", "90um"),
		options.P("nested", options.New(options.P("angle", "-30"))),
	)
	v := New(opts, nil)

	rot, err := v.Number("rotation")
	require.NoError(t, err)
	assert.Equal(t, 90.0, rot)

	tilt, err := v.Number("tilt")
	require.NoError(t, err)
	assert.Equal(t, 45.0, tilt)

	_, err = v.Number("bad")
	assert.ErrorIs(t, err, ErrType)

	sub, err := v.Sub("nested")
	require.NoError(t, err)
	a, err := sub.Number("angle")
	require.NoError(t, err)
	assert.Equal(t, -30.0, a)

	r := v.Reader()
	_ = r.Number("bad")
	assert.ErrorIs(t, r.Err(), ErrType)
}

func TestIntRejectsOutOfRange(t *testing.T) {
	v := New(options.New(options.P("n", "1e30"), options.P("m", "1e10")), nil)
	_, err := v.Int("n")
	assert.ErrorIs(t, err, ErrType)

	m, err := v.Int("m")
	require.NoError(t, err)
	assert.Equal(t, 10000000000, m)
}
