package options

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spiralDefaults() *Template {
	return NewTemplate(
		P("n", "3"),
		P("width", "1um"),
		P("radius", "40um"),
		P("cpw", New(P("gap", "6um"), P("width", "10um"))),
		P("chip", "main"),
	)
}

func TestNewKeepsOrder(t *testing.T) {
	o := New(P("b", 1), P("a", 2), P("c", 3), P("a", 4))
	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, 4, v)
}

func TestInstantiateMergesOverrides(t *testing.T) {
	tpl := spiralDefaults()
	got := tpl.Instantiate(New(
		P("radius", "10um"),
		P("cpw", New(P("gap", "2um"))),
		P("pos_x", "5um"),
	))

	assert.Equal(t, []string{"n", "width", "radius", "cpw", "chip", "pos_x"}, got.Keys())
	v, _ := got.Get("radius")
	assert.Equal(t, "10um", v)
	v, _ = got.GetPath("cpw.gap")
	assert.Equal(t, "2um", v)
	v, _ = got.GetPath("cpw.width")
	assert.Equal(t, "10um", v, "sibling keys of a nested override survive")
	v, _ = got.Get("pos_x")
	assert.Equal(t, "5um", v, "unknown override keys are accepted")
}

func TestInstantiateNeverAliasesDefaults(t *testing.T) {
	tpl := spiralDefaults()
	a := tpl.Instantiate(nil)
	b := tpl.Instantiate(nil)

	require.NoError(t, a.SetPath("cpw.gap", "99um"))
	a.Set("n", "7")

	v, _ := b.GetPath("cpw.gap")
	assert.Equal(t, "6um", v)
	v, _ = tpl.Get("cpw")
	sub := v.(*Options)
	got, _ := sub.Get("gap")
	assert.Equal(t, "6um", got)

	// 模板返回的嵌套值是副本
	sub.Set("gap", "1um")
	v, _ = tpl.Get("cpw")
	got, _ = v.(*Options).Get("gap")
	assert.Equal(t, "6um", got)
}

func TestMergeOverrideReplacesScalarWithMapping(t *testing.T) {
	dst := New(P("a", "1um"))
	Merge(dst, New(P("a", New(P("x", "2um")))))
	v, ok := dst.GetPath("a.x")
	require.True(t, ok)
	assert.Equal(t, "2um", v)
}

func TestMergeDoesNotAliasSource(t *testing.T) {
	src := New(P("cpw", New(P("gap", "1um"))))
	dst := New()
	Merge(dst, src)

	require.NoError(t, src.SetPath("cpw.gap", "5um"))
	v, _ := dst.GetPath("cpw.gap")
	assert.Equal(t, "1um", v)
}

func TestRevisionTracksNestedMutation(t *testing.T) {
	o := New(P("cpw", New(P("gap", "1um"))))
	r0 := o.Revision()

	v, _ := o.Get("cpw")
	v.(*Options).Set("gap", "2um")
	r1 := o.Revision()
	assert.Greater(t, r1, r0)

	require.NoError(t, o.SetPath("cpw.width", "3um"))
	assert.Greater(t, o.Revision(), r1)

	clone := o.Clone()
	r2 := o.Revision()
	clone.Set("n", "1")
	assert.Equal(t, r2, o.Revision(), "clones have their own counter")
}

func TestSetPathErrors(t *testing.T) {
	o := New(P("width", "1um"))
	assert.ErrorIs(t, o.SetPath("width.inner", "1um"), ErrNotMapping)
	assert.ErrorIs(t, o.SetPath("a..b", "1um"), ErrEmptyKey)

	require.NoError(t, o.SetPath("a.b.c", "1um"))
	v, ok := o.GetPath("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "1um", v)
}

func TestFromMapSortsKeys(t *testing.T) {
	o := FromMap(map[string]any{"z": "1", "a": map[string]any{"y": "2", "b": "3"}})
	assert.Equal(t, []string{"a", "z"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, []string{"b", "y"}, v.(*Options).Keys())
}

func TestMarshalJSONOrdered(t *testing.T) {
	data, err := json.Marshal(spiralDefaults())
	require.NoError(t, err)
	assert.Equal(t, `{"n":"3","width":"1um","radius":"40um","cpw":{"gap":"6um","width":"10um"},"chip":"main"}`, string(data))
}

func TestOverrides(t *testing.T) {
	o, err := Overrides([]string{"radius=10um", "cpw.gap = 2um"})
	require.NoError(t, err)
	v, _ := o.GetPath("cpw.gap")
	assert.Equal(t, "2um", v)

	_, err = Overrides([]string{"novalue"})
	assert.Error(t, err)
	_, err = Overrides([]string{"=1um"})
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	m := spiralDefaults().Options().ToMap()
	assert.Equal(t, "6um", m["cpw"].(map[string]any)["gap"])
}
