package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lithos/units"
)

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "um", c.Units.Base())
	assert.Equal(t, "main", c.DefaultChip)
	assert.Len(t, c.DesignOptions(), 2)
}

func TestParseProjectFile(t *testing.T) {
	src := []byte(`
base_unit    = "mm"
default_chip = "flip"

unit "kmil" {
  meters = 2.54e-2
}
`)
	c, err := Parse("project.hcl", src)
	require.NoError(t, err)
	assert.Equal(t, "mm", c.Units.Base())
	assert.Equal(t, "flip", c.DefaultChip)

	q, err := c.Units.ParseQuantity("1kmil")
	require.NoError(t, err)
	assert.InDelta(t, 25.4, q.Float(), 1e-9)
	assert.Contains(t, c.Units.Units(), "kmil")
}

func TestParseEmptyFile(t *testing.T) {
	c, err := Parse("empty.hcl", nil)
	require.NoError(t, err)
	assert.Equal(t, units.DefaultBase, c.Units.Base())
	assert.Equal(t, "main", c.DefaultChip)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("project.json", []byte(`{}`))
	assert.Error(t, err)

	_, err = Parse("bad.hcl", []byte(`base_unit = "furlong"`))
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	_, err = Parse("bad.hcl", []byte(`unit "x" { meters = -1 }`))
	assert.Error(t, err)

	_, err = Parse("bad.hcl", []byte("unit \"x\" {\n  meters = 1\n}\nunit \"x\" {\n  meters = 2\n}\n"))
	assert.ErrorContains(t, err, "declared twice")

	_, err = Parse("bad.hcl", []byte(`colour = "red"`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lithos.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`default_chip = "top"`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "top", c.DefaultChip)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
