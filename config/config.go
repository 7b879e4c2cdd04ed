// Package config loads the optional HCL project file:
//
//	base_unit    = "um"
//	default_chip = "main"
//
//	unit "kmil" {
//	  meters = 2.54e-2
//	}
//
// Every attribute and block is optional.
package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/design"
	"github.com/ByLCY/lithos/units"
)

// File mirrors the project file.
type File struct {
	BaseUnit    string     `hcl:"base_unit,optional"`
	DefaultChip string     `hcl:"default_chip,optional"`
	Units       []UnitDecl `hcl:"unit,block"`
}

// UnitDecl adds a unit to the vocabulary, given as its size in meters.
type UnitDecl struct {
	Name   string  `hcl:"name,label"`
	Meters float64 `hcl:"meters"`
}

// Config is the resolved project configuration.
type Config struct {
	Units       *units.Table
	DefaultChip string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Units: units.DefaultTable(), DefaultChip: component.DefaultChip}
}

// Load reads the project file at path. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	var f File
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return f.resolve()
}

// Parse decodes src as if read from filename, which must end in ".hcl".
func Parse(filename string, src []byte) (*Config, error) {
	if !strings.HasSuffix(filename, ".hcl") {
		return nil, fmt.Errorf("config: %s: expected a .hcl file", filename)
	}
	var f File
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return f.resolve()
}

func (f File) resolve() (*Config, error) {
	base := f.BaseUnit
	if base == "" {
		base = units.DefaultBase
	}
	var extra map[string]float64
	if len(f.Units) > 0 {
		extra = make(map[string]float64, len(f.Units))
		for _, u := range f.Units {
			if _, dup := extra[u.Name]; dup {
				return nil, fmt.Errorf("config: unit %q declared twice", u.Name)
			}
			extra[u.Name] = u.Meters
		}
	}
	table, err := units.NewTable(base, extra)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	chip := f.DefaultChip
	if chip == "" {
		chip = component.DefaultChip
	}
	return &Config{Units: table, DefaultChip: chip}, nil
}

// DesignOptions turns c into design.New options.
func (c *Config) DesignOptions() []design.Option {
	return []design.Option{design.WithUnits(c.Units), design.WithDefaultChip(c.DefaultChip)}
}
