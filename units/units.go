package units

import (
	"fmt"
	"math"
	"sort"
)

// This file defines the unit vocabulary and the conversion table used to
// normalize lengths into a single base unit.

// DefaultBase is the base unit used when no project configuration is loaded.
const DefaultBase = "um"

// Quantity is a length already expressed in the table's base unit.
type Quantity float64

// Float returns q as a plain float64.
func (q Quantity) Float() float64 { return float64(q) }

// Length preserves a numeric value with the unit written by the author.
// Unit is empty for unit-less literals.
type Length struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// String formats l the way it would be written in an option value.
func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

// Sizes of the built-in vocabulary in nanometres. Every decimal unit is an
// exact integer here, so ratios between them (mm to um is 1e6/1e3) come out
// exact in float64. Any entry can act as the base unit of a Table.
var builtinNanometers = map[string]float64{
	"nm":     1,
	"um":     1e3,
	"µm":     1e3,
	"μm":     1e3,
	"micron": 1e3,
	"mm":     1e6,
	"cm":     1e7,
	"m":      1e9,
	"mil":    25400,
	"in":     25.4e6,
}

// Table converts lengths into its base unit. A Table is immutable once built
// and safe for concurrent use.
type Table struct {
	base string
	nm   map[string]float64
}

var defaultTable = mustTable(DefaultBase, nil)

// DefaultTable returns the built-in table with base unit "um".
func DefaultTable() *Table { return defaultTable }

// NewTable builds a table whose base unit is base. extra adds to (or
// overrides) the built-in vocabulary; values are meters per unit.
func NewTable(base string, extra map[string]float64) (*Table, error) {
	nm := make(map[string]float64, len(builtinNanometers)+len(extra))
	for name, size := range builtinNanometers {
		nm[name] = size
	}
	for name, m := range extra {
		if name == "" {
			return nil, fmt.Errorf("units: empty unit name")
		}
		if !isUnitName(name) {
			return nil, fmt.Errorf("units: invalid unit name %q", name)
		}
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("units: unit %q has invalid scale %g", name, m)
		}
		nm[name] = m * 1e9
	}
	if base == "" {
		base = DefaultBase
	}
	if _, ok := nm[base]; !ok {
		return nil, fmt.Errorf("units: base unit %q: %w", base, ErrUnknownUnit)
	}
	return &Table{base: base, nm: nm}, nil
}

func mustTable(base string, extra map[string]float64) *Table {
	t, err := NewTable(base, extra)
	if err != nil {
		panic(err)
	}
	return t
}

// Base returns the name of the base unit.
func (t *Table) Base() string { return t.base }

// Scale returns the factor that converts one unit into the base unit.
func (t *Table) Scale(unit string) (float64, bool) {
	if unit == "" {
		return 1, true
	}
	size, ok := t.nm[unit]
	if !ok {
		return 0, false
	}
	return size / t.nm[t.base], true
}

// Units lists the vocabulary in sorted order.
func (t *Table) Units() []string {
	out := make([]string, 0, len(t.nm))
	for name := range t.nm {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Convert normalizes l into the base unit.
func (t *Table) Convert(l Length) (Quantity, error) {
	scale, ok := t.Scale(l.Unit)
	if !ok {
		return 0, &ParseError{Token: l.Unit, Err: ErrUnknownUnit}
	}
	return Quantity(l.Value * scale), nil
}

// ParseQuantity parses s and converts it into the base unit. A literal
// without a unit is taken to be in the base unit already.
func (t *Table) ParseQuantity(s string) (Quantity, error) {
	l, err := ParseLength(s)
	if err != nil {
		return 0, err
	}
	q, err := t.Convert(l)
	if err != nil {
		var pe *ParseError
		if asParseError(err, &pe) {
			pe.Input = s
		}
		return 0, err
	}
	return q, nil
}
