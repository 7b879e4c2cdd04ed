// Package params exposes a component's options after unit resolution.
//
// A View never holds its own copy of the parameters: it re-derives the parsed
// tree from the underlying options whenever their revision changes, so edits
// made through the options are visible on the next read.
package params

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/units"
)

var (
	// ErrNotFound reports a path with no value behind it.
	ErrNotFound = errors.New("parameter not found")
	// ErrType reports a value that cannot be read as the requested type.
	ErrType = errors.New("parameter has wrong type")
)

// source caches the parsed tree for one Options value.
type source struct {
	opts  *options.Options
	table *units.Table

	mu    sync.Mutex
	built bool
	rev   uint64
	tree  *options.Options
	err   error
}

func (s *source) parsed() (*options.Options, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev := s.opts.Revision()
	if s.built && rev == s.rev {
		return s.tree, s.err
	}
	s.tree, s.err = s.table.ParseOptions("", s.opts)
	s.rev = rev
	s.built = true
	return s.tree, s.err
}

// View is a read-only, unit-resolved projection of an Options tree.
type View struct {
	src    *source
	prefix string
}

// New returns a view over opts. A nil table selects units.DefaultTable.
func New(opts *options.Options, table *units.Table) *View {
	if table == nil {
		table = units.DefaultTable()
	}
	return &View{src: &source{opts: opts, table: table}}
}

// Units returns the conversion table the view resolves against.
func (v *View) Units() *units.Table { return v.src.table }

// Sub returns a view rooted at a nested mapping.
func (v *View) Sub(path string) (*View, error) {
	val, err := v.lookup(path)
	if err != nil {
		return nil, err
	}
	if _, ok := val.(*options.Options); !ok {
		return nil, fmt.Errorf("params: %q is not a mapping: %w", v.full(path), ErrType)
	}
	return &View{src: v.src, prefix: v.full(path)}, nil
}

// Tree returns a copy of the parsed tree under this view.
func (v *View) Tree() (*options.Options, error) {
	val, err := v.lookup("")
	if err != nil {
		return nil, err
	}
	return val.(*options.Options).Clone(), nil
}

// Get returns the parsed value at path. Mappings and lists are copies.
func (v *View) Get(path string) (any, error) {
	val, err := v.lookup(path)
	if err != nil {
		return nil, err
	}
	return detach(val), nil
}

// Float reads a length or plain number.
func (v *View) Float(path string) (float64, error) {
	val, err := v.lookup(path)
	if err != nil {
		return 0, err
	}
	switch x := val.(type) {
	case units.Quantity:
		return x.Float(), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, v.typeError(path, "number", val)
}

// Int reads a number that must be integral, e.g. a turn count or layer.
func (v *View) Int(path string) (int, error) {
	if val, err := v.lookup(path); err == nil {
		if i, ok := val.(int); ok {
			return i, nil
		}
	}
	f, err := v.Float(path)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("params: %q: %g is not an integer: %w", v.full(path), f, ErrType)
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("params: %q: %g is out of integer range: %w", v.full(path), f, ErrType)
	}
	return int(f), nil
}

// Number reads a dimensionless number such as an angle in degrees. Unlike
// Float it rejects literals that carry a unit ("90um").
func (v *View) Number(path string) (float64, error) {
	f, err := v.Float(path)
	if err != nil {
		return 0, err
	}
	raw, err := resolvePath(v.src.opts, v.full(path))
	if err != nil {
		return 0, err
	}
	if s, ok := raw.(string); ok {
		l, err := units.ParseLength(s)
		if err != nil {
			return 0, err
		}
		if l.Unit != "" {
			return 0, fmt.Errorf("params: %q: %q carries unit %q, want a plain number: %w", v.full(path), s, l.Unit, ErrType)
		}
	}
	return f, nil
}

// String reads a plain string value.
func (v *View) String(path string) (string, error) {
	val, err := v.lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", v.typeError(path, "string", val)
	}
	return s, nil
}

// Bool reads a flag. Options carry flags as the strings "True"/"False";
// they are only converted here, at the typed accessor.
func (v *View) Bool(path string) (bool, error) {
	val, err := v.lookup(path)
	if err != nil {
		return false, err
	}
	switch x := val.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.TrimSpace(x) {
		case "True", "true":
			return true, nil
		case "False", "false":
			return false, nil
		}
	}
	return false, v.typeError(path, "flag", val)
}

func (v *View) lookup(path string) (any, error) {
	tree, err := v.src.parsed()
	if err != nil {
		return nil, err
	}
	return resolvePath(tree, v.full(path))
}

func (v *View) full(path string) string {
	switch {
	case v.prefix == "":
		return path
	case path == "":
		return v.prefix
	case strings.HasPrefix(path, "["):
		return v.prefix + path
	default:
		return v.prefix + "." + path
	}
}

func (v *View) typeError(path, want string, got any) error {
	return fmt.Errorf("params: %q: want %s, got %T (%v): %w", v.full(path), want, got, got, ErrType)
}

func detach(v any) any {
	switch x := v.(type) {
	case *options.Options:
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = detach(item)
		}
		return out
	default:
		return v
	}
}
