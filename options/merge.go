package options

import (
	"fmt"
	"strings"
)

// Merge overlays src onto dst key by key. When both sides hold a mapping
// under the same key the merge recurses; otherwise src wins. Keys unknown to
// dst are appended in src order. src is never aliased into dst.
func Merge(dst, src *Options) {
	if dst == nil || src == nil {
		return
	}
	for pair := src.entries.Oldest(); pair != nil; pair = pair.Next() {
		if sub, ok := pair.Value.(*Options); ok {
			if cur, ok := dst.Get(pair.Key); ok {
				if curSub, ok := cur.(*Options); ok {
					Merge(curSub, sub)
					continue
				}
			}
		}
		dst.Set(pair.Key, pair.Value)
	}
}

// Template is an immutable set of default options shared by every instance
// of a component type.
type Template struct {
	defaults *Options
}

// NewTemplate builds a template from ordered pairs.
func NewTemplate(pairs ...Pair) *Template {
	return &Template{defaults: New(pairs...)}
}

// Keys lists the top-level parameter names in declaration order.
func (t *Template) Keys() []string { return t.defaults.Keys() }

// Get returns the default under key. Nested values are copies.
func (t *Template) Get(key string) (any, bool) {
	v, ok := t.defaults.Get(key)
	if !ok {
		return nil, false
	}
	return detach(v), true
}

// Options returns a fresh deep copy of the defaults.
func (t *Template) Options() *Options { return t.defaults.Clone() }

// Instantiate deep-copies the defaults and merges overrides on top.
func (t *Template) Instantiate(overrides *Options) *Options {
	out := t.defaults.Clone()
	Merge(out, overrides)
	return out
}

// MarshalJSON encodes the defaults in declaration order.
func (t *Template) MarshalJSON() ([]byte, error) {
	return t.defaults.MarshalJSON()
}

func detach(v any) any {
	switch x := v.(type) {
	case *Options:
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

// ParseOverride splits "a.b=value" into its path and raw value.
func ParseOverride(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("options: override %q: expected key=value", s)
	}
	return key, strings.TrimSpace(value), nil
}

// Overrides builds Options from "key=value" strings; dotted keys nest.
func Overrides(assignments []string) (*Options, error) {
	out := New()
	for _, a := range assignments {
		key, value, err := ParseOverride(a)
		if err != nil {
			return nil, err
		}
		if err := out.SetPath(key, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}
