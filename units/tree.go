package units

import (
	"errors"

	"github.com/ByLCY/lithos/options"
)

// ParseValue resolves a single option value. Length literals become
// Quantities; other strings, numbers and booleans come back as they are.
// Nested *options.Options are walked recursively into a new tree, and lists
// are copied without being parsed. path names the value inside its
// enclosing structure and is only used in errors.
func (t *Table) ParseValue(path string, v any) (any, error) {
	switch x := v.(type) {
	case string:
		if !IsQuantityLiteral(x) {
			return x, nil
		}
		q, err := t.ParseQuantity(x)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
			}
			return nil, err
		}
		return q, nil
	case *options.Options:
		return t.ParseOptions(path, x)
	case []any:
		return copyList(x), nil
	default:
		return v, nil
	}
}

// copyList copies a list without parsing its items.
func copyList(list []any) []any {
	out := make([]any, len(list))
	for i, item := range list {
		switch x := item.(type) {
		case *options.Options:
			out[i] = x.Clone()
		case []any:
			out[i] = copyList(x)
		default:
			out[i] = item
		}
	}
	return out
}

// ParseOptions returns a copy of o with every length literal resolved. o is
// left untouched.
func (t *Table) ParseOptions(path string, o *options.Options) (*options.Options, error) {
	out := options.New()
	for _, key := range o.Keys() {
		v, _ := o.Get(key)
		p := key
		if path != "" {
			p = path + "." + key
		}
		parsed, err := t.ParseValue(p, v)
		if err != nil {
			return nil, err
		}
		out.Set(key, parsed)
	}
	return out, nil
}
