// Package options holds component parameters as ordered, nested mappings.
//
// An Options value owns all of its nested structure: storing a nested
// *Options or map copies it, so two Options never alias the same mutable
// node. Every mutation anywhere in a tree bumps the revision of its root,
// which lets derived views detect staleness.
package options

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrNotMapping reports a path step that crosses a non-mapping value.
	ErrNotMapping = errors.New("options: value is not a mapping")
	// ErrEmptyKey reports an empty key or path segment.
	ErrEmptyKey = errors.New("options: empty key")
)

// Pair is one key/value entry used to build Options in order.
type Pair struct {
	Key   string
	Value any
}

// P is shorthand for Pair{Key: key, Value: value}.
func P(key string, value any) Pair { return Pair{Key: key, Value: value} }

// Options is an ordered mapping from parameter name to value. Values are
// strings, numbers, booleans, lists ([]any) or nested *Options.
type Options struct {
	entries *orderedmap.OrderedMap[string, any]
	rev     *atomic.Uint64
}

// New builds Options from pairs, keeping their order. A repeated key keeps
// its first position and its last value.
func New(pairs ...Pair) *Options {
	o := empty(new(atomic.Uint64))
	for _, p := range pairs {
		o.Set(p.Key, p.Value)
	}
	return o
}

// FromMap converts a plain map, ordering keys lexically.
func FromMap(m map[string]any) *Options {
	return fromMap(m, new(atomic.Uint64))
}

func fromMap(m map[string]any, rev *atomic.Uint64) *Options {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := empty(rev)
	for _, k := range keys {
		o.entries.Set(k, o.adopt(m[k]))
	}
	return o
}

func empty(rev *atomic.Uint64) *Options {
	return &Options{entries: orderedmap.New[string, any](), rev: rev}
}

// Len returns the number of keys at this level.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return o.entries.Len()
}

// Keys returns the keys at this level in insertion order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, o.entries.Len())
	for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Has reports whether key exists at this level.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Get returns the value stored under key. Nested *Options are returned
// live: mutating them mutates o.
func (o *Options) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	return o.entries.Get(key)
}

// Set stores value under key, copying any nested structure.
func (o *Options) Set(key string, value any) {
	o.entries.Set(key, o.adopt(value))
	o.touch()
}

// Delete removes key and reports whether it was present.
func (o *Options) Delete(key string) bool {
	_, ok := o.entries.Delete(key)
	if ok {
		o.touch()
	}
	return ok
}

// GetPath resolves a dotted path such as "cpw.width".
func (o *Options) GetPath(path string) (any, bool) {
	cur := o
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		v, ok := cur.Get(seg)
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		next, ok := v.(*Options)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetPath stores value at a dotted path, creating intermediate mappings.
func (o *Options) SetPath(path string, value any) error {
	segs := strings.Split(path, ".")
	cur := o
	for i, seg := range segs {
		if seg == "" {
			return fmt.Errorf("%w in path %q", ErrEmptyKey, path)
		}
		if i == len(segs)-1 {
			cur.Set(seg, value)
			return nil
		}
		v, ok := cur.Get(seg)
		if !ok {
			child := empty(cur.rev)
			cur.entries.Set(seg, child)
			cur = child
			continue
		}
		child, ok := v.(*Options)
		if !ok {
			return fmt.Errorf("%w: %q in path %q", ErrNotMapping, seg, path)
		}
		cur = child
	}
	return nil
}

// Clone returns a deep copy with its own revision counter.
func (o *Options) Clone() *Options {
	if o == nil {
		return New()
	}
	return o.cloneInto(new(atomic.Uint64))
}

func (o *Options) cloneInto(rev *atomic.Uint64) *Options {
	out := empty(rev)
	for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
		out.entries.Set(pair.Key, out.adopt(pair.Value))
	}
	return out
}

// Revision returns a counter that changes whenever the tree is mutated.
func (o *Options) Revision() uint64 {
	if o == nil {
		return 0
	}
	return o.rev.Load()
}

// ToMap converts o into plain nested maps, dropping key order.
func (o *Options) ToMap() map[string]any {
	out := make(map[string]any, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out[k] = plain(v)
	}
	return out
}

// MarshalJSON encodes o as a JSON object with keys in order.
func (o *Options) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.entries.MarshalJSON()
}

func (o *Options) touch() { o.rev.Add(1) }

// adopt copies value into o's tree, sharing o's revision counter.
func (o *Options) adopt(value any) any {
	switch v := value.(type) {
	case *Options:
		if v == nil {
			return empty(o.rev)
		}
		return v.cloneInto(o.rev)
	case map[string]any:
		return fromMap(v, o.rev)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = o.adopt(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	default:
		return value
	}
}

func plain(v any) any {
	switch t := v.(type) {
	case *Options:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
