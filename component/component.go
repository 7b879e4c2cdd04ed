// Package component defines the contract every parametric component
// implements and the build context through which it registers geometry
// and pins.
//
// A component never writes to a host store directly. Build stages its
// registrations in a BuildContext; the host swaps the staged Snapshot in
// only after Build returns without error.
package component

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/ByLCY/lithos/options"
)

// Component is implemented by every concrete component type.
type Component interface {
	// DefaultOptions returns the type's default parameters. The template is
	// shared by all instances and never mutated.
	DefaultOptions() *options.Template
	// Build reads ctx.Params and registers geometry and pins on ctx.
	Build(ctx *BuildContext) error
}

// Describer is optionally implemented to document a component type.
type Describer interface {
	Description() string
}

// TypeName returns a short lower-case name for c's concrete type, used to
// derive instance names.
func TypeName(c Component) string {
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// Factory creates a fresh component value.
type Factory func() Component

// Registry maps type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a component type under name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("component: register %q: empty name or nil factory", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("component: type %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// New instantiates the type registered under name.
func (r *Registry) New(name string) (Component, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("component: unknown type %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f(), nil
}

// Names lists registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
