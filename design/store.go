package design

import (
	"sort"
	"sync"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/pin"
)

// Store holds the committed geometry and pins of every component. Each
// component's registrations live in one immutable snapshot that is replaced
// as a whole, so a reader sees either the old or the new set, never a mix.
// Commits for different components do not contend.
type Store struct {
	snaps sync.Map // component name → *component.Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Commit replaces everything registered for name with snap.
func (s *Store) Commit(name string, snap component.Snapshot) {
	c := snap.Clone()
	s.snaps.Store(name, &c)
}

// Revoke removes every entry of name and reports whether any existed.
func (s *Store) Revoke(name string) bool {
	_, ok := s.snaps.LoadAndDelete(name)
	return ok
}

// Snapshot returns a copy of the committed registrations of name.
func (s *Store) Snapshot(name string) (component.Snapshot, bool) {
	snap, ok := s.load(name)
	if !ok {
		return component.Snapshot{}, false
	}
	return snap.Clone(), true
}

// Geometry looks up a single entry by (component, entry) key.
func (s *Store) Geometry(name, entry string) (geometry.Entry, bool) {
	snap, ok := s.load(name)
	if !ok {
		return geometry.Entry{}, false
	}
	e, ok := snap.Geometry[entry]
	if !ok {
		return geometry.Entry{}, false
	}
	return e.Clone(), true
}

// Pin looks up a single pin by (component, pin) key.
func (s *Store) Pin(name, pinName string) (pin.Pin, bool) {
	snap, ok := s.load(name)
	if !ok {
		return pin.Pin{}, false
	}
	p, ok := snap.Pins[pinName]
	return p, ok
}

// Components lists the components with committed registrations.
func (s *Store) Components() []string {
	var out []string
	s.snaps.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	sort.Strings(out)
	return out
}

// Entries returns every committed geometry entry ordered by key.
func (s *Store) Entries() []geometry.Entry {
	var out []geometry.Entry
	for _, name := range s.Components() {
		snap, ok := s.load(name)
		if !ok {
			continue
		}
		for _, entry := range snap.GeometryNames() {
			out = append(out, snap.Geometry[entry].Clone())
		}
	}
	return out
}

// FabricationEntries returns Entries without helper geometry.
func (s *Store) FabricationEntries() []geometry.Entry {
	all := s.Entries()
	out := all[:0]
	for _, e := range all {
		if !e.Helper {
			out = append(out, e)
		}
	}
	return out
}

// Pins returns every committed pin ordered by key.
func (s *Store) Pins() []pin.Pin {
	var out []pin.Pin
	for _, name := range s.Components() {
		snap, ok := s.load(name)
		if !ok {
			continue
		}
		for _, p := range snap.PinNames() {
			out = append(out, snap.Pins[p])
		}
	}
	return out
}

func (s *Store) load(name string) (*component.Snapshot, bool) {
	v, ok := s.snaps.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*component.Snapshot), true
}
