package component

import (
	"errors"
	"sort"

	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/params"
	"github.com/ByLCY/lithos/pin"
)

// DefaultChip is used when neither the options nor the host name a chip.
const DefaultChip = "main"

// Snapshot is everything one build of one component registered.
type Snapshot struct {
	Geometry map[string]geometry.Entry `json:"geometry"`
	Pins     map[string]pin.Pin        `json:"pins"`
}

// Clone copies the maps and coordinate slices of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Geometry: make(map[string]geometry.Entry, len(s.Geometry)),
		Pins:     make(map[string]pin.Pin, len(s.Pins)),
	}
	for k, e := range s.Geometry {
		out.Geometry[k] = e.Clone()
	}
	for k, p := range s.Pins {
		out.Pins[k] = p
	}
	return out
}

// GeometryNames lists entry names in sorted order.
func (s Snapshot) GeometryNames() []string { return sortedKeys(s.Geometry) }

// PinNames lists pin names in sorted order.
func (s Snapshot) PinNames() []string { return sortedKeys(s.Pins) }

// BuildContext is handed to Component.Build. It is not safe for concurrent
// use; a build runs on one goroutine.
type BuildContext struct {
	name        string
	defaultChip string
	view        *params.View
	staged      Snapshot
}

// NewBuildContext prepares a context for the component instance name.
func NewBuildContext(name string, view *params.View, defaultChip string) *BuildContext {
	if defaultChip == "" {
		defaultChip = DefaultChip
	}
	return &BuildContext{
		name:        name,
		defaultChip: defaultChip,
		view:        view,
		staged: Snapshot{
			Geometry: map[string]geometry.Entry{},
			Pins:     map[string]pin.Pin{},
		},
	}
}

// Name returns the instance name.
func (c *BuildContext) Name() string { return c.name }

// Params returns the parsed parameters of the instance.
func (c *BuildContext) Params() *params.View { return c.view }

// Reader returns a sticky-error reader over Params.
func (c *BuildContext) Reader() *params.Reader { return c.view.Reader() }

// Chip returns the instance's "chip" option. A missing or empty option
// selects the host default; any other value that is not a string is an
// error.
func (c *BuildContext) Chip() (string, error) {
	chip, err := c.view.String("chip")
	switch {
	case errors.Is(err, params.ErrNotFound):
		return c.defaultChip, nil
	case err != nil:
		return "", err
	case chip == "":
		return c.defaultChip, nil
	}
	return chip, nil
}

// AddGeometry validates every payload and then stages all of them under
// the given kind and metadata. If any payload is invalid nothing is staged.
// Registering a name again replaces the earlier entry.
func (c *BuildContext) AddGeometry(kind geometry.Kind, payloads map[string]geometry.Payload, meta geometry.Metadata) error {
	names := sortedKeys(payloads)
	entries := make([]geometry.Entry, 0, len(names))
	for _, name := range names {
		e := geometry.Entry{
			Component: c.name,
			Name:      name,
			Kind:      kind,
			Payload:   payloads[name],
			Metadata:  meta,
		}
		if err := geometry.Validate(e); err != nil {
			return err
		}
		entries = append(entries, e.Clone())
	}
	for _, e := range entries {
		c.staged.Geometry[e.Name] = e
	}
	return nil
}

// AddPin derives and stages a pin on the instance's chip.
func (c *BuildContext) AddPin(name string, points []geometry.Point, width float64, mode pin.Mode) error {
	if name == "" {
		return &pin.PinError{Component: c.name, Err: errors.New("empty pin name")}
	}
	p, err := pin.New(name, points, width, mode)
	if err != nil {
		var pe *pin.PinError
		if errors.As(err, &pe) {
			pe.Component = c.name
		}
		return err
	}
	chip, err := c.Chip()
	if err != nil {
		return &pin.PinError{Component: c.name, Pin: name, Err: err}
	}
	p.Component = c.name
	p.Chip = chip
	c.staged.Pins[name] = p
	return nil
}

// Snapshot returns a copy of everything staged so far.
func (c *BuildContext) Snapshot() Snapshot { return c.staged.Clone() }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
