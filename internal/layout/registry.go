package layout

import (
	"github.com/swl-wm/swl/internal/swlerr"
)

// Registry is a name-unique table of Layout descriptors, shared
// process-wide the way the dwl-derived original's layout registry is
// — Layout values are effectively static once registered.
type Registry struct {
	byName map[string]*Layout
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Layout)}
}

// Register adds l. Returns ErrAlreadyExists if the name is taken.
func (r *Registry) Register(l *Layout) error {
	if l == nil || l.Name == "" || l.Arrange == nil {
		return swlerr.ErrInvalidArg
	}
	if _, exists := r.byName[l.Name]; exists {
		return swlerr.ErrAlreadyExists
	}
	r.byName[l.Name] = l
	r.order = append(r.order, l.Name)
	return nil
}

// Unregister removes a layout by name.
func (r *Registry) Unregister(name string) error {
	if _, ok := r.byName[name]; !ok {
		return swlerr.ErrNotFound
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get looks a layout up by name.
func (r *Registry) Get(name string) (*Layout, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// Names lists every registered layout name, in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RegisterBuiltins registers scroller, floating, tile and monocle —
// the four built-in algorithms of §4.4 — in that order.
func (r *Registry) RegisterBuiltins() {
	r.Register(Scroller())
	r.Register(Floating())
	r.Register(Tile())
	r.Register(Monocle())
}
