package client

import (
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/rule"
	"github.com/swl-wm/swl/internal/swlerr"
)

// Arranger lets the Manager trigger a Monitor's arrange routine
// without importing the monitor package, avoiding an import cycle
// (the monitor package needs to enumerate this manager's clients).
type Arranger interface {
	Arrange(m handle.Handle)
}

// Manager exclusively owns every Client for the process.
type Manager struct {
	arena *handle.Arena[Client]

	order      []handle.Handle // all-clients list, insertion order
	focusStack []handle.Handle // most-recently-focused first

	nextID  uint32
	focused handle.Handle

	bus      *eventbus.Bus
	rules    *rule.Engine
	arranger Arranger

	commits map[handle.Handle]bool
}

func NewManager(bus *eventbus.Bus, rules *rule.Engine, arranger Arranger) *Manager {
	return &Manager{
		arena:    handle.NewArena[Client](),
		nextID:   1,
		bus:      bus,
		rules:    rules,
		arranger: arranger,
	}
}

// SetArranger wires the Monitor arranger after construction, for the
// common case where the output manager itself depends on this
// Manager and so cannot exist yet at NewManager time.
func (m *Manager) SetArranger(arranger Arranger) {
	m.arranger = arranger
}

// CreateParams supplies the attributes known at toplevel-creation
// time, before the surface has produced an app id or title.
type CreateParams struct {
	Surface    any
	HasParent  bool // surface declares a parent (dialog-shaped)
	FixedSize  bool // min/max size fixed equal (dialog-shaped)
	Monitor    handle.Handle
	OutputName string
}

// Create inserts a new, unmapped Client at the head of both the
// all-clients list and the focus stack. Grounded on client_create in
// client.c: two surface-protocol entry points share this logic.
func (m *Manager) Create(p CreateParams) (handle.Handle, *Client, error) {
	c := Client{
		ID:                   m.nextID,
		Surface:              p.Surface,
		Floating:             p.HasParent || p.FixedSize,
		Tags:                 1,
		Monitor:              p.Monitor,
		RememberedOutputName: p.OutputName,
	}
	h := m.arena.Insert(c)
	m.nextID++

	m.order = append([]handle.Handle{h}, m.order...)
	m.focusStack = append([]handle.Handle{h}, m.focusStack...)

	cp, _ := m.arena.Get(h)
	return h, cp, nil
}

// Get resolves a weak reference, failing if the Client was destroyed
// or the handle never existed.
func (m *Manager) Get(h handle.Handle) (*Client, bool) {
	return m.arena.Get(h)
}

// Each visits every live Client in arena order, for callers (IPC's
// get-windows) that need a full snapshot rather than one lookup.
func (m *Manager) Each(fn func(h handle.Handle, c *Client)) {
	m.arena.Each(fn)
}

// Map transitions a Client to mapped, applies rules, grants initial
// focus, and emits CLIENT_CREATE. Grounded on the "Map" step of §4.5.
func (m *Manager) Map(h handle.Handle, appID, title string) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	c.AppID = appID
	c.Title = title

	if m.rules != nil {
		if match, found := m.rules.Apply(rule.Subject{AppID: appID, Title: title}); found {
			if match.Rule.ForcedFloating {
				c.Floating = true
			}
			if match.Rule.ForcedTags != 0 {
				c.Tags = match.Rule.ForcedTags
			}
		}
	}

	c.Mapped = true

	if err := m.Focus(h); err != nil {
		return err
	}

	m.emit(eventbus.ClientCreate, c)
	m.arrangeMonitor(c.Monitor)
	return nil
}

// Unmap clears mapped, re-homes focus if this Client held it, and
// rearranges its Monitor.
func (m *Manager) Unmap(h handle.Handle) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	c.Mapped = false

	if m.focused == h {
		m.focused = handle.Handle{}
		c.Focused = false
		for _, cand := range m.focusStack {
			if cand == h {
				continue
			}
			if cc, ok := m.arena.Get(cand); ok && cc.Mapped {
				_ = m.Focus(cand)
				break
			}
		}
	}

	m.arrangeMonitor(c.Monitor)
	return nil
}

// Destroy removes a Client from every list, invalidates its weak
// references (via the generational arena), and emits CLIENT_DESTROY.
func (m *Manager) Destroy(h handle.Handle) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	if m.focused == h {
		m.focused = handle.Handle{}
	}

	m.order = removeHandle(m.order, h)
	m.focusStack = removeHandle(m.focusStack, h)

	m.emit(eventbus.ClientDestroy, c)
	m.arena.Remove(h)
	delete(m.commits, h)
	return nil
}

func removeHandle(list []handle.Handle, h handle.Handle) []handle.Handle {
	out := list[:0]
	for _, e := range list {
		if e != h {
			out = append(out, e)
		}
	}
	return out
}

func (m *Manager) emit(t eventbus.Type, c *Client) {
	if m.bus == nil {
		return
	}
	m.bus.EmitSimple(t, c.Info())
}

func (m *Manager) arrangeMonitor(mh handle.Handle) {
	if m.arranger == nil || !mh.Valid() {
		return
	}
	m.arranger.Arrange(mh)
}

// EffectiveTags returns the effective (never-zero) tag mask for c.
func (c *Client) EffectiveTags() uint32 {
	return effectiveTags(c.Tags)
}
