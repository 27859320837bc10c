package monitor

import (
	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/layout"
	"github.com/swl-wm/swl/internal/swlerr"
)

// LayoutRequestParams are the layout defaults a newly created Monitor
// seeds from the config store's appearance.* keys.
type LayoutRequestParams struct {
	MasterFactor  float64
	ScrollerRatio float64
	NMaster       int
	GapInnerH     int
	GapInnerV     int
	GapOuterH     int
	GapOuterV     int
	Layout        string
}

// Manager exclusively owns every Monitor for the process.
type Manager struct {
	arena *handle.Arena[Monitor]

	order   []handle.Handle
	focused handle.Handle

	nextID uint32

	bus     *eventbus.Bus
	layouts *layout.Registry
	clients *client.Manager
}

func NewManager(bus *eventbus.Bus, layouts *layout.Registry, clients *client.Manager) *Manager {
	return &Manager{
		arena:   handle.NewArena[Monitor](),
		nextID:  1,
		bus:     bus,
		layouts: layouts,
		clients: clients,
	}
}

// Arrange implements client.Arranger so the client manager can
// trigger a rearrange without importing this package.
func (m *Manager) Arrange(mh handle.Handle) {
	_ = m.ArrangeMonitor(mh)
}

// OnNewOutput allocates a Monitor seeded from defaults, appends it to
// the monitor order, marks it focused if it is the first
// Monitor, re-attaches any Client whose remembered output name
// matches, and emits MONITOR_ADD. Grounded on the "On new output"
// step of §4.6.
func (m *Manager) OnNewOutput(output any, name string, x, y, width, height int, params LayoutRequestParams) (handle.Handle, error) {
	if output == nil || name == "" {
		return handle.Handle{}, swlerr.ErrInvalidArg
	}

	mon := Monitor{
		ID:            m.nextID,
		Output:        output,
		Name:          name,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		UsableX:       x,
		UsableY:       y,
		UsableWidth:   width,
		UsableHeight:  height,
		LayoutName:    params.Layout,
		MasterFactor:  params.MasterFactor,
		ScrollerRatio: params.ScrollerRatio,
		NMaster:       params.NMaster,
		GapInnerH:     params.GapInnerH,
		GapInnerV:     params.GapInnerV,
		GapOuterH:     params.GapOuterH,
		GapOuterV:     params.GapOuterV,
		Tags:          1,
	}

	h := m.arena.Insert(mon)
	m.nextID++
	m.order = append(m.order, h)

	if len(m.order) == 1 {
		mp, _ := m.arena.Get(h)
		mp.Focused = true
		m.focused = h
	}

	if m.clients != nil {
		reattached := m.clients.ReattachByOutputName(name, h)
		if len(reattached) > 0 {
			m.ArrangeMonitor(h)
		}
	}

	mp, _ := m.arena.Get(h)
	if m.bus != nil {
		m.bus.EmitSimple(eventbus.MonitorAdd, monitorSnapshot(mp))
	}

	return h, nil
}

// Get resolves a weak reference to a Monitor.
func (m *Manager) Get(h handle.Handle) (*Monitor, bool) {
	return m.arena.Get(h)
}

// Each visits every live Monitor in arena order, for callers (IPC's
// get-monitors) that need a full snapshot rather than one lookup.
func (m *Manager) Each(fn func(h handle.Handle, mon *Monitor)) {
	m.arena.Each(fn)
}

// Destroy emits MONITOR_REMOVE, detaches every Client referencing
// this Monitor (preserving their remembered output name), and if this
// was the focused Monitor advances to the next entry or clears focus.
func (m *Manager) Destroy(h handle.Handle) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	if m.bus != nil {
		m.bus.EmitSimple(eventbus.MonitorRemove, monitorSnapshot(mon))
	}

	if m.clients != nil {
		m.clients.DetachFromMonitor(h)
	}

	idx := -1
	for i, e := range m.order {
		if e == h {
			idx = i
			break
		}
	}
	if idx >= 0 {
		m.order = append(m.order[:idx], m.order[idx+1:]...)
	}

	wasFocused := m.focused == h
	m.arena.Remove(h)

	if wasFocused {
		if len(m.order) > 0 {
			next := idx
			if next >= len(m.order) {
				next = len(m.order) - 1
			}
			m.focused = m.order[next]
			if mp, ok := m.arena.Get(m.focused); ok {
				mp.Focused = true
			}
		} else {
			m.focused = handle.Handle{}
		}
	}

	return nil
}

// Frame marks the on-frame bookkeeping point for an enabled output.
// The actual scene commit and frame-done timestamp are the rendering
// collaborator's responsibility; this hook exists so callers have a
// single place to route the frame signal through the manager.
func (m *Manager) Frame(h handle.Handle, onCommit func(mon *Monitor)) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	if onCommit != nil {
		onCommit(mon)
	}
	return nil
}

// AdjustMFact clamps master_factor into [0.05, 0.95] and rearranges.
func (m *Manager) AdjustMFact(h handle.Handle, delta float64) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	mon.MasterFactor = clampMFact(mon.MasterFactor + delta)
	return m.ArrangeMonitor(h)
}

// AdjustNMaster clamps nmaster to >=0 and rearranges.
func (m *Manager) AdjustNMaster(h handle.Handle, delta int) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	mon.NMaster = clampNMaster(mon.NMaster + delta)
	return m.ArrangeMonitor(h)
}

const (
	scrollerRatioMin = 0.1
	scrollerRatioMax = 0.9
)

// AdjustScrollerRatio clamps scroller_ratio into [0.1, 0.9] and
// rearranges, for the scroller layout's cycle-ratio action.
func (m *Manager) AdjustScrollerRatio(h handle.Handle, delta float64) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	ratio := mon.ScrollerRatio + delta
	if ratio < scrollerRatioMin {
		ratio = scrollerRatioMin
	}
	if ratio > scrollerRatioMax {
		ratio = scrollerRatioMax
	}
	mon.ScrollerRatio = ratio
	return m.ArrangeMonitor(h)
}

// FocusAdjacent focuses the next (forward) or previous Monitor in the
// order Monitors were added, wrapping circularly, and emits
// MONITOR_FOCUS.
func (m *Manager) FocusAdjacent(forward bool) (handle.Handle, error) {
	n := len(m.order)
	if n == 0 {
		return handle.Handle{}, swlerr.ErrNotFound
	}

	idx := -1
	for i, h := range m.order {
		if h == m.focused {
			idx = i
			break
		}
	}
	if idx < 0 {
		return handle.Handle{}, swlerr.ErrNotFound
	}

	var next int
	if forward {
		next = (idx + 1) % n
	} else {
		next = ((idx-1)%n + n) % n
	}
	nh := m.order[next]

	if prev, ok := m.arena.Get(m.focused); ok {
		prev.Focused = false
	}
	nmon, ok := m.arena.Get(nh)
	if !ok {
		return handle.Handle{}, swlerr.ErrNotFound
	}
	nmon.Focused = true
	m.focused = nh

	if m.bus != nil {
		m.bus.EmitSimple(eventbus.MonitorFocus, monitorSnapshot(nmon))
	}
	return nh, nil
}

// SetLayout switches a Monitor's active layout by name and rearranges.
func (m *Manager) SetLayout(h handle.Handle, name string) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	if m.layouts != nil {
		if _, ok := m.layouts.Get(name); !ok {
			return swlerr.ErrNotFound
		}
	}
	mon.LayoutName = name
	if m.bus != nil {
		m.bus.EmitSimple(eventbus.LayoutChange, monitorSnapshot(mon))
	}
	return m.ArrangeMonitor(h)
}

// SetUsableArea records the layer-shell collaborator's clipped
// rectangle and rearranges.
func (m *Manager) SetUsableArea(h handle.Handle, x, y, w, height int) error {
	mon, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	mon.UsableX, mon.UsableY, mon.UsableWidth, mon.UsableHeight = x, y, w, height
	return m.ArrangeMonitor(h)
}

// Focused returns the currently focused Monitor, if any.
func (m *Manager) Focused() (handle.Handle, *Monitor, bool) {
	mon, ok := m.arena.Get(m.focused)
	if !ok {
		return handle.Handle{}, nil, false
	}
	return m.focused, mon, true
}

// Snapshot is the read-only view exposed to the event bus and IPC.
type Snapshot struct {
	ID     uint32
	Name   string
	Layout string
}

func monitorSnapshot(m *Monitor) Snapshot {
	return Snapshot{ID: m.ID, Name: m.Name, Layout: m.LayoutName}
}
