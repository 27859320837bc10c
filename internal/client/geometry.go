package client

import (
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/swlerr"
)

// UsableArea is the rectangle a Resize call clips visibility against.
// Owned by the output manager; passed in rather than imported to
// avoid a client<->monitor package cycle.
type UsableArea struct {
	X, Y, Width, Height int
}

// Visibility is the outcome of clipping a Client's outer geometry
// against its Monitor's usable area.
type Visibility int

const (
	VisibilityHidden Visibility = iota
	VisibilityVisible
	VisibilityClipped
)

// Resize sets a Client's outer geometry (x, y, total_w, total_h),
// storing content size shrunk by twice the border width, and reports
// the resulting visibility against area. Grounded on the "Resize"
// step of §4.5.
func (m *Manager) Resize(h handle.Handle, x, y, totalW, totalH int, area UsableArea) (Visibility, error) {
	c, ok := m.arena.Get(h)
	if !ok {
		return VisibilityHidden, swlerr.ErrNotFound
	}

	c.X = x
	c.Y = y
	c.Width = totalW - 2*c.BorderWidth
	c.Height = totalH - 2*c.BorderWidth

	vis := clipVisibility(x, y, totalW, totalH, area)

	m.emit(eventbus.ClientResize, c)
	return vis, nil
}

func clipVisibility(x, y, w, h int, area UsableArea) Visibility {
	left, top := x, y
	right, bottom := x+w, y+h
	aLeft, aTop := area.X, area.Y
	aRight, aBottom := area.X+area.Width, area.Y+area.Height

	if left >= aLeft && top >= aTop && right <= aRight && bottom <= aBottom {
		return VisibilityVisible
	}
	if right <= aLeft || left >= aRight || bottom <= aTop || top >= aBottom {
		return VisibilityHidden
	}
	return VisibilityClipped
}

// MoveToMonitor updates a Client's Monitor weak reference and
// remembered output name; callers are responsible for rearranging the
// old and new Monitors (the output manager owns Arrange).
func (m *Manager) MoveToMonitor(h handle.Handle, mh handle.Handle, outputName string) (oldMonitor handle.Handle, err error) {
	c, ok := m.arena.Get(h)
	if !ok {
		return handle.Handle{}, swlerr.ErrNotFound
	}
	old := c.Monitor
	c.Monitor = mh
	c.RememberedOutputName = outputName

	m.emit(eventbus.ClientMove, c)
	return old, nil
}

// SetFullscreen toggles a Client's fullscreen flag and emits
// CLIENT_FULLSCREEN.
func (m *Manager) SetFullscreen(h handle.Handle, fullscreen bool) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	c.Fullscreen = fullscreen
	m.emit(eventbus.ClientFullscreen, c)
	m.arrangeMonitor(c.Monitor)
	return nil
}

// SetFloating toggles a Client's floating flag and emits CLIENT_FLOAT.
func (m *Manager) SetFloating(h handle.Handle, floating bool) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	c.Floating = floating
	m.emit(eventbus.ClientFloat, c)
	m.arrangeMonitor(c.Monitor)
	return nil
}

// SetTags overwrites a Client's tag mask, normalizing zero to tag 1.
func (m *Manager) SetTags(h handle.Handle, tags uint32) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}
	c.Tags = effectiveTags(tags)
	m.emit(eventbus.ClientTag, c)
	m.arrangeMonitor(c.Monitor)
	return nil
}

// MonitorClients collects the handles of every Client currently
// referencing mh, in all-clients order, optionally restricted to
// clients contributing to a tiled layout arrangement (mapped,
// non-floating, non-fullscreen).
func (m *Manager) MonitorClients(mh handle.Handle, tiledOnly bool) []handle.Handle {
	var out []handle.Handle
	for _, h := range m.order {
		c, ok := m.arena.Get(h)
		if !ok || c.Monitor != mh {
			continue
		}
		if tiledOnly && (!c.Mapped || c.Floating || c.Fullscreen) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// DetachFromMonitor clears every Client's Monitor weak reference when
// that Monitor was destroyed, preserving RememberedOutputName so a
// later output of the same name can re-attach them. Returns the
// affected handles.
func (m *Manager) DetachFromMonitor(mh handle.Handle) []handle.Handle {
	var affected []handle.Handle
	for _, h := range m.order {
		c, ok := m.arena.Get(h)
		if !ok || c.Monitor != mh {
			continue
		}
		c.Monitor = handle.Handle{}
		affected = append(affected, h)
	}
	return affected
}

// ReattachByOutputName re-homes every detached Client whose
// RememberedOutputName matches name onto mh. Returns the affected
// handles so the caller can rearrange mh once.
func (m *Manager) ReattachByOutputName(name string, mh handle.Handle) []handle.Handle {
	var affected []handle.Handle
	for _, h := range m.order {
		c, ok := m.arena.Get(h)
		if !ok || c.Monitor.Valid() || c.RememberedOutputName != name {
			continue
		}
		c.Monitor = mh
		affected = append(affected, h)
	}
	return affected
}
