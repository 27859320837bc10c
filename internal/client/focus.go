package client

import (
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/swlerr"
)

// Focus is idempotent if h already holds focus. Otherwise it unfocuses
// the previous holder (if its handle still resolves), promotes h to
// the head of the focus stack, clears urgency, and emits CLIENT_FOCUS.
// Grounded on the "Focus" step of §4.5.
func (m *Manager) Focus(h handle.Handle) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	if m.focused == h {
		return nil
	}

	if prev, ok := m.arena.Get(m.focused); ok {
		prev.Focused = false
		m.emit(eventbus.ClientUnfocus, prev)
	}

	m.focused = h
	c.Focused = true
	c.Urgent = false

	m.focusStack = removeHandle(m.focusStack, h)
	m.focusStack = append([]handle.Handle{h}, m.focusStack...)

	m.emit(eventbus.ClientFocus, c)
	m.arrangeMonitor(c.Monitor)
	return nil
}

// Focused returns the currently focused Client, if any.
func (m *Manager) Focused() (handle.Handle, *Client, bool) {
	c, ok := m.arena.Get(m.focused)
	if !ok {
		return handle.Handle{}, nil, false
	}
	return m.focused, c, true
}

// Zoom swaps the focused Client with the first tiled (mapped,
// non-floating, non-fullscreen) Client on the same Monitor and tags,
// by splicing their positions in the all-clients list.
func (m *Manager) Zoom() error {
	fh, fc, ok := m.Focused()
	if !ok {
		return swlerr.ErrNotFound
	}

	for i, oh := range m.order {
		if oh == fh {
			continue
		}
		oc, ok := m.arena.Get(oh)
		if !ok || !oc.Mapped || oc.Floating || oc.Fullscreen {
			continue
		}
		if oc.Monitor != fc.Monitor || oc.EffectiveTags()&fc.EffectiveTags() == 0 {
			continue
		}

		for j, h2 := range m.order {
			if h2 == fh {
				m.order[j] = oh
				m.order[i] = fh
				break
			}
		}
		m.arrangeMonitor(fc.Monitor)
		return nil
	}
	return swlerr.ErrNotFound
}

// FocusAdjacent focuses the next (forward) or previous mapped Client
// sharing the focused Client's Monitor and tags, walking the
// all-clients list circularly. Grounded on focusstack(Arg) in
// client.c, which cycles the same stacking list rather than the focus
// history.
func (m *Manager) FocusAdjacent(forward bool) error {
	fh, fc, ok := m.Focused()
	if !ok {
		return swlerr.ErrNotFound
	}

	idx := -1
	for i, h := range m.order {
		if h == fh {
			idx = i
			break
		}
	}
	if idx < 0 {
		return swlerr.ErrNotFound
	}

	n := len(m.order)
	for step := 1; step <= n; step++ {
		var i int
		if forward {
			i = (idx + step) % n
		} else {
			i = ((idx-step)%n + n) % n
		}
		h := m.order[i]
		if h == fh {
			break
		}
		c, ok := m.arena.Get(h)
		if !ok || !c.Mapped {
			continue
		}
		if c.Monitor != fc.Monitor || c.EffectiveTags()&fc.EffectiveTags() == 0 {
			continue
		}
		return m.Focus(h)
	}
	return swlerr.ErrNotFound
}

// Direction enumerates the four directional-focus axes.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// DirectionalFocus finds the best focus candidate from the subject in
// the given direction among mapped Clients sharing its Monitor and
// tags, scoring by primary-axis distance plus half the absolute
// secondary-axis distance. Returns (handle, true) on a winner.
func (m *Manager) DirectionalFocus(from handle.Handle, dir Direction) (handle.Handle, bool) {
	subj, ok := m.arena.Get(from)
	if !ok {
		return handle.Handle{}, false
	}

	sx := subj.X + subj.Width/2
	sy := subj.Y + subj.Height/2

	var best handle.Handle
	bestScore := -1
	found := false

	for _, h := range m.order {
		if h == from {
			continue
		}
		c, ok := m.arena.Get(h)
		if !ok || !c.Mapped {
			continue
		}
		if c.Monitor != subj.Monitor || c.EffectiveTags()&subj.EffectiveTags() == 0 {
			continue
		}

		cx := c.X + c.Width/2
		cy := c.Y + c.Height/2
		dx := cx - sx
		dy := cy - sy

		var primary, secondary int
		var signOK bool
		switch dir {
		case DirUp:
			primary, secondary, signOK = -dy, dx, dy < 0
		case DirDown:
			primary, secondary, signOK = dy, dx, dy > 0
		case DirLeft:
			primary, secondary, signOK = -dx, dy, dx < 0
		case DirRight:
			primary, secondary, signOK = dx, dy, dx > 0
		}
		if !signOK {
			continue
		}

		score := primary + absInt(secondary)/2
		if !found || score < bestScore {
			best = h
			bestScore = score
			found = true
		}
	}

	return best, found
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
