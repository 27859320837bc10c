package client

import (
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/swlerr"
)

// CommitSink receives the side effects of Commit: declaring supported
// capabilities and pushing a configure. Implemented by the toolkit
// adapter; kept as an interface here to avoid a client->toolkit
// package dependency.
type CommitSink interface {
	DeclareCapabilities(surface any)
	SetSize(surface any, width, height int)
	Configure(surface any, x, y, width, height int)
}

// Commit handles the surface's initial and subsequent commits. On
// the first commit it declares capabilities and requests self-sizing
// (width=0, height=0); on later commits while mapped it re-sends the
// current geometry as an idempotent configure, so clients that missed
// a configure still converge. Grounded on the "Commit" step of §4.5.
func (m *Manager) Commit(h handle.Handle, sink CommitSink) error {
	c, ok := m.arena.Get(h)
	if !ok {
		return swlerr.ErrNotFound
	}

	if m.commits == nil {
		m.commits = make(map[handle.Handle]bool)
	}

	if !m.commits[h] {
		m.commits[h] = true
		sink.DeclareCapabilities(c.Surface)
		sink.SetSize(c.Surface, 0, 0)
		return nil
	}

	if c.Mapped {
		sink.Configure(c.Surface, c.X, c.Y, c.Width, c.Height)
	}
	return nil
}
