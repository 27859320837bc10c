package compositor

import (
	"github.com/charmbracelet/log"

	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
)

// surfaceCloser is satisfied by a real toolkit's bound toplevel
// surface (e.g. an xdg_toplevel wrapper that can send the close
// request). Client.Surface is opaque by design, so "close" only acts
// on it when it actually exposes this capability; otherwise the
// Client is destroyed directly, which is the only recourse with no
// bound surface to ask nicely.
type surfaceCloser interface {
	Close() error
}

// Spawn runs command detached, per §5's "spawn action ... detached,
// new session" rule. Implemented in spawn.go.
func (c *Compositor) Spawn(command string) {
	if err := c.spawn(command); err != nil {
		log.Error("compositor: spawn failed", "command", command, "err", err)
	}
}

// CloseFocused asks the focused Client's surface to close if it can,
// otherwise destroys it outright.
func (c *Compositor) CloseFocused() {
	h, cl, ok := c.Clients.Focused()
	if !ok {
		return
	}
	if closer, ok := cl.Surface.(surfaceCloser); ok {
		if err := closer.Close(); err != nil {
			log.Warn("compositor: surface close failed", "err", err)
		}
		return
	}
	if err := c.Clients.Destroy(h); err != nil {
		log.Warn("compositor: destroy focused client failed", "err", err)
	}
}

func (c *Compositor) FocusNext() { c.logErr(c.Clients.FocusAdjacent(true)) }
func (c *Compositor) FocusPrev() { c.logErr(c.Clients.FocusAdjacent(false)) }

func (c *Compositor) ToggleFloating() {
	h, cl, ok := c.Clients.Focused()
	if !ok {
		return
	}
	c.logErr(c.Clients.SetFloating(h, !cl.Floating))
}

func (c *Compositor) ToggleFullscreen() {
	h, cl, ok := c.Clients.Focused()
	if !ok {
		return
	}
	c.logErr(c.Clients.SetFullscreen(h, !cl.Fullscreen))
}

func (c *Compositor) SetLayout(name string) {
	mh, _, ok := c.Monitors.Focused()
	if !ok {
		return
	}
	c.logErr(c.Monitors.SetLayout(mh, name))
}

func (c *Compositor) FocusMonitor(direction string) {
	_, err := c.Monitors.FocusAdjacent(direction != "prev")
	c.logErr(err)
}

// SendMonitor moves the focused Client onto the next or previous
// Monitor in the order Monitors were added and rearranges both.
func (c *Compositor) SendMonitor(direction string) {
	h, _, ok := c.Clients.Focused()
	if !ok {
		return
	}
	target, err := c.Monitors.FocusAdjacent(direction != "prev")
	if err != nil {
		c.logErr(err)
		return
	}
	mon, ok := c.Monitors.Get(target)
	if !ok {
		return
	}
	old, err := c.Clients.MoveToMonitor(h, target, mon.Name)
	if err != nil {
		c.logErr(err)
		return
	}
	c.Monitors.Arrange(old)
	c.Monitors.Arrange(target)
}

func (c *Compositor) ReloadConfig() {
	if err := c.Config.Reload(); err != nil {
		log.Error("compositor: config reload failed", "err", err)
		return
	}
	c.Input.LoadFromConfig(c.Config)
	c.Bus.EmitSimple(eventbus.ConfigReload, nil)
}

func (c *Compositor) Zoom() { c.logErr(c.Clients.Zoom()) }

func (c *Compositor) AdjustMFact(delta float64) {
	mh, _, ok := c.Monitors.Focused()
	if !ok {
		return
	}
	c.logErr(c.Monitors.AdjustMFact(mh, delta))
}

func (c *Compositor) AdjustNMaster(delta int) {
	mh, _, ok := c.Monitors.Focused()
	if !ok {
		return
	}
	c.logErr(c.Monitors.AdjustNMaster(mh, delta))
}

func (c *Compositor) CycleRatio() {
	mh, _, ok := c.Monitors.Focused()
	if !ok {
		return
	}
	c.logErr(c.Monitors.AdjustScrollerRatio(mh, 0.05))
}

func (c *Compositor) FocusDir(direction string) {
	h, _, ok := c.Clients.Focused()
	if !ok {
		return
	}
	dir, ok := parseDirection(direction)
	if !ok {
		return
	}
	target, ok := c.Clients.DirectionalFocus(h, dir)
	if !ok {
		return
	}
	c.logErr(c.Clients.Focus(target))
}

func parseDirection(s string) (client.Direction, bool) {
	switch s {
	case "up":
		return client.DirUp, true
	case "down":
		return client.DirDown, true
	case "left":
		return client.DirLeft, true
	case "right":
		return client.DirRight, true
	default:
		return 0, false
	}
}

// BeginMoveResize enters the cursor state machine's MOVE or RESIZE
// mode for the focused Client. Grounded on moveresize(Arg) in
// input.c. The cursor position isn't available from the action
// dispatch path (no seat-pointer tracking is wired from the toolkit
// adapter yet), so the grab starts at the Client's own origin — a
// zero-offset baseline a real pointer-motion wiring would replace
// with the seat's actual last-known position.
func (c *Compositor) BeginMoveResize(kind string) {
	h, cl, ok := c.Clients.Focused()
	if !ok {
		return
	}
	floater := func(fh handle.Handle, floating bool) error {
		return c.Clients.SetFloating(fh, floating)
	}
	switch kind {
	case "resize":
		c.Input.Cursor.BeginResize(h, cl.X, cl.Y, floater)
	default:
		c.Input.Cursor.BeginMove(h, cl.X, cl.Y, cl.X, cl.Y, floater)
	}
}

// Chvt logs the request. Switching the virtual terminal is a backend/
// seat-session concern no client-side toolkit adapter can perform (no
// libseat/logind binding exists in the corpus); a real wlroots-backed
// toolkit would forward this to its session object.
func (c *Compositor) Chvt(vt int) {
	log.Warn("compositor: chvt requested but no session backend is wired", "vt", vt)
}

func (c *Compositor) logErr(err error) {
	if err != nil {
		log.Debug("compositor: action failed", "err", err)
	}
}
