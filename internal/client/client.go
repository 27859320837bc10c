// Package client owns every managed window surface: lifecycle,
// focus stack, geometry, rule application, and cross-monitor moves.
// Grounded on original_source/src/client/client.c.
package client

import "github.com/swl-wm/swl/internal/handle"

// X11Info carries the extra attributes an XWayland-backed client
// exposes beyond the common surface attributes.
type X11Info struct {
	Class            string
	Instance         string
	Pid              int
	OverrideRedirect bool
}

// Client is a managed surface. Its Monitor field is a weak reference:
// resolve it through a Manager-held Monitor arena before use, since
// the Monitor may have been destroyed without this Client knowing.
type Client struct {
	ID uint32

	Surface any // opaque backing surface handle from the toolkit collaborator

	AppID string
	Title string

	X, Y, Width, Height int
	BorderWidth         int

	Mapped     bool
	Floating   bool
	Fullscreen bool
	Urgent     bool
	Focused    bool

	Tags uint32

	Monitor               handle.Handle
	RememberedOutputName  string
	ColumnRatio           float64

	X11 *X11Info
}

// Info is the read-only snapshot carried by client events on the event
// bus (and so to IPC subscribers); it decouples those consumers from
// the full mutable Client.
type Info struct {
	ID       uint32
	AppID    string
	Title    string
	Floating bool
}

func (c *Client) Info() Info {
	return Info{ID: c.ID, AppID: c.AppID, Title: c.Title, Floating: c.Floating}
}

// effectiveTags normalizes a zero tag mask to tag 1, per invariant 3.
func effectiveTags(tags uint32) uint32 {
	if tags == 0 {
		return 1
	}
	return tags
}
