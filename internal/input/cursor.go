package input

import "github.com/swl-wm/swl/internal/handle"

// CursorMode is one of the interactive-grab states of §4.7.
type CursorMode int

const (
	ModeNormal CursorMode = iota
	ModeMove
	ModeResize
)

const minGrabSize = 50

// grab holds the state captured when entering MOVE or RESIZE, cleared
// on return to NORMAL.
type grab struct {
	client handle.Handle

	// MOVE: cursor - client origin at grab start.
	offsetX, offsetY int

	// RESIZE: client origin and size at grab start.
	origX, origY int
}

// CursorState tracks the current mode and its grab, if any.
type CursorState struct {
	Mode CursorMode
	grab grab
}

// BeginMove enters MOVE for the given Client, capturing the grab
// offset between the cursor and the Client's current origin. Entering
// MOVE forces the Client to floating if it was tiled.
func (c *CursorState) BeginMove(h handle.Handle, cursorX, cursorY, clientX, clientY int, floater func(handle.Handle, bool) error) {
	c.Mode = ModeMove
	c.grab = grab{client: h, offsetX: cursorX - clientX, offsetY: cursorY - clientY}
	if floater != nil {
		_ = floater(h, true)
	}
}

// BeginResize enters RESIZE for the given Client, recording its
// current origin so Motion can compute size as cursor - origin. The
// caller is responsible for warping the pointer to the Client's SE
// corner; CursorState only tracks bookkeeping state.
func (c *CursorState) BeginResize(h handle.Handle, clientX, clientY int, floater func(handle.Handle, bool) error) {
	c.Mode = ModeResize
	c.grab = grab{client: h, origX: clientX, origY: clientY}
	if floater != nil {
		_ = floater(h, true)
	}
}

// End returns to NORMAL, clearing the grab. Triggered by any
// pointer-button release or an explicit cancel.
func (c *CursorState) End() {
	c.Mode = ModeNormal
	c.grab = grab{}
}

// MoveOrigin computes a MOVE grab's new Client origin from the current
// cursor position. Only valid while Mode == ModeMove.
func (c *CursorState) MoveOrigin(cursorX, cursorY int) (x, y int) {
	return cursorX - c.grab.offsetX, cursorY - c.grab.offsetY
}

// ResizeSize computes a RESIZE grab's new Client size from the current
// cursor position, clamped to a minimum of 50x50. Only valid while
// Mode == ModeResize.
func (c *CursorState) ResizeSize(cursorX, cursorY int) (w, h int) {
	w = cursorX - c.grab.origX
	h = cursorY - c.grab.origY
	if w < minGrabSize {
		w = minGrabSize
	}
	if h < minGrabSize {
		h = minGrabSize
	}
	return w, h
}

// GrabClient returns the Client currently held by a MOVE or RESIZE
// grab, if any.
func (c *CursorState) GrabClient() (handle.Handle, bool) {
	if c.Mode == ModeNormal {
		return handle.Handle{}, false
	}
	return c.grab.client, true
}
