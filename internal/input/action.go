package input

import "github.com/swl-wm/swl/internal/swlerr"

const maxActions = 128

// ActionFunc is an action callback. ctx is the compositor-supplied
// dispatch context (opaque here to avoid an import on the compositor
// package); arg is the binding's optional argument string.
type ActionFunc func(ctx any, arg string)

type actionEntry struct {
	name string
	fn   ActionFunc
}

// ActionTable is the fixed-capacity name-to-callback registry actions
// dispatch through. Grounded on swl_action_register/unregister in
// keybindings.c.
type ActionTable struct {
	entries []actionEntry
}

func NewActionTable() *ActionTable {
	return &ActionTable{entries: make([]actionEntry, 0, maxActions)}
}

// Register adds a named action. Duplicate names are rejected with
// AlreadyExists, matching the C source's swl_action_register.
func (a *ActionTable) Register(name string, fn ActionFunc) error {
	if name == "" || fn == nil {
		return swlerr.ErrInvalidArg
	}
	if _, ok := a.find(name); ok {
		return swlerr.ErrAlreadyExists
	}
	if len(a.entries) >= maxActions {
		return swlerr.ErrNoMem
	}
	a.entries = append(a.entries, actionEntry{name: name, fn: fn})
	return nil
}

// Unregister removes a named action. A no-op on an unknown name.
func (a *ActionTable) Unregister(name string) {
	for i, e := range a.entries {
		if e.name == name {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// Get resolves a registered action by name.
func (a *ActionTable) Get(name string) (ActionFunc, bool) {
	e, ok := a.find(name)
	if !ok {
		return nil, false
	}
	return e.fn, true
}

func (a *ActionTable) find(name string) (actionEntry, bool) {
	for _, e := range a.entries {
		if e.name == name {
			return e, true
		}
	}
	return actionEntry{}, false
}

// Count returns the number of registered actions.
func (a *ActionTable) Count() int { return len(a.entries) }

// canonicalActionName resolves the many aliases the config format and
// the C source's default bindings use down to one canonical name.
// Grounded on swl_action_register_builtins's alias registrations in
// keybindings.c.
func canonicalActionName(name string) string {
	switch name {
	case "killclient":
		return "close"
	case "focusstack":
		return "focus-next"
	case "togglefloating":
		return "toggle-floating"
	case "togglefullscreen":
		return "toggle-fullscreen"
	case "set-layout", "set_layout":
		return "setlayout"
	case "focusmon":
		return "focus-monitor"
	case "sendmon", "tag-monitor", "tagmon":
		return "send-monitor"
	case "reload_config":
		return "reload-config"
	case "incnmaster":
		return "inc-nmaster"
	case "setmfact":
		return "inc-mfact"
	default:
		return name
	}
}
