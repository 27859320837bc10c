package input

import (
	"strconv"
	"strings"

	"github.com/swl-wm/swl/internal/config"
	"github.com/charmbracelet/log"
)

// Dispatcher is the compositor-side surface every built-in action
// ultimately calls into. Kept as an interface here (rather than
// importing the compositor package) so input has no dependency on the
// process wiring that owns it.
type Dispatcher interface {
	Quit()
	Spawn(command string)
	CloseFocused()
	FocusNext()
	FocusPrev()
	ToggleFloating()
	ToggleFullscreen()
	SetLayout(name string)
	FocusMonitor(direction string)
	SendMonitor(direction string)
	ReloadConfig()
	Zoom()
	AdjustMFact(delta float64)
	AdjustNMaster(delta int)
	FocusDir(direction string)
	BeginMoveResize(kind string)
	CycleRatio()
	Chvt(vt int)
}

// Manager is the process-wide input dispatch surface of §4.7: the
// action table, the keybinding/button-binding tables, the aggregated
// modifier mask, and the cursor mode machine.
type Manager struct {
	Actions  *ActionTable
	Bindings *BindingTable
	Cursor   CursorState

	modkey  Modifier
	current Modifier // live modifier mask, updated by SetModifiers
}

func NewManager(modkey Modifier) *Manager {
	return &Manager{
		Actions:  NewActionTable(),
		Bindings: NewBindingTable(),
		modkey:   modkey,
	}
}

// SetModifiers records the keyboard group's current modifier mask,
// recomputed by the caller on every modifier change.
func (m *Manager) SetModifiers(mods Modifier) { m.current = mods }

// RegisterBuiltins installs the built-in action set against d. A name
// that already exists in the table (e.g. from an earlier
// RegisterBuiltins call) is left untouched and logged at Debug rather
// than treated as an error, so calling this more than once is harmless.
func (m *Manager) RegisterBuiltins(d Dispatcher) {
	reg := func(name string, fn ActionFunc) {
		if err := m.Actions.Register(name, fn); err != nil {
			log.Debug("input: builtin action already registered", "action", name)
		}
	}

	reg("quit", func(any, string) { d.Quit() })
	reg("spawn", func(_ any, arg string) { d.Spawn(arg) })
	reg("close", func(any, string) { d.CloseFocused() })
	reg("focus-next", func(any, string) { d.FocusNext() })
	reg("focus-prev", func(any, string) { d.FocusPrev() })
	reg("toggle-floating", func(any, string) { d.ToggleFloating() })
	reg("toggle-fullscreen", func(any, string) { d.ToggleFullscreen() })
	reg("setlayout", func(_ any, arg string) { d.SetLayout(arg) })
	reg("focus-monitor", func(_ any, arg string) { d.FocusMonitor(arg) })
	reg("send-monitor", func(_ any, arg string) { d.SendMonitor(arg) })
	reg("reload-config", func(any, string) { d.ReloadConfig() })
	reg("zoom", func(any, string) { d.Zoom() })
	reg("inc-mfact", func(any, string) { d.AdjustMFact(0.05) })
	reg("dec-mfact", func(any, string) { d.AdjustMFact(-0.05) })
	reg("inc-nmaster", func(any, string) { d.AdjustNMaster(1) })
	reg("dec-nmaster", func(any, string) { d.AdjustNMaster(-1) })
	reg("focusdir", func(_ any, arg string) { d.FocusDir(arg) })
	reg("moveresize", func(_ any, arg string) { d.BeginMoveResize(arg) })
	reg("cycle-ratio", func(any, string) { d.CycleRatio() })
	reg("chvt", func(_ any, arg string) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			log.Warn("input: chvt action with non-numeric argument", "arg", arg)
			return
		}
		d.Chvt(n)
	})
}

// HandleKey resolves a key press against every symbol the keycode
// produced under the active keymap (symbols already normalized by the
// caller). It dispatches the first Keybinding match and reports
// whether the key should be consumed rather than forwarded to the
// focused surface. Grounded on the "Keyboard" paragraph of §4.7.
func (m *Manager) HandleKey(ctx any, symbols []string) bool {
	for _, sym := range symbols {
		sym = NormalizeKeysym(sym)
		if b, ok := m.Bindings.MatchKey(m.current, sym); ok {
			m.dispatch(ctx, b.Action, b.Argument)
			return true
		}
	}
	return false
}

// HandleButton resolves a pointer-button press against the button
// binding table using the live modifier mask. Reports whether the
// press was consumed.
func (m *Manager) HandleButton(ctx any, button string) bool {
	if b, ok := m.Bindings.MatchButton(m.current, button); ok {
		m.dispatch(ctx, b.Action, b.Argument)
		return true
	}
	return false
}

func (m *Manager) dispatch(ctx any, action, arg string) {
	fn, ok := m.Actions.Get(action)
	if !ok {
		log.Warn("input: no such action", "action", action)
		return
	}
	fn(ctx, arg)
}

// LoadFromConfig installs bindings from the store's keybindings.*/
// buttons.* keys if any are present, otherwise installs the built-in
// default set, then always adds the synthetic Ctrl+Alt+F1..F12 ->
// chvt N bindings regardless of which source was used. Grounded on
// the "Binding source" paragraph of §4.7 and
// load_keybindings_from_config/load_buttons_from_config in
// keybindings.c.
func (m *Manager) LoadFromConfig(store *config.Store) {
	m.Bindings.Clear()

	keyKeys := store.Keys("keybindings.")
	buttonKeys := store.Keys("buttons.")

	if len(keyKeys) > 0 || len(buttonKeys) > 0 {
		for _, key := range keyKeys {
			spec := strings.TrimPrefix(key, "keybindings.")
			m.loadBindingEntry(spec, store.GetString(key, ""))
		}
		for _, key := range buttonKeys {
			spec := strings.TrimPrefix(key, "buttons.")
			m.loadButtonEntry(spec, store.GetString(key, ""))
		}
	} else {
		m.installDefaults()
	}

	m.installSyntheticChvt()
}

// loadBindingEntry parses one "mod+key" = "action[:argument]" config
// entry and inserts the resulting Keybinding. An empty value, or a
// binding the table rejects, is logged and skipped, not fatal. The
// action name is not checked against the action table here: a binding
// to an unknown action is inserted, and the miss is only logged when
// the binding fires.
func (m *Manager) loadBindingEntry(spec, value string) {
	if value == "" {
		log.Warn("input: empty keybinding value", "spec", spec)
		return
	}
	action, arg := splitActionArgument(value)
	b := Keybinding{
		Modifiers: ParseModifiers(spec, m.modkey),
		Keysym:    lastToken(spec),
		Action:    canonicalActionName(action),
		Argument:  arg,
	}
	if err := m.Bindings.AddKeybinding(b); err != nil {
		log.Warn("input: could not add keybinding", "spec", spec, "err", err)
	}
}

func (m *Manager) loadButtonEntry(spec, value string) {
	if value == "" {
		log.Warn("input: empty button binding value", "spec", spec)
		return
	}
	action, arg := splitActionArgument(value)
	b := ButtonBinding{
		Modifiers: ParseModifiers(spec, m.modkey),
		Button:    lastToken(spec),
		Action:    canonicalActionName(action),
		Argument:  arg,
	}
	if err := m.Bindings.AddButtonBinding(b); err != nil {
		log.Warn("input: could not add button binding", "spec", spec, "err", err)
	}
}

// splitActionArgument splits the collapsed "action[:argument]" store
// representation on the first colon.
func splitActionArgument(value string) (action, arg string) {
	if idx := strings.Index(value, ":"); idx >= 0 {
		return value[:idx], value[idx+1:]
	}
	return value, ""
}

// installDefaults installs the built-in keybinding/button-binding set
// used when the config store carries no keybindings.*/buttons.* keys.
// Grounded on the default table swl_keybinding_load_defaults builds in
// keybindings.c.
func (m *Manager) installDefaults() {
	defaults := []Keybinding{
		{Modifiers: m.modkey, Keysym: "q", Action: "close"},
		{Modifiers: m.modkey | Shift, Keysym: "q", Action: "quit"},
		{Modifiers: m.modkey | Shift, Keysym: "return", Action: "spawn", Argument: "foot"},
		{Modifiers: m.modkey, Keysym: "j", Action: "focus-next"},
		{Modifiers: m.modkey, Keysym: "k", Action: "focus-prev"},
		{Modifiers: m.modkey, Keysym: "space", Action: "toggle-floating"},
		{Modifiers: m.modkey, Keysym: "f", Action: "toggle-fullscreen"},
		{Modifiers: m.modkey, Keysym: "t", Action: "setlayout", Argument: "tile"},
		{Modifiers: m.modkey, Keysym: "m", Action: "setlayout", Argument: "monocle"},
		{Modifiers: m.modkey, Keysym: "s", Action: "setlayout", Argument: "scroller"},
		{Modifiers: m.modkey, Keysym: "h", Action: "inc-mfact"},
		{Modifiers: m.modkey, Keysym: "l", Action: "dec-mfact"},
		{Modifiers: m.modkey | Shift, Keysym: "h", Action: "inc-nmaster"},
		{Modifiers: m.modkey | Shift, Keysym: "l", Action: "dec-nmaster"},
		{Modifiers: m.modkey, Keysym: "left", Action: "focusdir", Argument: "left"},
		{Modifiers: m.modkey, Keysym: "right", Action: "focusdir", Argument: "right"},
		{Modifiers: m.modkey, Keysym: "up", Action: "focusdir", Argument: "up"},
		{Modifiers: m.modkey, Keysym: "down", Action: "focusdir", Argument: "down"},
		{Modifiers: m.modkey, Keysym: "return", Action: "zoom"},
		{Modifiers: m.modkey, Keysym: "r", Action: "cycle-ratio"},
		{Modifiers: m.modkey | Ctrl, Keysym: "r", Action: "reload-config"},
	}
	for _, b := range defaults {
		if err := m.Bindings.AddKeybinding(b); err != nil {
			log.Warn("input: could not add default keybinding", "keysym", b.Keysym, "action", b.Action, "err", err)
		}
	}

	buttons := []ButtonBinding{
		{Modifiers: m.modkey, Button: "left", Action: "moveresize", Argument: "move"},
		{Modifiers: m.modkey, Button: "right", Action: "moveresize", Argument: "resize"},
	}
	for _, b := range buttons {
		_ = m.Bindings.AddButtonBinding(b)
	}
}

// installSyntheticChvt always adds Ctrl+Alt+F1..F12 -> chvt N, whether
// bindings came from config or the built-in defaults.
func (m *Manager) installSyntheticChvt() {
	for i := 1; i <= 12; i++ {
		_ = m.Bindings.AddKeybinding(Keybinding{
			Modifiers: Ctrl | Alt,
			Keysym:    "f" + strconv.Itoa(i),
			Action:    "chvt",
			Argument:  strconv.Itoa(i),
		})
	}
}
