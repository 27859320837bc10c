package input

import "github.com/swl-wm/swl/internal/swlerr"

const (
	maxKeybindings    = 256
	maxButtonBindings = 32
)

// Keybinding is {modifier_mask, keysym, action_name, optional
// argument} of §3's glossary entry.
type Keybinding struct {
	Modifiers Modifier
	Keysym    string // normalized via NormalizeKeysym
	Action    string
	Argument  string
}

// ButtonBinding is the pointer-button analogue of Keybinding.
type ButtonBinding struct {
	Modifiers Modifier
	Button    string
	Action    string
	Argument  string
}

// BindingTable holds both binding kinds. Invariant 7: two bindings
// sharing (modifiers, keysym) or (modifiers, button) may not both be
// inserted — the second is rejected with AlreadyExists.
type BindingTable struct {
	keys    []Keybinding
	buttons []ButtonBinding
}

func NewBindingTable() *BindingTable {
	return &BindingTable{
		keys:    make([]Keybinding, 0, maxKeybindings),
		buttons: make([]ButtonBinding, 0, maxButtonBindings),
	}
}

// AddKeybinding inserts b, normalizing its keysym first.
func (t *BindingTable) AddKeybinding(b Keybinding) error {
	b.Keysym = NormalizeKeysym(b.Keysym)
	for _, e := range t.keys {
		if e.Modifiers == b.Modifiers && e.Keysym == b.Keysym {
			return swlerr.ErrAlreadyExists
		}
	}
	if len(t.keys) >= maxKeybindings {
		return swlerr.ErrNoMem
	}
	t.keys = append(t.keys, b)
	return nil
}

// AddButtonBinding inserts b.
func (t *BindingTable) AddButtonBinding(b ButtonBinding) error {
	for _, e := range t.buttons {
		if e.Modifiers == b.Modifiers && e.Button == b.Button {
			return swlerr.ErrAlreadyExists
		}
	}
	if len(t.buttons) >= maxButtonBindings {
		return swlerr.ErrNoMem
	}
	t.buttons = append(t.buttons, b)
	return nil
}

// Clear empties both tables.
func (t *BindingTable) Clear() {
	t.keys = t.keys[:0]
	t.buttons = t.buttons[:0]
}

// MatchKey returns the first Keybinding matching (mods, keysym), the
// keysym already normalized by the caller.
func (t *BindingTable) MatchKey(mods Modifier, keysym string) (Keybinding, bool) {
	for _, e := range t.keys {
		if e.Modifiers == mods && e.Keysym == keysym {
			return e, true
		}
	}
	return Keybinding{}, false
}

// MatchButton returns the first ButtonBinding matching (mods, button).
func (t *BindingTable) MatchButton(mods Modifier, button string) (ButtonBinding, bool) {
	for _, e := range t.buttons {
		if e.Modifiers == mods && e.Button == button {
			return e, true
		}
	}
	return ButtonBinding{}, false
}

func (t *BindingTable) KeybindingCount() int { return len(t.keys) }
func (t *BindingTable) ButtonBindingCount() int { return len(t.buttons) }
