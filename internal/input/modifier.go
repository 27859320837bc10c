// Package input implements the keyboard/pointer dispatch manager of
// §4.7: modifier-state aggregation, the cursor mode state machine, the
// keybinding/button-binding tables, and the action registry they
// dispatch through. Grounded on keybindings.c and input.c of the
// original dwl-derived core.
package input

import "strings"

// Modifier is a bitmask of keyboard modifiers, canonicalized from the
// many string spellings config and default bindings use.
type Modifier uint32

const (
	Shift Modifier = 1 << iota
	Ctrl
	Alt
	Logo
)

// ParseModkeyName resolves the single general.modkey config value to a
// Modifier. An unrecognized name falls back to Logo rather than 0, so
// a typo'd modkey still produces usable bindings instead of silently
// disabling every "mod"-prefixed one.
func ParseModkeyName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alt", "mod1":
		return Alt
	case "ctrl", "control":
		return Ctrl
	case "shift":
		return Shift
	case "super", "logo", "mod4", "win":
		return Logo
	default:
		return Logo
	}
}

// ParseModifiers canonicalizes a "+"-joined token string (e.g.
// "Mod+Shift+q") into a mask, given the configured default modifier
// for the bare "mod" token. Tokens that match no modifier name
// (including the trailing key or button token itself) are silently
// ignored — the caller extracts the key/button name separately.
func ParseModifiers(spec string, modkey Modifier) Modifier {
	var mods Modifier
	for _, tok := range strings.Split(spec, "+") {
		if m, ok := parseModifierToken(tok, modkey); ok {
			mods |= m
		}
	}
	return mods
}

func parseModifierToken(tok string, modkey Modifier) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "mod":
		return modkey, true
	case "shift":
		return Shift, true
	case "ctrl", "control":
		return Ctrl, true
	case "alt", "mod1":
		return Alt, true
	case "super", "logo", "mod4", "win":
		return Logo, true
	default:
		return 0, false
	}
}

// lastToken returns the final "+"-separated token of spec, which by
// convention is the keysym or button name rather than a modifier.
func lastToken(spec string) string {
	parts := strings.Split(spec, "+")
	return strings.TrimSpace(parts[len(parts)-1])
}
