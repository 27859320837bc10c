package input

import "strings"

// keysymAliases maps a handful of friendly config spellings to the
// XKB name a real keymap lookup would resolve to. Config authors
// write "enter" or "esc"; the keyboard layer resolves physical keys to
// XKB names that never use those short forms.
var keysymAliases = map[string]string{
	"enter":     "return",
	"esc":       "escape",
	"del":       "delete",
	"backspace": "backspace",
}

// NormalizeKeysym lower-cases name and applies the alias table. Both
// the config-time binding parser and the runtime keyboard handler
// route every symbol through this so "Return" (from config) and a
// lower-cased runtime-resolved symbol always compare equal.
func NormalizeKeysym(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keysymAliases[lower]; ok {
		return alias
	}
	return lower
}
