package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"github.com/swl-wm/swl/internal/swlerr"
)

// flattened is the result of turning a decoded TOML document into the
// dotted-key representation, built before it is swapped into a Store
// so a parse failure never touches existing state.
type flattened struct {
	values map[string]Value
	order  []string
}

func newFlattened() *flattened {
	return &flattened{values: make(map[string]Value)}
}

func (f *flattened) set(key string, v Value) {
	if _, exists := f.values[key]; !exists {
		f.order = append(f.order, key)
	}
	f.values[key] = v
}

// inlineTableSections are the top-level sections whose nested tables
// are keybinding/button specs, collapsed to a single "action[:arg]"
// string per §4.2 rather than recursed into further.
var inlineTableSections = map[string]bool{
	"keybindings": true,
	"buttons":     true,
}

func flattenDocument(doc map[string]any) *flattened {
	f := newFlattened()
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flattenValue(f, k, doc[k], k)
	}
	return f
}

// flattenValue recursively flattens value at dotted path key. section
// is the top-level section name, used to detect keybinding/button
// inline tables that must collapse instead of recurse.
func flattenValue(f *flattened, key string, value any, section string) {
	switch v := value.(type) {
	case map[string]any:
		if inlineTableSections[section] {
			if s, ok := collapseBinding(v); ok {
				f.set(key, stringValue(s))
				return
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenValue(f, key+"."+k, v[k], section)
		}
	case []any:
		flattenArray(f, key, v, section)
	case string:
		if color, ok := parseHexColor(v); ok {
			f.set(key, colorValue(color))
		} else {
			f.set(key, stringValue(v))
		}
	case bool:
		f.set(key, boolValue(v))
	case int:
		f.set(key, intValue(int64(v)))
	case int64:
		f.set(key, intValue(v))
	case float64:
		// go-toml decodes integers as int64 already; a float64 here
		// came from a float literal (even one like "1.0") and must
		// stay a float, not be narrowed to int.
		f.set(key, floatValue(v))
	default:
		// nil or an unsupported scalar: dropped, not stored.
	}
}

// flattenArray handles arrays-of-tables. When the first element is a
// map carrying a "name" field, elements are keyed by their non-empty
// string name (monitors.<name>.field), and any element without one by
// its positional index; otherwise every element is keyed by positional
// index (rules.<index>.field).
func flattenArray(f *flattened, key string, arr []any, section string) {
	if len(arr) == 0 {
		return
	}
	idField := arrayIdentifierField(arr)
	for i, elem := range arr {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		var segment string
		if idField != "" {
			if name, ok := m[idField].(string); ok && name != "" {
				segment = name
			} else {
				segment = fmt.Sprintf("%d", i)
			}
		} else {
			segment = fmt.Sprintf("%d", i)
		}
		for k, v := range m {
			flattenValue(f, fmt.Sprintf("%s.%s.%s", key, segment, k), v, section)
		}
	}
}

// arrayIdentifierField reports the natural identifier field for an
// array of tables, "name" being the only one the config schema uses
// ([[monitors]]). Rules carry no such field and fall back to index.
func arrayIdentifierField(arr []any) string {
	for _, elem := range arr {
		m, ok := elem.(map[string]any)
		if !ok {
			return ""
		}
		if _, ok := m["name"]; ok {
			return "name"
		}
		return ""
	}
	return ""
}

// collapseBinding turns a keybinding/button inline table
// {action, argument|command|arg} into the compact "action[:argument]"
// form the flat store keeps.
func collapseBinding(m map[string]any) (string, bool) {
	action, ok := m["action"].(string)
	if !ok || action == "" {
		return "", false
	}
	for _, argKey := range []string{"argument", "arg", "command"} {
		if arg, ok := m[argKey].(string); ok && arg != "" {
			return action + ":" + arg, true
		}
	}
	return action, true
}

// LoadFile parses and flattens the TOML document at path and replaces
// the store's contents with the result. On a read or parse error a
// Config error is returned and the store is left as it was — never a
// partially populated store.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return swlerr.New(swlerr.Config, err.Error())
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return swlerr.New(swlerr.Config, err.Error())
	}

	flat := flattenDocument(v.AllSettings())
	s.replaceWith(flat)
	s.loadedPath = path
	return nil
}

// LoadDefault tries, in order, $XDG_CONFIG_HOME/swl/config.toml, then
// $HOME/.config/swl/config.toml, then /etc/swl/config.toml, loading
// the first one that exists on disk. It is not an error for none to
// exist — the store is simply left empty and managers fall back to
// their own defaults via Get*(key, default).
func (s *Store) LoadDefault() error {
	path, ok := findDefaultConfigPath()
	if !ok {
		return nil
	}
	return s.LoadFile(path)
}

func findDefaultConfigPath() (string, bool) {
	candidates := make([]string, 0, 3)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "swl", "config.toml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "swl", "config.toml"))
	}
	candidates = append(candidates, "/etc/swl/config.toml")

	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c, true
		}
	}
	return "", false
}

// Reload re-loads the previously used path. It is a no-op returning
// nil if no file has been loaded yet.
func (s *Store) Reload() error {
	if s.loadedPath == "" {
		return nil
	}
	return s.LoadFile(s.loadedPath)
}

// LoadedPath returns the path last successfully loaded, or "" if none.
func (s *Store) LoadedPath() string {
	return s.loadedPath
}
