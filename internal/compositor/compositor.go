// Package compositor wires every manager (rules, layouts, clients,
// monitors, input, IPC, the rendering-toolkit adapter) into one
// process-wide object and satisfies input.Dispatcher, so built-in
// keybindings/button actions reach real manager calls. Grounded on
// the teacher's internal/server/manager.go, the one place the teacher
// itself stitches several managers and the IPC layer together.
package compositor

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/config"
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/input"
	"github.com/swl-wm/swl/internal/ipc"
	"github.com/swl-wm/swl/internal/layout"
	"github.com/swl-wm/swl/internal/monitor"
	"github.com/swl-wm/swl/internal/rule"
	"github.com/swl-wm/swl/internal/toolkit"
)

var _ input.Dispatcher = (*Compositor)(nil)

// Compositor is the top-level object a running process owns exactly
// one of. It never exposes its managers as package-level globals —
// every collaborator that needs one is handed a reference at
// construction time; there is no globally-reachable config object.
type Compositor struct {
	Bus     *eventbus.Bus
	Config  *config.Store
	Rules   *rule.Engine
	Layouts *layout.Registry
	Clients *client.Manager
	Monitors *monitor.Manager
	Input   *input.Manager
	IPC     *ipc.Server
	Toolkit toolkit.Toolkit

	watcher *config.FileWatcher
	reaper  *childReaper

	shouldQuit atomic.Bool
	quitOnce   sync.Once
	quitCh     chan struct{}
}

// New builds every manager and wires them together. configPath, if
// non-empty, is loaded explicitly (the CLI's -c flag); otherwise
// Config.LoadDefault's XDG search is used. A Config load failure is
// not fatal here — the store is left empty and managers fall back to
// their own Get*(key, default) values, per §7's "config parse failure
// ... not partially populated" policy (an empty store is a valid,
// fully-defaulted state, not a partial one).
func New(configPath string) (*Compositor, error) {
	store := config.New()
	var loadErr error
	if configPath != "" {
		loadErr = store.LoadFile(configPath)
	} else {
		loadErr = store.LoadDefault()
	}
	if loadErr != nil {
		log.Warn("compositor: config load failed, falling back to defaults", "err", loadErr)
	}

	bus := eventbus.New()
	rules := rule.New()
	loadRules(store, rules)

	layouts := layout.NewRegistry()
	layouts.RegisterBuiltins()

	clients := client.NewManager(bus, rules, nil)
	monitors := monitor.NewManager(bus, layouts, clients)
	clients.SetArranger(monitors)

	modkey := input.ParseModkeyName(store.GetString("general.modkey", "logo"))
	inputMgr := input.NewManager(modkey)

	c := &Compositor{
		Bus:      bus,
		Config:   store,
		Rules:    rules,
		Layouts:  layouts,
		Clients:  clients,
		Monitors: monitors,
		Input:    inputMgr,
		Toolkit:  toolkit.NewWaylandToolkit(),
		reaper:   newChildReaper(),
		quitCh:   make(chan struct{}),
	}

	inputMgr.RegisterBuiltins(c)
	inputMgr.LoadFromConfig(store)

	commands := ipc.NewCommandTable()
	if err := ipc.RegisterSubscribe(commands); err != nil {
		return nil, fmt.Errorf("compositor: registering subscribe command: %w", err)
	}
	if err := c.registerCommands(commands); err != nil {
		return nil, fmt.Errorf("compositor: registering commands: %w", err)
	}
	c.IPC = ipc.NewServer(commands, bus)

	return c, nil
}

// loadRules populates e from the store's rules.<index>.* keys, where
// <index> is whatever segment flattenArray assigned (positional,
// since [[rules]] carries no "name" field). Indices are sorted
// numerically before Add, so the engine's first-match-wins precedence
// (rule.Engine.Apply) tracks the declared [[rules]] array order from
// the config file rather than Go's unordered map iteration.
func loadRules(store *config.Store, e *rule.Engine) {
	seen := make(map[string]bool)
	for _, key := range store.Keys("rules.") {
		rest := key[len("rules."):]
		idx := rest
		for i, r := range rest {
			if r == '.' {
				idx = rest[:i]
				break
			}
		}
		seen[idx] = true
	}

	indices := make([]string, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool {
		ni, erri := strconv.Atoi(indices[i])
		nj, errj := strconv.Atoi(indices[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return indices[i] < indices[j]
	})

	for _, idx := range indices {
		prefix := "rules." + idx + "."
		r := rule.Rule{
			AppIDPattern:   store.GetString(prefix+"app_id", ""),
			TitlePattern:   store.GetString(prefix+"title", ""),
			ForcedTags:     uint32(store.GetInt(prefix+"tags", 0)),
			ForcedFloating: store.GetBool(prefix+"floating", false),
		}
		if err := e.Add(r); err != nil {
			log.Warn("compositor: could not add rule from config", "index", idx, "err", err)
		}
	}
}

// Quit implements input.Dispatcher: it flips the process-wide flag
// and wakes Run's select loop, per §5's "signal-handler flag ...
// atomic flag semantics" model — it never calls os.Exit directly.
// Safe to call more than once, from a keybinding, the IPC `quit`
// command, or a terminating signal, whichever comes first.
func (c *Compositor) Quit() {
	c.shouldQuit.Store(true)
	c.quitOnce.Do(func() { close(c.quitCh) })
}

// ShouldQuit reports whether Quit has been requested, either from a
// keybinding, the IPC `quit` command, or a terminating signal.
func (c *Compositor) ShouldQuit() bool {
	return c.shouldQuit.Load()
}
