package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/layout"
	"github.com/swl-wm/swl/internal/rule"
)

func newTestSetup() (*Manager, *client.Manager, *eventbus.Bus) {
	bus := eventbus.New()
	layouts := layout.NewRegistry()
	layouts.RegisterBuiltins()

	clients := client.NewManager(bus, rule.New(), nil)
	mons := NewManager(bus, layouts, clients)
	clients.SetArranger(mons)
	return mons, clients, bus
}

func defaultParams() LayoutRequestParams {
	return LayoutRequestParams{
		MasterFactor:  0.55,
		ScrollerRatio: 0.8,
		NMaster:       1,
		GapInnerH:     10,
		GapInnerV:     10,
		GapOuterH:     10,
		GapOuterV:     10,
		Layout:        "tile",
	}
}

func TestOnNewOutputFirstMonitorIsFocused(t *testing.T) {
	mons, _, _ := newTestSetup()

	h, err := mons.OnNewOutput("out-handle", "DP-1", 0, 0, 1920, 1080, defaultParams())
	require.NoError(t, err)

	fh, mon, ok := mons.Focused()
	require.True(t, ok)
	assert.Equal(t, h, fh)
	assert.True(t, mon.Focused)
	assert.Equal(t, 1920, mon.UsableWidth)
}

func TestOnNewOutputRejectsMissingArgs(t *testing.T) {
	mons, _, _ := newTestSetup()
	_, err := mons.OnNewOutput(nil, "DP-1", 0, 0, 100, 100, defaultParams())
	require.Error(t, err)
}

func TestOnNewOutputReattachesRememberedClients(t *testing.T) {
	mons, clients, _ := newTestSetup()

	h1, err := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())
	require.NoError(t, err)

	ch, _, _ := clients.Create(client.CreateParams{Monitor: h1, OutputName: "DP-1"})
	require.NoError(t, clients.Map(ch, "term", "term"))

	require.NoError(t, mons.Destroy(h1))
	c, _ := clients.Get(ch)
	assert.False(t, c.Monitor.Valid())

	h2, err := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())
	require.NoError(t, err)

	c, _ = clients.Get(ch)
	assert.Equal(t, h2, c.Monitor)
}

func TestDestroyAdvancesFocus(t *testing.T) {
	mons, _, _ := newTestSetup()
	h1, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())
	h2, _ := mons.OnNewOutput("b", "DP-2", 1920, 0, 1920, 1080, defaultParams())

	require.NoError(t, mons.Destroy(h1))

	fh, _, ok := mons.Focused()
	require.True(t, ok)
	assert.Equal(t, h2, fh)
}

func TestAdjustMFactClamps(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())

	require.NoError(t, mons.AdjustMFact(h, -10))
	mon, _ := mons.Get(h)
	assert.InDelta(t, 0.05, mon.MasterFactor, 0.001)

	require.NoError(t, mons.AdjustMFact(h, 10))
	mon, _ = mons.Get(h)
	assert.InDelta(t, 0.95, mon.MasterFactor, 0.001)
}

func TestAdjustNMasterClampsToZero(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())

	require.NoError(t, mons.AdjustNMaster(h, -10))
	mon, _ := mons.Get(h)
	assert.Equal(t, 0, mon.NMaster)
}

func TestSetLayoutRejectsUnknownName(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())

	err := mons.SetLayout(h, "nonexistent")
	require.Error(t, err)
}

func TestArrangeMonitorPlacesTiledClients(t *testing.T) {
	mons, clients, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1000, 1000, defaultParams())

	c1, _, _ := clients.Create(client.CreateParams{Monitor: h})
	c2, _, _ := clients.Create(client.CreateParams{Monitor: h})
	require.NoError(t, clients.Map(c1, "a", "a"))
	require.NoError(t, clients.Map(c2, "b", "b"))

	require.NoError(t, mons.ArrangeMonitor(h))

	cc1, _ := clients.Get(c1)
	cc2, _ := clients.Get(c2)
	assert.NotZero(t, cc1.Width)
	assert.NotZero(t, cc2.Width)
}

func TestArrangeSkipsWhenNoTiledClients(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1000, 1000, defaultParams())
	require.NoError(t, mons.ArrangeMonitor(h))
}

func TestSetUsableAreaClipsBelowFullOutput(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())

	require.NoError(t, mons.SetUsableArea(h, 0, 30, 1920, 1050))
	mon, _ := mons.Get(h)
	assert.Equal(t, 1050, mon.UsableHeight)
	assert.Equal(t, 30, mon.UsableY)
}

func TestAdjustScrollerRatioClamps(t *testing.T) {
	mons, _, _ := newTestSetup()
	h, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())

	require.NoError(t, mons.AdjustScrollerRatio(h, -10))
	mon, _ := mons.Get(h)
	assert.InDelta(t, scrollerRatioMin, mon.ScrollerRatio, 0.001)

	require.NoError(t, mons.AdjustScrollerRatio(h, 10))
	mon, _ = mons.Get(h)
	assert.InDelta(t, scrollerRatioMax, mon.ScrollerRatio, 0.001)
}

func TestFocusAdjacentCyclesAmongMonitors(t *testing.T) {
	mons, _, _ := newTestSetup()
	h1, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())
	h2, _ := mons.OnNewOutput("b", "DP-2", 1920, 0, 1920, 1080, defaultParams())

	fh, _, _ := mons.Focused()
	require.Equal(t, h1, fh, "only the first output added is auto-focused")

	next, err := mons.FocusAdjacent(true)
	require.NoError(t, err)
	assert.Equal(t, h2, next)

	fh, _, _ = mons.Focused()
	assert.Equal(t, h2, fh)
}

func TestEachVisitsEveryMonitor(t *testing.T) {
	mons, _, _ := newTestSetup()
	h1, _ := mons.OnNewOutput("a", "DP-1", 0, 0, 1920, 1080, defaultParams())
	h2, _ := mons.OnNewOutput("b", "DP-2", 1920, 0, 1920, 1080, defaultParams())

	seen := make(map[string]bool)
	mons.Each(func(h handle.Handle, mon *Monitor) { seen[mon.Name] = true })

	assert.True(t, seen["DP-1"])
	assert.True(t, seen["DP-2"])
	_ = h1
	_ = h2
}
