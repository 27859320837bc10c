package compositor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/ipc"
)

func TestGetWindowsReturnsJSONArray(t *testing.T) {
	c := newTestCompositor(t)
	newTestMonitor(t, c, "eDP-1")
	mh, _, _ := c.Monitors.Focused()

	h, _, err := c.Clients.Create(client.CreateParams{Monitor: mh})
	require.NoError(t, err)
	require.NoError(t, c.Clients.Map(h, "footclient", "a terminal"))

	resp, err := c.cmdGetWindows("")
	require.NoError(t, err)

	var windows []windowJSON
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &windows))
	require.Len(t, windows, 1)
	assert.Equal(t, "footclient", windows[0].AppID)
	assert.True(t, windows[0].Focused)
}

func TestGetMonitorsReturnsJSONArray(t *testing.T) {
	c := newTestCompositor(t)
	newTestMonitor(t, c, "eDP-1")

	resp, err := c.cmdGetMonitors("")
	require.NoError(t, err)

	var monitors []monitorJSON
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &monitors))
	require.Len(t, monitors, 1)
	assert.Equal(t, "eDP-1", monitors[0].Name)
}

func TestGetLayoutsListsBuiltins(t *testing.T) {
	c := newTestCompositor(t)

	resp, err := c.cmdGetLayouts("")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &names))
	assert.ElementsMatch(t, []string{"tile", "floating", "monocle", "scroller"}, names)
}

func TestFocusAndCloseCommandsResolveByID(t *testing.T) {
	c := newTestCompositor(t)
	newTestMonitor(t, c, "eDP-1")
	mh, _, _ := c.Monitors.Focused()

	h, cl, err := c.Clients.Create(client.CreateParams{Monitor: mh})
	require.NoError(t, err)
	require.NoError(t, c.Clients.Map(h, "a", "a"))

	resp, err := c.cmdFocus(fmt.Sprint(cl.ID))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Output)

	resp, err = c.cmdClose(fmt.Sprint(cl.ID))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Output)

	_, ok := c.Clients.Get(h)
	assert.False(t, ok)
}

func TestFocusCommandRejectsUnknownID(t *testing.T) {
	c := newTestCompositor(t)
	_, err := c.cmdFocus("999")
	assert.Error(t, err)
}

func TestQuitCommandSetsShouldQuit(t *testing.T) {
	c := newTestCompositor(t)
	resp, err := c.cmdQuit("")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Output)
	assert.True(t, c.ShouldQuit())
}

func TestOutputPowerRequiresNameAndState(t *testing.T) {
	c := newTestCompositor(t)

	_, err := c.cmdOutputPower("eDP-1")
	assert.Error(t, err)

	resp, err := c.cmdOutputPower("eDP-1 off")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Output)
}

func TestRegisterCommandsPopulatesCommandTable(t *testing.T) {
	c := newTestCompositor(t)
	table := ipc.NewCommandTable()
	require.NoError(t, c.registerCommands(table))

	for _, name := range []string{"get-windows", "get-monitors", "get-layouts", "focus", "close", "layout", "quit", "reload-config", "output-power"} {
		_, ok := table.Get(name)
		assert.True(t, ok, "expected command %q to be registered", name)
	}
}
