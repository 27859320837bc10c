package toolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWaylandToolkitChannelsReady(t *testing.T) {
	wt := NewWaylandToolkit()

	assert.NotNil(t, wt.Outputs())
	assert.NotNil(t, wt.Inputs())
	assert.NotNil(t, wt.Toplevels())
	assert.NotNil(t, wt.LayerSurfaces())
	assert.NotNil(t, wt.SessionLocks())
	assert.NotNil(t, wt.XdgActivations())
}

func TestWaylandToolkitCloseWithoutRunIsSafe(t *testing.T) {
	wt := NewWaylandToolkit()

	assert.NoError(t, wt.Close())
	// a second Close must not panic on already-closed channels
	assert.NoError(t, wt.Close())

	_, open := <-wt.Outputs()
	assert.False(t, open)
}

func TestWaylandToolkitEmitDropsWhenChannelFull(t *testing.T) {
	wt := NewWaylandToolkit()
	wt.outputs = make(chan OutputEvent, 1)

	wt.emitOutput(OutputEvent{Name: "a"})
	wt.emitOutput(OutputEvent{Name: "b"}) // dropped, channel already full

	ev := <-wt.outputs
	assert.Equal(t, "a", ev.Name)
}
