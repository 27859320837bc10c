package ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swl-wm/swl/internal/eventbus"
)

func TestSubscribeParsesEventTypes(t *testing.T) {
	ct := NewCommandTable()
	require.NoError(t, RegisterSubscribe(ct))

	fn, ok := ct.Get("subscribe")
	require.True(t, ok)

	resp, err := fn("CLIENT_CREATE CLIENT_DESTROY")
	require.NoError(t, err)
	assert.True(t, resp.KeepOpen)
	assert.Equal(t, []eventbus.Type{eventbus.ClientCreate, eventbus.ClientDestroy}, resp.EventMask)
}

func TestSubscribeRejectsUnknownType(t *testing.T) {
	ct := NewCommandTable()
	require.NoError(t, RegisterSubscribe(ct))

	fn, _ := ct.Get("subscribe")
	_, err := fn("NOT_A_REAL_EVENT")
	require.Error(t, err)
}

func TestSubscribeRejectsEmptyArgument(t *testing.T) {
	ct := NewCommandTable()
	require.NoError(t, RegisterSubscribe(ct))

	fn, _ := ct.Get("subscribe")
	_, err := fn("")
	require.Error(t, err)
}
