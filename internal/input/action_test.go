package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTableRegisterAndGet(t *testing.T) {
	at := NewActionTable()
	called := false
	require.NoError(t, at.Register("close", func(any, string) { called = true }))

	fn, ok := at.Get("close")
	require.True(t, ok)
	fn(nil, "")
	assert.True(t, called)
}

func TestActionTableRejectsDuplicateName(t *testing.T) {
	at := NewActionTable()
	require.NoError(t, at.Register("quit", func(any, string) {}))
	err := at.Register("quit", func(any, string) {})
	require.Error(t, err)
}

func TestActionTableUnregisterRemoves(t *testing.T) {
	at := NewActionTable()
	require.NoError(t, at.Register("quit", func(any, string) {}))
	at.Unregister("quit")
	_, ok := at.Get("quit")
	assert.False(t, ok)
}

func TestActionTableRejectsAtCapacity(t *testing.T) {
	at := NewActionTable()
	for i := 0; i < maxActions; i++ {
		require.NoError(t, at.Register(string(rune('a'+i%26))+string(rune('0'+i/26)), func(any, string) {}))
	}
	err := at.Register("overflow", func(any, string) {})
	require.Error(t, err)
}

func TestCanonicalActionNameAliases(t *testing.T) {
	assert.Equal(t, "close", canonicalActionName("killclient"))
	assert.Equal(t, "focus-next", canonicalActionName("focusstack"))
	assert.Equal(t, "toggle-floating", canonicalActionName("togglefloating"))
	assert.Equal(t, "setlayout", canonicalActionName("set-layout"))
	assert.Equal(t, "focus-monitor", canonicalActionName("focusmon"))
	assert.Equal(t, "send-monitor", canonicalActionName("tagmon"))
	assert.Equal(t, "inc-nmaster", canonicalActionName("incnmaster"))
	assert.Equal(t, "inc-mfact", canonicalActionName("setmfact"))
	assert.Equal(t, "unchanged", canonicalActionName("unchanged"))
}
