package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineStartsEmpty(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.Count())
}

func TestAddMultiple(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "firefox"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "thunderbird"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "mpv", ForcedFloating: true}))
	assert.Equal(t, 3, e.Count())
}

func TestAddRejectsOverCapacity(t *testing.T) {
	e := New()
	for i := 0; i < maxRules; i++ {
		require.NoError(t, e.Add(Rule{AppIDPattern: "x"}))
	}
	err := e.Add(Rule{AppIDPattern: "overflow"})
	require.Error(t, err)
	assert.Equal(t, maxRules, e.Count())
}

func TestGetRoundTrip(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{
		AppIDPattern:   "firefox",
		TitlePattern:   "Mozilla.*",
		ForcedFloating: true,
	}))

	got, ok := e.Get(0)
	require.True(t, ok)
	assert.Equal(t, "firefox", got.AppIDPattern)
	assert.Equal(t, "Mozilla.*", got.TitlePattern)
	assert.True(t, got.ForcedFloating)
}

func TestGetOutOfBounds(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "test"}))

	_, ok := e.Get(1)
	assert.False(t, ok)
	_, ok = e.Get(100)
	assert.False(t, ok)
	_, ok = e.Get(-1)
	assert.False(t, ok)
}

func TestRemoveMiddle(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "first"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "second"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "third"}))

	require.NoError(t, e.Remove(1))
	assert.Equal(t, 2, e.Count())

	r0, _ := e.Get(0)
	r1, _ := e.Get(1)
	assert.Equal(t, "first", r0.AppIDPattern)
	assert.Equal(t, "third", r1.AppIDPattern)
}

func TestRemoveFirstAndLast(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "first"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "second"}))

	require.NoError(t, e.Remove(0))
	assert.Equal(t, 1, e.Count())
	r0, _ := e.Get(0)
	assert.Equal(t, "second", r0.AppIDPattern)

	require.NoError(t, e.Remove(0))
	assert.Equal(t, 0, e.Count())
}

func TestRemoveInvalidIndex(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "test"}))

	err := e.Remove(5)
	require.Error(t, err)
	assert.Equal(t, 1, e.Count())
}

func TestClear(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "first"}))
	require.NoError(t, e.Add(Rule{AppIDPattern: "second"}))

	e.Clear()
	assert.Equal(t, 0, e.Count())

	require.NoError(t, e.Add(Rule{AppIDPattern: "third"}))
	assert.Equal(t, 1, e.Count())
}

func TestApplyFirstMatchWins(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "^firefox.*$", ForcedFloating: false}))
	require.NoError(t, e.Add(Rule{AppIDPattern: ".*", ForcedFloating: true}))

	m, ok := e.Apply(Subject{AppID: "firefox-esr"})
	require.True(t, ok)
	assert.Equal(t, 0, m.Index)
	assert.False(t, m.Rule.ForcedFloating)

	m, ok = e.Apply(Subject{AppID: "anything-else"})
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	assert.True(t, m.Rule.ForcedFloating)
}

func TestApplyTitlePattern(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{TitlePattern: ".*YouTube.*"}))

	_, ok := e.Apply(Subject{Title: "Cat video - YouTube"})
	assert.True(t, ok)

	_, ok = e.Apply(Subject{Title: "unrelated"})
	assert.False(t, ok)
}

func TestApplyBothPatternsMustMatch(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "mpv", TitlePattern: `.*\.mp4$`, ForcedFloating: true}))

	_, ok := e.Apply(Subject{AppID: "mpv", Title: "movie.mp4"})
	assert.True(t, ok)

	_, ok = e.Apply(Subject{AppID: "mpv", Title: "movie.mkv"})
	assert.False(t, ok)
}

func TestApplyNonNullPatternAgainstAbsentAttributeFails(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{AppIDPattern: "firefox"}))

	_, ok := e.Apply(Subject{AppID: ""})
	assert.False(t, ok)
}

func TestApplyNoPatternAlwaysPasses(t *testing.T) {
	e := New()
	require.NoError(t, e.Add(Rule{ForcedFloating: true}))

	m, ok := e.Apply(Subject{})
	require.True(t, ok)
	assert.True(t, m.Rule.ForcedFloating)
}

func TestApplyNoRulesNoMatch(t *testing.T) {
	e := New()
	_, ok := e.Apply(Subject{AppID: "anything"})
	assert.False(t, ok)
}

func TestAddWithInvalidRegexIsInactiveNotRejected(t *testing.T) {
	e := New()
	err := e.Add(Rule{AppIDPattern: "(unterminated["})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Count())

	_, ok := e.Apply(Subject{AppID: "(unterminated["})
	assert.False(t, ok)
}
