package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/rule"
	"github.com/swl-wm/swl/internal/swlerr"
)

type fakeArranger struct {
	calls []handle.Handle
}

func (f *fakeArranger) Arrange(m handle.Handle) {
	f.calls = append(f.calls, m)
}

func newTestManager() (*Manager, *eventbus.Bus, *fakeArranger) {
	bus := eventbus.New()
	arr := &fakeArranger{}
	m := NewManager(bus, rule.New(), arr)
	return m, bus, arr
}

func TestCreateInsertsAtHeadOfBothLists(t *testing.T) {
	m, _, _ := newTestManager()

	h1, c1, err := m.Create(CreateParams{})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), c1.ID)
	assert.Equal(t, uint32(1), c1.Tags)

	h2, c2, err := m.Create(CreateParams{})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), c2.ID)

	assert.Equal(t, []handle.Handle{h2, h1}, m.order)
	assert.Equal(t, []handle.Handle{h2, h1}, m.focusStack)
}

func TestCreateFloatingForDialogShapedSurface(t *testing.T) {
	m, _, _ := newTestManager()
	_, c, err := m.Create(CreateParams{HasParent: true})
	require.NoError(t, err)
	assert.True(t, c.Floating)
}

func TestMapAppliesRulesAndFocuses(t *testing.T) {
	bus := eventbus.New()
	var created []any
	bus.Subscribe(eventbus.ClientCreate, func(ctx any, e *eventbus.Event) {
		created = append(created, e.Data)
	}, nil)

	rules := rule.New()
	require.NoError(t, rules.Add(rule.Rule{AppIDPattern: "mpv", ForcedFloating: true}))

	arr := &fakeArranger{}
	m := NewManager(bus, rules, arr)

	h, _, _ := m.Create(CreateParams{})
	require.NoError(t, m.Map(h, "mpv", "a movie"))

	c, ok := m.Get(h)
	require.True(t, ok)
	assert.True(t, c.Mapped)
	assert.True(t, c.Floating)
	assert.True(t, c.Focused)
	assert.Len(t, created, 1)
	assert.NotEmpty(t, arr.calls)
}

func TestUnmapRehomesFocus(t *testing.T) {
	m, _, _ := newTestManager()

	h1, _, _ := m.Create(CreateParams{})
	h2, _, _ := m.Create(CreateParams{})
	require.NoError(t, m.Map(h1, "a", "a"))
	require.NoError(t, m.Map(h2, "b", "b"))

	// h2 is most recently mapped, so it holds focus.
	focusedH, _, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, h2, focusedH)

	require.NoError(t, m.Unmap(h2))

	focusedH, focusedC, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, h1, focusedH)
	assert.True(t, focusedC.Focused)
}

func TestDestroyInvalidatesHandle(t *testing.T) {
	m, _, _ := newTestManager()
	h, _, _ := m.Create(CreateParams{})
	require.NoError(t, m.Destroy(h))

	_, ok := m.Get(h)
	assert.False(t, ok)

	err := m.Destroy(h)
	assert.ErrorIs(t, err, swlerr.ErrNotFound)
}

func TestFocusIsIdempotent(t *testing.T) {
	m, bus, _ := newTestManager()
	var focusEvents int
	bus.Subscribe(eventbus.ClientFocus, func(ctx any, e *eventbus.Event) { focusEvents++ }, nil)

	h, _, _ := m.Create(CreateParams{})
	require.NoError(t, m.Focus(h))
	require.NoError(t, m.Focus(h))

	assert.Equal(t, 1, focusEvents)
}

func TestFocusUnfocusesPrevious(t *testing.T) {
	m, bus, _ := newTestManager()
	var unfocused []any
	bus.Subscribe(eventbus.ClientUnfocus, func(ctx any, e *eventbus.Event) {
		unfocused = append(unfocused, e.Data)
	}, nil)

	h1, _, _ := m.Create(CreateParams{})
	h2, _, _ := m.Create(CreateParams{})

	require.NoError(t, m.Focus(h1))
	require.NoError(t, m.Focus(h2))

	c1, _ := m.Get(h1)
	assert.False(t, c1.Focused)
	assert.Len(t, unfocused, 1)
}

func TestZoomSwapsFocusedWithFirstTiled(t *testing.T) {
	m, _, _ := newTestManager()
	mh := handle.Handle{Index: 1, Generation: 1}

	h1, _, _ := m.Create(CreateParams{Monitor: mh})
	h2, _, _ := m.Create(CreateParams{Monitor: mh})
	require.NoError(t, m.Map(h1, "a", "a"))
	require.NoError(t, m.Map(h2, "b", "b"))

	require.NoError(t, m.Focus(h1))
	require.NoError(t, m.Zoom())

	assert.Equal(t, h1, m.order[0])
}

func TestDirectionalFocusPicksNearestInDirection(t *testing.T) {
	m, _, _ := newTestManager()
	mh := handle.Handle{Index: 1, Generation: 1}

	hLeft, _, _ := m.Create(CreateParams{Monitor: mh})
	hRight, _, _ := m.Create(CreateParams{Monitor: mh})
	require.NoError(t, m.Map(hLeft, "a", "a"))
	require.NoError(t, m.Map(hRight, "b", "b"))

	left, _ := m.Get(hLeft)
	left.X, left.Y, left.Width, left.Height = 0, 0, 100, 100

	right, _ := m.Get(hRight)
	right.X, right.Y, right.Width, right.Height = 200, 0, 100, 100

	got, ok := m.DirectionalFocus(hLeft, DirRight)
	require.True(t, ok)
	assert.Equal(t, hRight, got)

	_, ok = m.DirectionalFocus(hRight, DirRight)
	assert.False(t, ok)
}

func TestResizeComputesVisibility(t *testing.T) {
	m, _, _ := newTestManager()
	h, _, _ := m.Create(CreateParams{})

	area := UsableArea{X: 0, Y: 0, Width: 1920, Height: 1080}

	vis, err := m.Resize(h, 0, 0, 800, 600, area)
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, vis)

	vis, err = m.Resize(h, 3000, 3000, 100, 100, area)
	require.NoError(t, err)
	assert.Equal(t, VisibilityHidden, vis)

	vis, err = m.Resize(h, 1800, 0, 400, 400, area)
	require.NoError(t, err)
	assert.Equal(t, VisibilityClipped, vis)
}

func TestResizeShrinksByBorderWidth(t *testing.T) {
	m, _, _ := newTestManager()
	h, c, _ := m.Create(CreateParams{})
	c.BorderWidth = 2

	_, err := m.Resize(h, 10, 10, 110, 60, UsableArea{Width: 1000, Height: 1000})
	require.NoError(t, err)
	assert.Equal(t, 106, c.Width)
	assert.Equal(t, 56, c.Height)
}

func TestSetTagsNormalizesZeroToOne(t *testing.T) {
	m, _, _ := newTestManager()
	h, _, _ := m.Create(CreateParams{})
	require.NoError(t, m.SetTags(h, 0))

	c, _ := m.Get(h)
	assert.Equal(t, uint32(1), c.Tags)
}

func TestDetachAndReattachByOutputName(t *testing.T) {
	m, _, _ := newTestManager()
	mh := handle.Handle{Index: 1, Generation: 1}
	h, _, _ := m.Create(CreateParams{Monitor: mh, OutputName: "DP-1"})

	affected := m.DetachFromMonitor(mh)
	require.Len(t, affected, 1)

	c, _ := m.Get(h)
	assert.False(t, c.Monitor.Valid())
	assert.Equal(t, "DP-1", c.RememberedOutputName)

	newMH := handle.Handle{Index: 5, Generation: 1}
	reattached := m.ReattachByOutputName("DP-1", newMH)
	require.Len(t, reattached, 1)

	c, _ = m.Get(h)
	assert.Equal(t, newMH, c.Monitor)
}

func TestFocusAdjacentCyclesAmongSameMonitorAndTags(t *testing.T) {
	m, _, _ := newTestManager()
	mh := handle.Handle{Index: 1, Generation: 1}

	h1, _, err := m.Create(CreateParams{Monitor: mh})
	require.NoError(t, err)
	require.NoError(t, m.Map(h1, "app1", "one"))

	h2, _, err := m.Create(CreateParams{Monitor: mh})
	require.NoError(t, err)
	require.NoError(t, m.Map(h2, "app2", "two"))

	focused, _, _ := m.Focused()
	require.Equal(t, h2, focused)

	require.NoError(t, m.FocusAdjacent(true))
	focused, _, _ = m.Focused()
	assert.Equal(t, h1, focused)

	require.NoError(t, m.FocusAdjacent(false))
	focused, _, _ = m.Focused()
	assert.Equal(t, h2, focused)
}

func TestFocusAdjacentSkipsDifferentMonitor(t *testing.T) {
	m, _, _ := newTestManager()
	mh1 := handle.Handle{Index: 1, Generation: 1}
	mh2 := handle.Handle{Index: 2, Generation: 1}

	h1, _, err := m.Create(CreateParams{Monitor: mh1})
	require.NoError(t, err)
	require.NoError(t, m.Map(h1, "app1", "one"))

	h2, _, err := m.Create(CreateParams{Monitor: mh2})
	require.NoError(t, err)
	require.NoError(t, m.Map(h2, "app2", "two"))

	err = m.FocusAdjacent(true)
	assert.ErrorIs(t, err, swlerr.ErrNotFound)

	focused, _, _ := m.Focused()
	assert.Equal(t, h2, focused, "focus must not move when no sibling on the same monitor exists")
}

func TestFocusAdjacentErrorsWithoutFocus(t *testing.T) {
	m, _, _ := newTestManager()
	assert.ErrorIs(t, m.FocusAdjacent(true), swlerr.ErrNotFound)
}

func TestEachVisitsEveryClient(t *testing.T) {
	m, _, _ := newTestManager()
	h1, _, _ := m.Create(CreateParams{})
	h2, _, _ := m.Create(CreateParams{})

	seen := make(map[handle.Handle]bool)
	m.Each(func(h handle.Handle, c *Client) { seen[h] = true })

	assert.True(t, seen[h1])
	assert.True(t, seen[h2])
	assert.Len(t, seen, 2)
}

