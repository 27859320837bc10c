// Package eventbus is the core's typed in-process publish/subscribe
// mechanism. Every subsystem — client manager, output manager, input
// manager, IPC — emits onto one Bus and reacts to the others through
// it, keeping subsystems from holding direct references to each other.
package eventbus

import (
	"time"
)

// Type is one of the closed set of event kinds the bus carries.
type Type int

const (
	ClientCreate Type = iota
	ClientDestroy
	ClientFocus
	ClientUnfocus
	ClientFullscreen
	ClientFloat
	ClientMove
	ClientResize
	ClientUrgent
	ClientTag
	MonitorAdd
	MonitorRemove
	MonitorFocus
	LayoutChange
	KeyPress
	KeyRelease
	ConfigReload
	RenderStart
	RenderEnd
	LayerMap
	LayerUnmap
	SessionLock
	SessionUnlock
	LidClose
	LidOpen
)

var typeNames = map[Type]string{
	ClientCreate:     "CLIENT_CREATE",
	ClientDestroy:    "CLIENT_DESTROY",
	ClientFocus:      "CLIENT_FOCUS",
	ClientUnfocus:    "CLIENT_UNFOCUS",
	ClientFullscreen: "CLIENT_FULLSCREEN",
	ClientFloat:      "CLIENT_FLOAT",
	ClientMove:       "CLIENT_MOVE",
	ClientResize:     "CLIENT_RESIZE",
	ClientUrgent:     "CLIENT_URGENT",
	ClientTag:        "CLIENT_TAG",
	MonitorAdd:       "MONITOR_ADD",
	MonitorRemove:    "MONITOR_REMOVE",
	MonitorFocus:     "MONITOR_FOCUS",
	LayoutChange:     "LAYOUT_CHANGE",
	KeyPress:         "KEY_PRESS",
	KeyRelease:       "KEY_RELEASE",
	ConfigReload:     "CONFIG_RELOAD",
	RenderStart:      "RENDER_START",
	RenderEnd:        "RENDER_END",
	LayerMap:         "LAYER_MAP",
	LayerUnmap:       "LAYER_UNMAP",
	SessionLock:      "SESSION_LOCK",
	SessionUnlock:    "SESSION_UNLOCK",
	LidClose:         "LID_CLOSE",
	LidOpen:          "LID_OPEN",
}

// String renders a Type the way IPC subscribers and `subscribe`
// command arguments spell it: upper-snake-case.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseType resolves an upper-snake-case event name back to a Type, as
// used by the IPC `subscribe` command's argument list.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Event is the record a Handler receives. Data is a non-owning opaque
// pointer supplied by the emitter — the bus never inspects it.
type Event struct {
	Type      Type
	Data      any
	Timestamp int64 // monotonic milliseconds
}

// Handler reacts to an Event delivered through a live subscription.
type Handler func(ctx any, event *Event)

const maxSubscriptions = 256

type subscription struct {
	id      int
	typ     Type
	handler Handler
	ctx     any
	active  bool
}

// Bus is a fixed-capacity table of subscriptions. It is not safe for
// concurrent use from multiple goroutines — the core is single
// threaded by design (see §5) and the bus is driven entirely from the
// one event-loop goroutine.
type Bus struct {
	subs   [maxSubscriptions]subscription
	nextID int
	count  int
}

// New creates an empty event bus with nextID seeded at 1, so a
// returned id of 0 is never confused with a valid subscription.
func New() *Bus {
	return &Bus{nextID: 1}
}

// Subscribe registers handler for every Event of the given type and
// returns a subscription id greater than zero, or -1 if the table is
// full or handler is nil.
func (b *Bus) Subscribe(typ Type, handler Handler, ctx any) int {
	if handler == nil || b.count >= maxSubscriptions {
		return -1
	}

	for i := range b.subs {
		if !b.subs[i].active {
			id := b.nextID
			b.nextID++
			b.subs[i] = subscription{id: id, typ: typ, handler: handler, ctx: ctx, active: true}
			b.count++
			return id
		}
	}
	return -1
}

// Unsubscribe removes a subscription. It is idempotent: an unknown or
// already-removed id is a no-op.
func (b *Bus) Unsubscribe(id int) {
	if id <= 0 {
		return
	}
	for i := range b.subs {
		if b.subs[i].active && b.subs[i].id == id {
			b.subs[i] = subscription{}
			b.count--
			return
		}
	}
}

// Emit synchronously invokes every live subscription matching
// event.Type, in subscription-table order, which for subscriptions
// inserted without any intervening Unsubscribe is insertion order.
// The handler list observed at the start of this call is the one
// iterated — subscribes/unsubscribes from inside a handler only take
// effect on the next Emit.
func (b *Bus) Emit(event *Event) {
	if event == nil {
		return
	}
	snapshot := b.subs
	for i := range snapshot {
		s := snapshot[i]
		if s.active && s.typ == event.Type {
			s.handler(s.ctx, event)
		}
	}
}

// EmitSimple stamps the current monotonic-millisecond time and emits.
func (b *Bus) EmitSimple(typ Type, data any) {
	b.Emit(&Event{
		Type:      typ,
		Data:      data,
		Timestamp: nowMillis(),
	})
}

// Count returns the number of currently live subscriptions.
func (b *Bus) Count() int {
	return b.count
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
