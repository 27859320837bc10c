package ipc

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/swl-wm/swl/internal/eventbus"
	"github.com/swl-wm/swl/internal/swlerr"
)

const maxSubscribers = 256

// eventLine is the NDJSON shape one streamed event is encoded as.
type eventLine struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

type subscriber struct {
	conn    net.Conn
	subIDs  []int
}

// subscriberTable tracks every promoted connection and the bus
// subscription ids backing it, so a closed or write-failing
// connection can be torn down without leaking bus subscriptions.
// Guarded by a mutex: registration happens on a connection-handling
// goroutine, removal can be triggered from the event-bus's calling
// goroutine when a streamed write fails.
type subscriberTable struct {
	mu      sync.Mutex
	entries []*subscriber
}

func newSubscriberTable() *subscriberTable {
	return &subscriberTable{entries: make([]*subscriber, 0, maxSubscribers)}
}

// add promotes conn into an event-streaming subscriber for every type
// in mask. Overflow at subscription time returns NoMem; the caller is
// expected to close the connecting fd per §4.8.
func (t *subscriberTable) add(bus *eventbus.Bus, conn net.Conn, mask []eventbus.Type) (*subscriber, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= maxSubscribers {
		return nil, swlerr.ErrNoMem
	}

	sub := &subscriber{conn: conn}
	for _, typ := range mask {
		id := bus.Subscribe(typ, func(ctx any, ev *eventbus.Event) {
			t.deliver(bus, sub, ev)
		}, nil)
		if id < 0 {
			for _, existing := range sub.subIDs {
				bus.Unsubscribe(existing)
			}
			return nil, swlerr.ErrNoMem
		}
		sub.subIDs = append(sub.subIDs, id)
	}

	t.entries = append(t.entries, sub)
	return sub, nil
}

// deliver writes one NDJSON line for ev to sub's connection. A write
// failure silently removes the subscriber, per §4.8.
func (t *subscriberTable) deliver(bus *eventbus.Bus, sub *subscriber, ev *eventbus.Event) {
	line, err := json.Marshal(eventLine{Type: ev.Type.String(), Timestamp: ev.Timestamp, Data: ev.Data})
	if err != nil {
		return
	}
	line = append(line, '\n')
	if _, err := sub.conn.Write(line); err != nil {
		t.remove(bus, sub)
	}
}

// remove unsubscribes every bus subscription sub owns and drops it
// from the table. Idempotent.
func (t *subscriberTable) remove(bus *eventbus.Bus, sub *subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e == sub {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	for _, id := range sub.subIDs {
		bus.Unsubscribe(id)
	}
}

func (t *subscriberTable) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
