package ipc

import (
	"fmt"
	"strings"

	"github.com/swl-wm/swl/internal/eventbus"
)

// RegisterSubscribe installs the "subscribe" command: its argument is
// a space-separated list of event-type names (as eventbus.Type.String
// spells them), and its Response promotes the connection via
// KeepOpen/EventMask. Unknown type names are reported, not silently
// dropped, since a typo'd subscription would otherwise stream nothing
// and look like a server bug.
func RegisterSubscribe(table *CommandTable) error {
	return table.Register("subscribe", func(arg string) (Response, error) {
		names := strings.Fields(arg)
		if len(names) == 0 {
			return Response{}, fmt.Errorf("subscribe requires at least one event type")
		}
		mask := make([]eventbus.Type, 0, len(names))
		for _, n := range names {
			typ, ok := eventbus.ParseType(n)
			if !ok {
				return Response{}, fmt.Errorf("unknown event type: %s", n)
			}
			mask = append(mask, typ)
		}
		return Response{Output: "ok", KeepOpen: true, EventMask: mask}, nil
	})
}
