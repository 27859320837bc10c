package toolkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-wayland/wayland/client"

	"github.com/swl-wm/swl/internal/logger"
)

// WaylandToolkit is the concrete Toolkit adapter. It binds the globals
// a client-side Wayland connection can actually discover (wl_output,
// wl_seat) and translates their callbacks into buffered Go channels.
// Server-only signals that no client-side protocol can originate
// (new_toplevel, new_layer_surface, session_lock, xdg_activation) are
// exposed as channels to satisfy the Toolkit contract but have no
// event source here; a real wlroots-backed toolkit would feed them
// from its own compositor-side protocol implementations.
type WaylandToolkit struct {
	mu       sync.Mutex
	display  *client.Display
	registry *client.Registry

	outputs   chan OutputEvent
	inputs    chan InputEvent
	toplevels chan ToplevelEvent
	layers    chan LayerSurfaceEvent
	locks     chan SessionLockEvent
	activations chan XdgActivationEvent

	outputsByName map[uint32]*client.Output
	seatsByName   map[uint32]*client.Seat

	closed bool
}

var _ Toolkit = (*WaylandToolkit)(nil)

// NewWaylandToolkit returns an unconnected adapter; Run performs the
// actual connection and registry bind.
func NewWaylandToolkit() *WaylandToolkit {
	return &WaylandToolkit{
		outputs:       make(chan OutputEvent, 32),
		inputs:        make(chan InputEvent, 8),
		toplevels:     make(chan ToplevelEvent, 64),
		layers:        make(chan LayerSurfaceEvent, 64),
		locks:         make(chan SessionLockEvent, 4),
		activations:   make(chan XdgActivationEvent, 32),
		outputsByName: make(map[uint32]*client.Output),
		seatsByName:   make(map[uint32]*client.Seat),
	}
}

func (w *WaylandToolkit) Outputs() <-chan OutputEvent             { return w.outputs }
func (w *WaylandToolkit) Inputs() <-chan InputEvent               { return w.inputs }
func (w *WaylandToolkit) Toplevels() <-chan ToplevelEvent         { return w.toplevels }
func (w *WaylandToolkit) LayerSurfaces() <-chan LayerSurfaceEvent { return w.layers }
func (w *WaylandToolkit) SessionLocks() <-chan SessionLockEvent   { return w.locks }
func (w *WaylandToolkit) XdgActivations() <-chan XdgActivationEvent {
	return w.activations
}

// Run connects to the Wayland display, binds the registry, and pumps
// the event loop until ctx is canceled.
func (w *WaylandToolkit) Run(ctx context.Context) error {
	display, err := client.Connect("")
	if err != nil {
		return fmt.Errorf("connect to wayland display: %w", err)
	}

	registry, err := display.GetRegistry()
	if err != nil {
		display.Destroy()
		return fmt.Errorf("get registry: %w", err)
	}

	w.mu.Lock()
	w.display = display
	w.registry = registry
	w.mu.Unlock()

	registry.SetGlobalHandler(w.handleGlobal)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := display.Context().Dispatch(); err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}
	}
}

func (w *WaylandToolkit) handleGlobal(e client.RegistryGlobalEvent) {
	switch e.Interface {
	case "wl_output":
		w.bindOutput(e)
	case "wl_seat":
		w.bindSeat(e)
	default:
		logger.Debugf("toolkit: ignoring unhandled global %s", e.Interface)
	}
}

func (w *WaylandToolkit) bindOutput(e client.RegistryGlobalEvent) {
	output := client.NewOutput(w.display.Context())
	if err := w.registry.Bind(e.Name, e.Interface, e.Version, output); err != nil {
		logger.Warnf("toolkit: bind wl_output: %v", err)
		return
	}

	state := &OutputEvent{Name: fmt.Sprintf("output-%d", e.Name)}

	output.SetGeometryHandler(func(ev client.OutputGeometryEvent) {
		state.X = ev.X
		state.Y = ev.Y
	})
	output.SetModeHandler(func(ev client.OutputModeEvent) {
		state.Width = ev.Width
		state.Height = ev.Height
	})
	output.SetScaleHandler(func(ev client.OutputScaleEvent) {
		state.Scale = ev.Factor
	})
	output.SetNameHandler(func(ev client.OutputNameEvent) {
		state.Name = ev.Name
	})
	output.SetDoneHandler(func(client.OutputDoneEvent) {
		w.emitOutput(*state)
	})

	w.mu.Lock()
	w.outputsByName[e.Name] = output
	w.mu.Unlock()
}

func (w *WaylandToolkit) bindSeat(e client.RegistryGlobalEvent) {
	seat := client.NewSeat(w.display.Context())
	if err := w.registry.Bind(e.Name, e.Interface, e.Version, seat); err != nil {
		logger.Warnf("toolkit: bind wl_seat: %v", err)
		return
	}

	state := &InputEvent{Name: fmt.Sprintf("seat-%d", e.Name)}

	seat.SetCapabilitiesHandler(func(ev client.SeatCapabilitiesEvent) {
		state.HasPointer = ev.Capabilities&client.SeatCapabilityPointer != 0
		state.HasKeyboard = ev.Capabilities&client.SeatCapabilityKeyboard != 0
		w.emitInput(*state)
	})
	seat.SetNameHandler(func(ev client.SeatNameEvent) {
		state.Name = ev.Name
		w.emitInput(*state)
	})

	w.mu.Lock()
	w.seatsByName[e.Name] = seat
	w.mu.Unlock()
}

func (w *WaylandToolkit) emitOutput(ev OutputEvent) {
	select {
	case w.outputs <- ev:
	default:
		logger.Warn("toolkit: output event channel full, dropping event")
	}
}

func (w *WaylandToolkit) emitInput(ev InputEvent) {
	select {
	case w.inputs <- ev:
	default:
		logger.Warn("toolkit: input event channel full, dropping event")
	}
}

// Close disconnects from the display and closes every event channel.
// Safe to call more than once.
func (w *WaylandToolkit) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if w.display != nil {
		w.display.Destroy()
		w.display = nil
	}

	close(w.outputs)
	close(w.inputs)
	close(w.toplevels)
	close(w.layers)
	close(w.locks)
	close(w.activations)

	return nil
}
