package compositor

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/swl-wm/swl/internal/config"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/monitor"
	"github.com/swl-wm/swl/internal/toolkit"
)

// Run starts the IPC server, the SIGCHLD reaper, the signal-driven
// quit flag, the toolkit event pump, and the config file watcher, then
// blocks consuming toolkit events until ShouldQuit is set or ctx is
// canceled. Grounded on the teacher's internal/server/manager.go
// Start/Stop pairing, generalized from its KVM-session loop to this
// domain's toolkit-event consumption loop.
func (c *Compositor) Run(ctx context.Context) error {
	if err := c.IPC.Start(); err != nil {
		return fmt.Errorf("compositor: starting ipc server: %w", err)
	}
	defer c.IPC.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	chldCh := make(chan os.Signal, 1)
	signal.Notify(chldCh, syscall.SIGCHLD)
	defer signal.Stop(chldCh)

	if start := c.Config.GetString("general.startup_command", ""); start != "" {
		c.Spawn(start)
	}

	watcher, err := c.Config.WatchFile(func(err error) {
		if err != nil {
			log.Warn("compositor: config file reload failed", "err", err)
			return
		}
		c.Input.LoadFromConfig(c.Config)
		log.Info("compositor: config reloaded from file change")
	})
	if err != nil {
		log.Warn("compositor: could not watch config file", "err", err)
	}
	c.watcher = watcher
	defer c.watcher.Close()

	tkErrCh := make(chan error, 1)
	go func() {
		tkErrCh <- c.Toolkit.Run(runCtx)
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil
		case <-c.quitCh:
			return nil
		case sig := <-sigCh:
			log.Info("compositor: received signal, quitting", "signal", sig)
			c.Quit()
		case <-chldCh:
			c.reaper.reapOnce()
		case ev, ok := <-c.Toolkit.Outputs():
			if !ok {
				return nil
			}
			c.handleOutputEvent(ev)
		case ev, ok := <-c.Toolkit.Inputs():
			if !ok {
				return nil
			}
			c.handleInputEvent(ev)
		case err := <-tkErrCh:
			if err != nil {
				return fmt.Errorf("compositor: toolkit run failed: %w", err)
			}
		}
	}
}

func (c *Compositor) handleOutputEvent(ev toolkit.OutputEvent) {
	if ev.Removed {
		c.Monitors.Each(func(h handle.Handle, mon *monitor.Monitor) {
			if mon.Name == ev.Name {
				if err := c.Monitors.Destroy(h); err != nil {
					log.Warn("compositor: destroy monitor failed", "name", ev.Name, "err", err)
				}
			}
		})
		return
	}

	params := c.layoutParamsForOutput(ev.Name)
	if _, err := c.Monitors.OnNewOutput(ev, ev.Name, int(ev.X), int(ev.Y), int(ev.Width), int(ev.Height), params); err != nil {
		log.Warn("compositor: on new output failed", "name", ev.Name, "err", err)
	}
}

func (c *Compositor) handleInputEvent(ev toolkit.InputEvent) {
	log.Debug("compositor: seat reported", "name", ev.Name, "pointer", ev.HasPointer, "keyboard", ev.HasKeyboard)
}

// layoutParamsForOutput reads monitors.<name>.* overrides, falling
// back to the global appearance defaults, per the config schema's
// [[monitors]] table-array section (§6).
func (c *Compositor) layoutParamsForOutput(name string) monitor.LayoutRequestParams {
	prefix := "monitors." + name + "."
	return monitor.LayoutRequestParams{
		MasterFactor:  c.Config.GetFloat(prefix+"master_factor", c.Config.GetFloat("appearance.mfact", config.DefaultMasterFactor)),
		ScrollerRatio: c.Config.GetFloat(prefix+"scroller_ratio", c.Config.GetFloat("appearance.scroller_ratio", config.DefaultScrollerRatio)),
		NMaster:       int(c.Config.GetInt(prefix+"nmaster", c.Config.GetInt("appearance.nmaster", config.DefaultNMaster))),
		GapInnerH:     int(c.Config.GetInt("appearance.gaps.inner_h", config.DefaultGapInnerH)),
		GapInnerV:     int(c.Config.GetInt("appearance.gaps.inner_v", config.DefaultGapInnerV)),
		GapOuterH:     int(c.Config.GetInt("appearance.gaps.outer_h", config.DefaultGapOuterH)),
		GapOuterV:     int(c.Config.GetInt("appearance.gaps.outer_v", config.DefaultGapOuterV)),
		Layout:        c.Config.GetString(prefix+"layout", c.Config.GetString("appearance.layout", config.DefaultLayout)),
	}
}
