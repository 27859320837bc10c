package compositor

import (
	"os/exec"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// spawn runs a shell command line detached in its own session, the
// way the `spawn` action and the `-s` startup command both need to:
// neither the compositor nor its own child's children should be tied
// to the compositor's controlling terminal or process group.
func (c *Compositor) spawn(commandLine string) error {
	if commandLine == "" {
		return nil
	}
	cmd := exec.Command("/bin/sh", "-c", commandLine)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}

	c.reaper.track(cmd.Process.Pid)
	return nil
}

// childReaper collects the detached children spawn starts, per §5's
// "a SIGCHLD reaper collects them" rule — spawned children are never
// awaited directly, so without this they'd accumulate as zombies.
type childReaper struct {
	mu      sync.Mutex
	tracked map[int]bool
}

func newChildReaper() *childReaper {
	return &childReaper{tracked: make(map[int]bool)}
}

func (r *childReaper) track(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked[pid] = true
}

func (r *childReaper) untrack(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tracked, pid)
}

// reapOnce collects every exited child currently waitable without
// blocking, via a non-blocking unix.Wait4(-1, ...) loop — the SIGCHLD
// signal only tells us *a* child exited, not which, so this drains
// every one available each time the signal fires.
func (r *childReaper) reapOnce() {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
		if err != nil || pid <= 0 {
			return
		}
		r.untrack(pid)
		log.Debug("compositor: reaped spawned child", "pid", pid)
	}
}
