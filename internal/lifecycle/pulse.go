package lifecycle

import (
	"context"
	"time"

	"github.com/dragontooth/launcher/internal/engine"
)

// exitObserver is implemented by engine instances that can report
// child-process exit without blocking (ThreadedInstance); a
// DirectInstance has no separate process and is never reported exited
// by a pulse check.
type exitObserver interface {
	Exited() bool
}

// pipeExitPeeker is implemented by engine instances that can detect an
// unsolicited game-exit notification arriving on the control pipe
// without a command having been sent (ThreadedInstance); a
// DirectInstance has no pipe to peek.
type pipeExitPeeker interface {
	PeekGameExited() (bool, []engine.ParamValue, error)
}

// PulseChecking performs one non-blocking liveness check of the active
// run. It first checks for a pipe-reported game exit — the documented
// path for a game quitting on its own (spec §4.10, §5) — collecting and
// persisting any parameter drift the same way an explicit Stop would.
// Failing that, if the engine child's OS process has already died
// without either signal, the run is marked failed. It is a no-op when
// no run is active.
func (c *Coordinator) PulseChecking() {
	c.mu.RLock()
	inst := c.inst
	rp := c.params
	status := c.status
	c.mu.RUnlock()

	if inst == nil || status != StatusRunning {
		return
	}

	if peeker, ok := inst.(pipeExitPeeker); ok {
		exited, drift, err := peeker.PeekGameExited()
		if err != nil {
			if c.log != nil {
				c.log.Warn("lifecycle", "error checking engine pipe for exit notification: "+err.Error())
			}
		} else if exited {
			if c.log != nil {
				c.log.Info("lifecycle", "engine reported game exit")
			}
			if rp != nil && rp.Profile != nil && len(drift) > 0 {
				if perr := c.persistDrift(rp, drift); perr != nil && c.log != nil {
					c.log.Warn("lifecycle", "failed to persist parameter drift: "+perr.Error())
				}
			}
			_ = inst.Close()
			c.finish()
			return
		}
	}

	observer, ok := inst.(exitObserver)
	if !ok || !observer.Exited() {
		return
	}

	if c.log != nil {
		c.log.Warn("lifecycle", "engine process exited without an explicit stop request")
	}
	c.finish()
	c.setStatus(StatusFailed)
}

// RunPulseLoop calls PulseChecking on a ticker until ctx is canceled,
// for a host that wants continuous monitoring of the active run rather
// than calling PulseChecking itself on its own schedule.
func (c *Coordinator) RunPulseLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.PulseChecking()
		}
	}
}
