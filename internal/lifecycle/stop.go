package lifecycle

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/engine"
	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/profile"
	"github.com/dragontooth/launcher/internal/runparams"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

// Stop requests an orderly end to the current run: stop-game, collect
// parameter drift, merge and persist it into the active profile, then
// close the engine instance (spec §4.10, §8: idempotent persistence).
func (c *Coordinator) Stop() error {
	c.mu.RLock()
	inst := c.inst
	rp := c.params
	c.mu.RUnlock()

	if inst == nil {
		return launcherr.New(launcherr.InvalidState, "lifecycle", "no game is running")
	}

	c.setStatus(StatusStopping)

	drift, err := inst.StopGame()
	if err != nil && !launcherr.Is(err, launcherr.InvalidState) {
		if c.log != nil {
			c.log.Warn("lifecycle", "stop-game failed: "+err.Error())
		}
	}

	if rp != nil && rp.Profile != nil && len(drift) > 0 {
		if perr := c.persistDrift(rp, drift); perr != nil && c.log != nil {
			c.log.Warn("lifecycle", "failed to persist parameter drift: "+perr.Error())
		}
	}

	closeErr := inst.Close()
	c.finish()
	return closeErr
}

// Kill forcibly terminates the current run without collecting drift,
// for use when the game is unresponsive.
func (c *Coordinator) Kill() error {
	c.mu.RLock()
	inst := c.inst
	c.mu.RUnlock()

	if inst == nil {
		return launcherr.New(launcherr.InvalidState, "lifecycle", "no game is running")
	}

	c.setStatus(StatusStopping)
	err := inst.Close()
	c.finish()
	return err
}

func (c *Coordinator) finish() {
	c.mu.Lock()
	c.inst = nil
	if c.exitCh != nil {
		select {
		case <-c.exitCh:
		default:
			close(c.exitCh)
		}
	}
	c.mu.Unlock()
	c.setStatus(StatusStopped)
}

// persistDrift merges each drifted (module, parameter) value into
// rp.Profile's overrides and, for a named profile, writes it to
// profiles/<name>.xml on c.fs. An anonymous profile (empty name), or a
// coordinator without a filesystem, gets the merge in memory only and
// nothing is written. Merging into a map keyed by module and parameter
// makes a repeated call with the same drift a no-op (spec §8
// idempotent persistence).
func (c *Coordinator) persistDrift(rp *runparams.RunParams, drift []engine.ParamValue) error {
	p := rp.Profile
	mergeDrift(p, drift)

	if c.fs == nil || p.Name == "" {
		return nil
	}

	data, err := xmlcodec.EncodeProfile(profile.ToXML(p))
	if err != nil {
		return launcherr.Wrap(launcherr.IOFailed, "lifecycle", err, "encode profile")
	}

	path := fmt.Sprintf("profiles/%s.xml", p.Name)
	if err := afero.WriteFile(c.fs, path, data, 0o644); err != nil {
		return launcherr.Wrapf(launcherr.IOFailed, "lifecycle", err, "write profile %q", path)
	}
	return nil
}

// mergeDrift applies drifted parameter values onto p's overrides.
// Re-applying the identical drift a second time is a no-op since each
// entry simply overwrites the same map key with the same value.
func mergeDrift(p *profile.Profile, drift []engine.ParamValue) {
	if p.ParameterOverrides == nil {
		p.ParameterOverrides = make(map[string]map[string]string)
	}
	for _, d := range drift {
		overrides, ok := p.ParameterOverrides[d.ModuleName]
		if !ok {
			overrides = make(map[string]string)
			p.ParameterOverrides[d.ModuleName] = overrides
		}
		overrides[d.Parameter] = d.Value
	}
}
