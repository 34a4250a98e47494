package lifecycle

import (
	"fmt"

	"github.com/dragontooth/launcher/internal/engine"
	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/runparams"
)

// Start drives g through the full launch sequence of spec §4.10: spawn
// the engine child, load modules, activate the resolved profile
// (disable → activate → parameters), set the data directory and cache
// app identifier, replay the mounted VFS containers, set command-line
// arguments, create the render window, and start the game object. On
// any failure the partially-started instance is closed before the
// error is returned.
func (c *Coordinator) Start(g *game.Game, rp *runparams.RunParams) error {
	if c.IsRunning() {
		return launcherr.New(launcherr.InvalidState, "lifecycle", "a game is already running")
	}

	c.setStatus(StatusStarting)

	inst, err := c.spawn()
	if err != nil {
		c.setStatus(StatusFailed)
		return launcherr.Wrap(launcherr.IOFailed, "lifecycle", err, "spawn engine instance")
	}

	if err := c.startSequence(inst, g, rp); err != nil {
		_ = inst.Close()
		c.setStatus(StatusFailed)
		return err
	}

	c.mu.Lock()
	c.inst = inst
	c.game = g
	c.params = rp
	c.exitCh = make(chan struct{})
	c.mu.Unlock()

	c.setStatus(StatusRunning)
	if c.log != nil {
		c.log.Info("lifecycle", fmt.Sprintf("game %s started", g.Title))
	}
	return nil
}

// bestIconPath picks the largest declared icon's path for the render
// window, or "" if the game has none.
func bestIconPath(g *game.Game) string {
	var best *game.Icon
	for i := range g.Icons {
		if best == nil || g.Icons[i].Size > best.Size {
			best = &g.Icons[i]
		}
	}
	if best == nil {
		return ""
	}
	return best.Path
}

func (c *Coordinator) startSequence(inst engine.EngineInstance, g *game.Game, rp *runparams.RunParams) error {
	if err := inst.LoadModules(); err != nil {
		return err
	}

	if rp.Profile != nil {
		if err := rp.Profile.Activate(c.modules, inst); err != nil {
			return err
		}
	}

	if g.ScriptModule.Name != "" {
		if err := inst.ActivateModule(g.ScriptModule.Name, g.Verification.ResolvedScriptVer); err != nil {
			return err
		}
	}

	if err := inst.SetCacheAppID(g.ID.Hex()); err != nil {
		return err
	}
	if err := inst.SetDataDir(g.DataDirectory); err != nil {
		return err
	}

	if c.vfs != nil {
		for _, container := range c.vfs.Containers() {
			if container.IsArchive {
				if err := inst.VFSAddDelgaFile(container.ArchivePath, g.DataDirectory, container.HiddenPaths()); err != nil {
					return err
				}
				continue
			}
			if err := inst.VFSAddDiskDir(container.VirtualRoot, container.NativeDir, container.ReadOnly, container.HiddenPaths()); err != nil {
				return err
			}
		}
	}

	if g.ScriptDirectory != "" {
		if err := inst.VFSAddScriptSharedDataDir(g.ScriptDirectory); err != nil {
			return err
		}
	}

	if err := inst.SetCmdLineArgs(rp.RunArguments); err != nil {
		return err
	}

	if err := inst.CreateRenderWindow(int32(rp.Width), int32(rp.Height), rp.FullScreen, g.Title, bestIconPath(g)); err != nil {
		return err
	}

	snapshot, err := inst.StartGame(g.ScriptDirectory, g.Verification.ResolvedScriptVer, g.GameObject)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	return nil
}
