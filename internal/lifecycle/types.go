// Package lifecycle implements the launch coordinator (C10): the
// Start/Stop/Kill/PulseChecking sequencing that drives one engine
// instance through module loading, profile activation, virtual
// filesystem mounting, and game start, then merges and persists
// whatever parameter drift the run produced (spec §4.10).
package lifecycle

import (
	"sync"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/engine"
	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/module"
	"github.com/dragontooth/launcher/internal/pathvfs"
	"github.com/dragontooth/launcher/internal/runparams"
)

// Status mirrors a run's coarse lifecycle state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusStopped  Status = "stopped"
	StatusFailed   Status = "failed"
)

// Spawner starts a fresh engine instance for one run. Production wiring
// supplies engine.Spawn bound to the configured engine binary; tests
// supply a fake.
type Spawner func() (engine.EngineInstance, error)

// Coordinator drives exactly one game run at a time through its full
// lifecycle.
type Coordinator struct {
	spawn   Spawner
	modules *module.Registry
	vfs     *pathvfs.VFS
	fs      afero.Fs
	log     *logging.Logger

	mu       sync.RWMutex
	status   Status
	inst     engine.EngineInstance
	game     *game.Game
	params   *runparams.RunParams
	snapshot []engine.ParamValue
	exitCh   chan struct{}
}

// New builds a Coordinator. fs is the filesystem used to persist
// drifted profile overrides back to disk.
func New(spawn Spawner, modules *module.Registry, vfs *pathvfs.VFS, fs afero.Fs, log *logging.Logger) *Coordinator {
	return &Coordinator{
		spawn:   spawn,
		modules: modules,
		vfs:     vfs,
		fs:      fs,
		log:     log,
		status:  StatusIdle,
	}
}

// Status returns the coordinator's current lifecycle state.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Coordinator) setStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

// IsRunning reports whether a game run is currently active (starting
// or running), for readiness-style callers.
func (c *Coordinator) IsRunning() bool {
	s := c.Status()
	return s == StatusStarting || s == StatusRunning
}

// CurrentGame returns the game of the active or most recent run, if
// any.
func (c *Coordinator) CurrentGame() *game.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.game
}
