package engine

import (
	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/module"
	"github.com/dragontooth/launcher/internal/patch"
	"github.com/dragontooth/launcher/internal/profile"
)

// ParamValue names one module parameter's current value, used both for
// the pre-start snapshot and the post-exit drift report (spec §4.9
// command 15/16).
type ParamValue struct {
	ModuleName    string
	ModuleVersion string
	Parameter     string
	Value         string
}

// EngineInstance is the full command surface spoken to one engine
// child, whether out-of-process over a pipe (ThreadedInstance) or
// in-process via a direct backend (DirectInstance). It is the union of
// the narrower interfaces the domain packages declare for themselves
// (profile.Commander, game.DelgaReader, patch.DelgaReader) plus the
// remaining lifecycle and VFS commands of spec §4.9.
type EngineInstance interface {
	profile.Commander
	game.DelgaReader
	patch.DelgaReader

	// StopProcess requests an orderly shutdown of the engine child
	// (command 0).
	StopProcess() error

	// GetProperty queries one of the four engine path properties
	// (command 1).
	GetProperty(p Property) (string, error)

	// LoadModules instructs the engine to enumerate and load every
	// module beneath its configured module directories (command 2).
	LoadModules() error

	// GetModuleStatus returns a module's verification status, derived
	// from the error code the engine reports (zero ⇒ ready), and that
	// error code itself (command 3).
	GetModuleStatus(name, version string) (module.Status, int, error)

	// GetModuleParamList returns the full parameter description list
	// for one module (command 4).
	GetModuleParamList(name, version string) ([]module.ParameterInfo, error)

	// SetDataDir sets the running game's data directory (command 8).
	SetDataDir(path string) error

	// SetCacheAppID sets the application identifier used to namespace
	// the engine's on-disk cache (command 9).
	SetCacheAppID(appID string) error

	// VFSAddDiskDir mounts a real filesystem directory into the
	// engine's virtual filesystem, hiding any of hiddenPaths beneath it
	// (command 10).
	VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error

	// VFSAddScriptSharedDataDir mounts the script module's shared data
	// directory (command 11).
	VFSAddScriptSharedDataDir(diskPath string) error

	// VFSAddDelgaFile mounts archivePath within a DELGA archive at the
	// virtual filesystem root, hiding any of hiddenPaths beneath it
	// (command 12).
	VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error

	// SetCmdLineArgs sets the composed run arguments passed to the
	// game object on start (command 13).
	SetCmdLineArgs(args string) error

	// CreateRenderWindow creates the game's render window (command 14).
	CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error

	// StartGame starts gameObject from scriptDir at scriptVersion and
	// returns the pre-start parameter snapshot the engine reports back
	// (command 15).
	StartGame(scriptDir, scriptVersion, gameObject string) ([]ParamValue, error)

	// StopGame signals the running game to stop and returns the set of
	// parameters whose value drifted from the pre-start snapshot
	// (command 16).
	StopGame() ([]ParamValue, error)

	// GetDisplayCurrentResolution returns the active display mode of
	// display (command 17).
	GetDisplayCurrentResolution(display int) (DecPoint, error)

	// GetDisplayResolutions lists up to maxCount display modes display
	// supports (command 18).
	GetDisplayResolutions(display, maxCount int) ([]DecPoint, error)

	// SetPathOverlayCaptureConfig sets one of the overlay/capture/config
	// path roots used for screenshots and engine configuration (command
	// 22).
	SetPathOverlayCaptureConfig(kind PathKind, path string) error

	// Close releases any resources (process, pipes) held by the
	// instance. ThreadedInstance sends StopProcess first and escalates
	// to SIGTERM and then SIGKILL if the child does not exit;
	// DirectInstance holds no process and returns nil.
	Close() error
}

var (
	_ EngineInstance = (*ThreadedInstance)(nil)
	_ EngineInstance = (*DirectInstance)(nil)
)
