package engine

import "github.com/dragontooth/launcher/internal/module"

// API is the native engine binding an in-process DirectInstance
// delegates to. No real binding exists in this tree; a host embedding
// the launcher inside the same process as the engine provides one.
// Every method here mirrors one EngineInstance command one-to-one, so
// DirectInstance itself stays a thin pass-through.
type API interface {
	StopProcess() error
	GetProperty(p Property) (string, error)
	LoadModules() error
	GetModuleStatus(name, version string) (module.Status, int, error)
	GetModuleParamList(name, version string) ([]module.ParameterInfo, error)
	SetModuleParameter(name, version, parameter, value string) error
	ActivateModule(name, version string) error
	EnableModule(name, version string, enable bool) error
	SetDataDir(path string) error
	SetCacheAppID(appID string) error
	VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error
	VFSAddScriptSharedDataDir(diskPath string) error
	VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error
	SetCmdLineArgs(args string) error
	CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error
	StartGame(scriptDir, scriptVersion, gameObject string) ([]ParamValue, error)
	StopGame() ([]ParamValue, error)
	GetDisplayCurrentResolution(display int) (DecPoint, error)
	GetDisplayResolutions(display, maxCount int) ([]DecPoint, error)
	ReadDelgaGameDefs(delgaPath string) ([]string, error)
	ReadDelgaPatchDefs(delgaPath string) ([]string, error)
	ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error)
	SetPathOverlayCaptureConfig(kind PathKind, path string) error
}

// DirectInstance satisfies EngineInstance by delegating every command
// to an in-process API backend, for hosts that link the engine into
// the launcher's own process instead of spawning a child.
type DirectInstance struct {
	api API
}

// NewDirectInstance wraps api as an EngineInstance.
func NewDirectInstance(api API) *DirectInstance {
	return &DirectInstance{api: api}
}

func (d *DirectInstance) StopProcess() error                    { return d.api.StopProcess() }
func (d *DirectInstance) GetProperty(p Property) (string, error) { return d.api.GetProperty(p) }
func (d *DirectInstance) LoadModules() error                    { return d.api.LoadModules() }

func (d *DirectInstance) GetModuleStatus(name, version string) (module.Status, int, error) {
	return d.api.GetModuleStatus(name, version)
}

func (d *DirectInstance) GetModuleParamList(name, version string) ([]module.ParameterInfo, error) {
	return d.api.GetModuleParamList(name, version)
}

func (d *DirectInstance) SetModuleParameter(name, version, parameter, value string) error {
	return d.api.SetModuleParameter(name, version, parameter, value)
}

func (d *DirectInstance) ActivateModule(name, version string) error {
	return d.api.ActivateModule(name, version)
}

func (d *DirectInstance) EnableModule(name, version string, enable bool) error {
	return d.api.EnableModule(name, version, enable)
}

func (d *DirectInstance) SetDataDir(path string) error    { return d.api.SetDataDir(path) }
func (d *DirectInstance) SetCacheAppID(appID string) error { return d.api.SetCacheAppID(appID) }

func (d *DirectInstance) VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error {
	return d.api.VFSAddDiskDir(vfsPath, diskPath, readOnly, hiddenPaths)
}

func (d *DirectInstance) VFSAddScriptSharedDataDir(diskPath string) error {
	return d.api.VFSAddScriptSharedDataDir(diskPath)
}

func (d *DirectInstance) VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error {
	return d.api.VFSAddDelgaFile(delgaPath, archivePath, hiddenPaths)
}

func (d *DirectInstance) SetCmdLineArgs(args string) error { return d.api.SetCmdLineArgs(args) }

func (d *DirectInstance) CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error {
	return d.api.CreateRenderWindow(width, height, fullScreen, title, iconPath)
}

func (d *DirectInstance) StartGame(scriptDir, scriptVersion, gameObject string) ([]ParamValue, error) {
	return d.api.StartGame(scriptDir, scriptVersion, gameObject)
}

func (d *DirectInstance) StopGame() ([]ParamValue, error) { return d.api.StopGame() }

func (d *DirectInstance) GetDisplayCurrentResolution(display int) (DecPoint, error) {
	return d.api.GetDisplayCurrentResolution(display)
}

func (d *DirectInstance) GetDisplayResolutions(display, maxCount int) ([]DecPoint, error) {
	return d.api.GetDisplayResolutions(display, maxCount)
}

func (d *DirectInstance) ReadDelgaGameDefs(delgaPath string) ([]string, error) {
	return d.api.ReadDelgaGameDefs(delgaPath)
}

func (d *DirectInstance) ReadDelgaPatchDefs(delgaPath string) ([]string, error) {
	return d.api.ReadDelgaPatchDefs(delgaPath)
}

func (d *DirectInstance) ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error) {
	return d.api.ReadDelgaFiles(delgaPath, paths)
}

func (d *DirectInstance) SetPathOverlayCaptureConfig(kind PathKind, path string) error {
	return d.api.SetPathOverlayCaptureConfig(kind, path)
}

func (d *DirectInstance) Close() error { return nil }
