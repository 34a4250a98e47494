package lifecycle

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragontooth/launcher/internal/engine"
	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/module"
	"github.com/dragontooth/launcher/internal/pathvfs"
	"github.com/dragontooth/launcher/internal/profile"
	"github.com/dragontooth/launcher/internal/runparams"
)

type fakeInstance struct {
	calls  []string
	closed bool

	startErr  error
	snapshot  []engine.ParamValue
	stopDrift []engine.ParamValue
}

func (f *fakeInstance) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeInstance) EnableModule(name, version string, enable bool) error {
	f.record("EnableModule:" + name)
	return nil
}
func (f *fakeInstance) ActivateModule(name, version string) error {
	f.record("ActivateModule:" + name)
	return nil
}
func (f *fakeInstance) SetModuleParameter(name, version, parameter, value string) error {
	f.record("SetModuleParameter:" + name + ":" + parameter)
	return nil
}
func (f *fakeInstance) ReadDelgaGameDefs(delgaPath string) ([]string, error)  { return nil, nil }
func (f *fakeInstance) ReadDelgaPatchDefs(delgaPath string) ([]string, error) { return nil, nil }
func (f *fakeInstance) ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error) {
	return nil, nil
}

func (f *fakeInstance) StopProcess() error                     { f.record("StopProcess"); return nil }
func (f *fakeInstance) GetProperty(p engine.Property) (string, error) { return "", nil }
func (f *fakeInstance) LoadModules() error                     { f.record("LoadModules"); return nil }

func (f *fakeInstance) GetModuleStatus(name, version string) (module.Status, int, error) {
	return module.StatusReady, 0, nil
}
func (f *fakeInstance) GetModuleParamList(name, version string) ([]module.ParameterInfo, error) {
	return nil, nil
}
func (f *fakeInstance) SetDataDir(path string) error {
	f.record("SetDataDir:" + path)
	return nil
}
func (f *fakeInstance) SetCacheAppID(appID string) error {
	f.record("SetCacheAppID:" + appID)
	return nil
}
func (f *fakeInstance) VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error {
	f.record("VFSAddDiskDir:" + vfsPath)
	return nil
}
func (f *fakeInstance) VFSAddScriptSharedDataDir(diskPath string) error {
	f.record("VFSAddScriptSharedDataDir:" + diskPath)
	return nil
}
func (f *fakeInstance) VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error {
	f.record("VFSAddDelgaFile:" + delgaPath)
	return nil
}
func (f *fakeInstance) SetCmdLineArgs(args string) error {
	f.record("SetCmdLineArgs:" + args)
	return nil
}
func (f *fakeInstance) CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error {
	f.record("CreateRenderWindow")
	return nil
}
func (f *fakeInstance) StartGame(scriptDir, scriptVersion, gameObject string) ([]engine.ParamValue, error) {
	f.record("StartGame:" + gameObject)
	return f.snapshot, f.startErr
}
func (f *fakeInstance) StopGame() ([]engine.ParamValue, error) {
	f.record("StopGame")
	return f.stopDrift, nil
}
func (f *fakeInstance) GetDisplayCurrentResolution(display int) (engine.DecPoint, error) {
	return engine.DecPoint{}, nil
}
func (f *fakeInstance) GetDisplayResolutions(display, maxCount int) ([]engine.DecPoint, error) {
	return nil, nil
}
func (f *fakeInstance) SetPathOverlayCaptureConfig(kind engine.PathKind, path string) error {
	return nil
}
func (f *fakeInstance) Close() error { f.closed = true; return nil }

func readyModule(key module.Key, kind module.Kind) *module.EngineModule {
	return &module.EngineModule{Key: key, Kind: kind, Status: module.StatusReady}
}

func Test_Start_SequencesModulesActivationAndStartGame(t *testing.T) {
	inst := &fakeInstance{snapshot: []engine.ParamValue{{ModuleName: "GraphicOpenGL", ModuleVersion: "1.0", Parameter: "aa", Value: "2x"}}}

	reg := module.NewRegistry()
	reg.Put(readyModule(module.Key{Name: "GraphicOpenGL", Version: "1.0"}, module.KindGraphic))

	p := profile.New("default")
	p.Systems[module.KindGraphic] = profile.ModuleRef{Name: "GraphicOpenGL", Version: "1.0"}

	vfs := pathvfs.New()
	vfs.MountDisk("/data", t.TempDir(), false, nil)

	coord := New(func() (engine.EngineInstance, error) { return inst, nil }, reg, vfs, afero.NewMemMapFs(), nil)

	g := &game.Game{ID: ids.New(), Title: "Demo", DataDirectory: "/data", GameObject: "Game"}
	rp := &runparams.RunParams{Profile: p, RunArguments: "-x", Width: 800, Height: 600, FullScreen: true}

	require.NoError(t, coord.Start(g, rp))
	assert.Equal(t, StatusRunning, coord.Status())
	assert.Contains(t, inst.calls, "LoadModules")
	assert.Contains(t, inst.calls, "ActivateModule:GraphicOpenGL")
	assert.Contains(t, inst.calls, "SetCacheAppID:"+g.ID.Hex())
	assert.Contains(t, inst.calls, "SetDataDir:/data")
	assert.Contains(t, inst.calls, "SetCmdLineArgs:-x")
	assert.Contains(t, inst.calls, "StartGame:Game")
}

func Test_Start_RejectsWhenAlreadyRunning(t *testing.T) {
	inst := &fakeInstance{}
	coord := New(func() (engine.EngineInstance, error) { return inst, nil }, module.NewRegistry(), pathvfs.New(), afero.NewMemMapFs(), nil)
	g := &game.Game{ID: ids.New()}
	rp := &runparams.RunParams{}

	require.NoError(t, coord.Start(g, rp))
	err := coord.Start(g, rp)
	assert.Error(t, err)
}

func Test_Stop_PersistsDriftedParameters(t *testing.T) {
	inst := &fakeInstance{stopDrift: []engine.ParamValue{{ModuleName: "GraphicOpenGL", ModuleVersion: "1.0", Parameter: "aa", Value: "8x"}}}
	fs := afero.NewMemMapFs()

	coord := New(func() (engine.EngineInstance, error) { return inst, nil }, module.NewRegistry(), pathvfs.New(), fs, nil)
	p := profile.New("default")
	g := &game.Game{ID: ids.New(), GameObject: "Game"}
	rp := &runparams.RunParams{Profile: p}

	require.NoError(t, coord.Start(g, rp))
	require.NoError(t, coord.Stop())

	assert.True(t, inst.closed)
	assert.Equal(t, StatusStopped, coord.Status())
	assert.Equal(t, "8x", p.ParameterOverrides["GraphicOpenGL"]["aa"])

	exists, err := afero.Exists(fs, "profiles/default.xml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_Kill_ClosesWithoutPersistingDrift(t *testing.T) {
	inst := &fakeInstance{stopDrift: []engine.ParamValue{{ModuleName: "X", Parameter: "p", Value: "v"}}}
	coord := New(func() (engine.EngineInstance, error) { return inst, nil }, module.NewRegistry(), pathvfs.New(), afero.NewMemMapFs(), nil)
	p := profile.New("default")
	g := &game.Game{ID: ids.New()}
	rp := &runparams.RunParams{Profile: p}

	require.NoError(t, coord.Start(g, rp))
	require.NoError(t, coord.Kill())

	assert.True(t, inst.closed)
	assert.NotContains(t, inst.calls, "StopGame")
}

func Test_PulseChecking_NoopWithoutExitObserver(t *testing.T) {
	inst := &fakeInstance{}
	coord := New(func() (engine.EngineInstance, error) { return inst, nil }, module.NewRegistry(), pathvfs.New(), afero.NewMemMapFs(), nil)
	g := &game.Game{ID: ids.New()}
	rp := &runparams.RunParams{Profile: profile.New("")}

	require.NoError(t, coord.Start(g, rp))
	coord.PulseChecking()
	assert.Equal(t, StatusRunning, coord.Status())
}
