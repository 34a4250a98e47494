package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragontooth/launcher/internal/module"
)

type recordingAPI struct {
	calls []string
}

func (r *recordingAPI) StopProcess() error                     { r.calls = append(r.calls, "StopProcess"); return nil }
func (r *recordingAPI) GetProperty(p Property) (string, error) { return "/path", nil }
func (r *recordingAPI) LoadModules() error                     { return nil }

func (r *recordingAPI) GetModuleStatus(name, version string) (module.Status, int, error) {
	return module.StatusReady, 0, nil
}

func (r *recordingAPI) GetModuleParamList(name, version string) ([]module.ParameterInfo, error) {
	return nil, nil
}

func (r *recordingAPI) SetModuleParameter(name, version, parameter, value string) error {
	r.calls = append(r.calls, "SetModuleParameter:"+name+":"+parameter+"="+value)
	return nil
}

func (r *recordingAPI) ActivateModule(name, version string) error {
	r.calls = append(r.calls, "ActivateModule:"+name)
	return nil
}

func (r *recordingAPI) EnableModule(name, version string, enable bool) error { return nil }
func (r *recordingAPI) SetDataDir(path string) error                        { return nil }
func (r *recordingAPI) SetCacheAppID(appID string) error                    { return nil }

func (r *recordingAPI) VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error {
	return nil
}
func (r *recordingAPI) VFSAddScriptSharedDataDir(diskPath string) error { return nil }

func (r *recordingAPI) VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error {
	return nil
}

func (r *recordingAPI) SetCmdLineArgs(args string) error { return nil }

func (r *recordingAPI) CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error {
	return nil
}

func (r *recordingAPI) StartGame(scriptDir, scriptVersion, gameObject string) ([]ParamValue, error) {
	return []ParamValue{{ModuleName: "GraphicOpenGL", ModuleVersion: "1.0", Parameter: "aa", Value: "4x"}}, nil
}

func (r *recordingAPI) StopGame() ([]ParamValue, error) { return nil, nil }

func (r *recordingAPI) GetDisplayCurrentResolution(display int) (DecPoint, error) {
	return DecPoint{X: 1920, Y: 1080}, nil
}

func (r *recordingAPI) GetDisplayResolutions(display, maxCount int) ([]DecPoint, error) {
	return nil, nil
}

func (r *recordingAPI) ReadDelgaGameDefs(delgaPath string) ([]string, error)  { return nil, nil }
func (r *recordingAPI) ReadDelgaPatchDefs(delgaPath string) ([]string, error) { return nil, nil }

func (r *recordingAPI) ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error) {
	return nil, nil
}

func (r *recordingAPI) SetPathOverlayCaptureConfig(kind PathKind, path string) error { return nil }

func Test_DirectInstance_DelegatesToAPI(t *testing.T) {
	api := &recordingAPI{}
	inst := NewDirectInstance(api)

	var _ EngineInstance = inst

	require.NoError(t, inst.ActivateModule("GraphicOpenGL", "1.0"))
	require.NoError(t, inst.SetModuleParameter("GraphicOpenGL", "1.0", "aa", "4x"))
	assert.Equal(t, []string{"ActivateModule:GraphicOpenGL", "SetModuleParameter:GraphicOpenGL:aa=4x"}, api.calls)

	snapshot, err := inst.StartGame("/scripts", "1.0", "Game")
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "GraphicOpenGL", snapshot[0].ModuleName)

	res, err := inst.GetDisplayCurrentResolution(0)
	require.NoError(t, err)
	assert.Equal(t, DecPoint{X: 1920, Y: 1080}, res)

	assert.NoError(t, inst.Close())
}
