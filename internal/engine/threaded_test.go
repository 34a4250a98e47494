package engine

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragontooth/launcher/internal/module"
)

// fakeServerConn wires a ThreadedInstance's session to a goroutine that
// plays the engine's half of the protocol, letting command encoding be
// tested without spawning a real child process.
func fakeServerConn(t *testing.T, serve func(r io.Reader, w io.Writer)) *ThreadedInstance {
	t.Helper()
	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	go serve(serverR, serverW)

	inst := &ThreadedInstance{sess: newSession(clientW, clientR)}
	t.Cleanup(func() {
		_ = clientW.Close()
		_ = clientR.Close()
	})
	return inst
}

func Test_ThreadedInstance_SetDataDir(t *testing.T) {
	inst := fakeServerConn(t, func(r io.Reader, w io.Writer) {
		tag, err := readU8(r)
		require.NoError(t, err)
		assert.Equal(t, byte(TagSetDataDir), tag)

		path, err := readString(r)
		require.NoError(t, err)
		assert.Equal(t, "/data/game", path)

		require.NoError(t, writeStatus(w, StatusSuccess))
	})

	require.NoError(t, inst.SetDataDir("/data/game"))
}

func Test_ThreadedInstance_GetModuleStatus(t *testing.T) {
	inst := fakeServerConn(t, func(r io.Reader, w io.Writer) {
		_, _ = readU8(r)
		name, _ := readString(r)
		version, _ := readString(r)
		assert.Equal(t, "GraphicOpenGL", name)
		assert.Equal(t, "1.0", version)

		require.NoError(t, writeStatus(w, StatusSuccess))
		require.NoError(t, writeU16(w, 42))
	})

	status, errorCode, err := inst.GetModuleStatus("GraphicOpenGL", "1.0")
	require.NoError(t, err)
	assert.Equal(t, module.StatusBroken, status)
	assert.Equal(t, 42, errorCode)
}

func Test_ThreadedInstance_StartGame_ReadsSnapshotUntilEmptyName(t *testing.T) {
	inst := fakeServerConn(t, func(r io.Reader, w io.Writer) {
		_, _ = readU8(r)
		scriptDir, _ := readString(r)
		scriptVersion, _ := readString(r)
		gameObject, _ := readString(r)
		assert.Equal(t, "/scripts", scriptDir)
		assert.Equal(t, "1.0", scriptVersion)
		assert.Equal(t, "Game", gameObject)

		require.NoError(t, writeStatus(w, StatusSuccess))
		require.NoError(t, writeString(w, "GraphicOpenGL"))
		require.NoError(t, writeString(w, "1.0"))
		require.NoError(t, writeString(w, "antiAliasing"))
		require.NoError(t, writeString(w, "4x"))
		require.NoError(t, writeString(w, "")) // terminator
	})

	snapshot, err := inst.StartGame("/scripts", "1.0", "Game")
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, ParamValue{ModuleName: "GraphicOpenGL", ModuleVersion: "1.0", Parameter: "antiAliasing", Value: "4x"}, snapshot[0])
}

func Test_ThreadedInstance_StopProcess_FailedStatus(t *testing.T) {
	inst := fakeServerConn(t, func(r io.Reader, w io.Writer) {
		_, _ = readU8(r)
		require.NoError(t, writeStatus(w, StatusFailed))
	})

	assert.Error(t, inst.StopProcess())
}

func Test_ThreadedInstance_ReadDelgaFiles(t *testing.T) {
	inst := fakeServerConn(t, func(r io.Reader, w io.Writer) {
		_, _ = readU8(r)
		delgaPath, _ := readString(r)
		assert.Equal(t, "/games/demo.delga", delgaPath)
		count, _ := readU16(r)
		require.EqualValues(t, 2, count)
		p0, _ := readString(r)
		p1, _ := readString(r)
		assert.Equal(t, "icon16.png", p0)
		assert.Equal(t, "icon32.png", p1)

		require.NoError(t, writeStatus(w, StatusSuccess))
		require.NoError(t, writeBytes(w, []byte{1, 2, 3}))
		require.NoError(t, writeBytes(w, []byte{4, 5}))
	})

	data, err := inst.ReadDelgaFiles("/games/demo.delga", []string{"icon16.png", "icon32.png"})
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, []byte{1, 2, 3}, data[0])
	assert.Equal(t, []byte{4, 5}, data[1])
}
