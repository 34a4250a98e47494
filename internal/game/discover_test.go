package game

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/logging"
)

const sampleDegame = `<degame>
  <identifier>11111111-1111-1111-1111-111111111111</identifier>
  <title>Sample Game</title>
  <gameDirectory>.</gameDirectory>
  <dataDirectory>data</dataDirectory>
  <pathConfig>/config</pathConfig>
  <pathCapture>/capture</pathCapture>
</degame>`

func Test_ScanLegacy_DiscoversDegame(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/games/sample/game.degame", []byte(sampleDegame), 0o644))

	reg := NewRegistry()
	require.NoError(t, ScanLegacy(fs, "/games", nil, reg, nil))

	id, err := ids.Parse("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	g, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Sample Game", g.Title)
}

func Test_ScanLegacy_MissingCapturePathSkipsWithWarning(t *testing.T) {
	fs := afero.NewMemMapFs()
	broken := `<degame>
  <identifier>22222222-2222-2222-2222-222222222222</identifier>
  <title>Broken</title>
  <gameDirectory>.</gameDirectory>
  <pathConfig>/config</pathConfig>
</degame>`
	require.NoError(t, afero.WriteFile(fs, "/games/broken/game.degame", []byte(broken), 0o644))

	var warned []string
	sink := recordingSink{warn: &warned}
	log := logging.NewChain(&sink)

	reg := NewRegistry()
	require.NoError(t, ScanLegacy(fs, "/games", nil, reg, log))
	assert.Empty(t, reg.All())
	assert.NotEmpty(t, warned)
}

func Test_Registry_Add_DuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	id := ids.New()
	first := &Game{ID: id, Title: "First"}
	second := &Game{ID: id, Title: "Second"}

	assert.True(t, reg.Add(first, nil))
	assert.False(t, reg.Add(second, nil))

	g, _ := reg.Get(id)
	assert.Equal(t, "First", g.Title)
}

func Test_LoadConfigOverlays_AppliesToMatchingGame(t *testing.T) {
	fs := afero.NewMemMapFs()
	id := ids.New()
	cfg := `<gameConfig>
  <activeProfile>main</activeProfile>
  <runArguments>-dev</runArguments>
  <useLatestPatch>true</useLatestPatch>
</gameConfig>`
	require.NoError(t, afero.WriteFile(fs, "/user/games/"+id.Hex()+"/launcher.xml", []byte(cfg), 0o644))

	overlays, err := LoadConfigOverlays(fs, "/user/games", nil)
	require.NoError(t, err)
	require.Contains(t, overlays, id)

	reg := NewRegistry()
	reg.Add(&Game{ID: id, Title: "Overlayed"}, nil)

	ApplyConfigOverlays(reg, overlays, nil, nil)

	g, _ := reg.Get(id)
	assert.Equal(t, "main", g.ActiveProfileName)
	assert.Equal(t, "-dev", g.RunArguments)
	assert.True(t, g.UseLatestPatch)
}

type recordingSink struct {
	warn *[]string
}

func (r *recordingSink) Info(source, message string)  {}
func (r *recordingSink) Warn(source, message string)   { *r.warn = append(*r.warn, message) }
func (r *recordingSink) Error(source, message string)  {}
func (r *recordingSink) Exception(source string, err error) {}
