package runparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/patch"
	"github.com/dragontooth/launcher/internal/profile"
)

func Test_PinnedChain_ScenarioFour(t *testing.T) {
	p1 := &patch.Patch{ID: ids.New()}
	p2 := &patch.Patch{ID: ids.New(), RequiredPatches: []ids.ID{p1.ID}}
	p3 := &patch.Patch{ID: ids.New(), RequiredPatches: []ids.ID{p2.ID}}

	reg := patch.NewRegistry()
	reg.Add(p1, nil)
	reg.Add(p2, nil)
	reg.Add(p3, nil)

	g := &game.Game{ID: ids.New(), HasPinnedPatch: true, PinnedPatch: p3.ID}

	rp, err := Resolve(g, reg, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rp.Patches, 3)
	assert.Equal(t, p1.ID, rp.Patches[0].ID)
	assert.Equal(t, p2.ID, rp.Patches[1].ID)
	assert.Equal(t, p3.ID, rp.Patches[2].ID)
}

func Test_PinnedChain_UnknownPatchFails(t *testing.T) {
	reg := patch.NewRegistry()
	g := &game.Game{ID: ids.New(), HasPinnedPatch: true, PinnedPatch: ids.New()}

	_, err := Resolve(g, reg, nil, nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "No patch found with identifier")
}

func Test_Resolve_NoPatchPreference_ReturnsNone(t *testing.T) {
	reg := patch.NewRegistry()
	g := &game.Game{ID: ids.New()}

	rp, err := Resolve(g, reg, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rp.Patches)
}

func Test_Resolve_UseLatestPatch_TopologicalOrder(t *testing.T) {
	gameID := ids.New()
	p1 := &patch.Patch{ID: ids.New(), GameID: gameID}
	p2 := &patch.Patch{ID: ids.New(), GameID: gameID, RequiredPatches: []ids.ID{p1.ID}}

	reg := patch.NewRegistry()
	reg.Add(p2, nil)
	reg.Add(p1, nil)

	g := &game.Game{ID: gameID, UseLatestPatch: true}
	rp, err := Resolve(g, reg, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rp.Patches, 2)
	assert.Equal(t, p1.ID, rp.Patches[0].ID)
	assert.Equal(t, p2.ID, rp.Patches[1].ID)
}

func Test_EffectiveArgs_ReplaceUsesProfileOnly(t *testing.T) {
	p := profile.New("")
	p.RunArguments = "-profile-args"
	p.ReplaceRunArguments = true
	g := &game.Game{RunArguments: "-game-args"}

	assert.Equal(t, "-profile-args", effectiveArgs(g, p))
}

func Test_EffectiveArgs_AppendConcatenatesTrimmed(t *testing.T) {
	p := profile.New("")
	p.RunArguments = "-profile-args"
	g := &game.Game{RunArguments: "-game-args"}

	assert.Equal(t, "-game-args -profile-args", effectiveArgs(g, p))
}

func Test_EffectiveProfile_FixedWindowOverridesAndDisablesFullscreen(t *testing.T) {
	def := profile.New("")
	def.Window = profile.Window{FullScreen: true, Width: 1920, Height: 1080}

	g := &game.Game{HasFixedSize: true, WindowWidth: 800, WindowHeight: 600}
	rp, err := Resolve(g, patch.NewRegistry(), nil, nil, def)
	require.NoError(t, err)
	assert.Equal(t, 800, rp.Width)
	assert.Equal(t, 600, rp.Height)
	assert.False(t, rp.FullScreen)
}
