package module

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, fs afero.Fs, dir, name, version, kind, libFile string, libContent []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(fs, dir+"/"+libFile, libContent, 0o644))

	sum := sha1.Sum(libContent)
	doc := `<module>
  <name>` + name + `</name>
  <version>` + version + `</version>
  <type>` + kind + `</type>
  <library>
    <file>` + libFile + `</file>
    <size>` + strconv.Itoa(len(libContent)) + `</size>
    <sha1>` + hex.EncodeToString(sum[:]) + `</sha1>
    <entrypoint>Create` + name + `</entrypoint>
  </library>
</module>`
	require.NoError(t, afero.WriteFile(fs, dir+"/module.xml", []byte(doc), 0o644))
}

func Test_Scan_DiscoversAndHashesModule(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeManifest(t, fs, "/engine/lib/modules/graphic/OpenGL/1.0", "OpenGL", "1.0", "graphic", "libopengl.so", []byte("binary-content"))

	reg := NewRegistry()
	require.NoError(t, reg.Scan(context.Background(), fs, "/engine/lib", nil))

	m, ok := reg.Get(Key{Name: "OpenGL", Version: "1.0"})
	require.True(t, ok)
	assert.Equal(t, KindGraphic, m.Kind)
	assert.True(t, m.HashMatches())
	assert.Equal(t, int64(len("binary-content")), m.ObservedSize)
}

func Test_Scan_MismatchedHashDoesNotMatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeManifest(t, fs, "/engine/lib/modules/audio/OpenAL/1.0", "OpenAL", "1.0", "audio", "libopenal.so", []byte("original"))
	// corrupt the library after the manifest recorded its hash
	require.NoError(t, afero.WriteFile(fs, "/engine/lib/modules/audio/OpenAL/1.0/libopenal.so", []byte("corrupted!"), 0o644))

	reg := NewRegistry()
	require.NoError(t, reg.Scan(context.Background(), fs, "/engine/lib", nil))

	m, ok := reg.Get(Key{Name: "OpenAL", Version: "1.0"})
	require.True(t, ok)
	assert.False(t, m.HashMatches())
}

func Test_BestForKind_NonFallbackBeatsFallback(t *testing.T) {
	reg := NewRegistry()
	reg.modules[Key{Name: "Good", Version: "1.0"}] = &EngineModule{Key: Key{Name: "Good", Version: "1.0"}, Kind: KindGraphic, IsFallback: false}
	reg.modules[Key{Name: "Fallback", Version: "1.0"}] = &EngineModule{Key: Key{Name: "Fallback", Version: "1.0"}, Kind: KindGraphic, IsFallback: true}

	best, ok := reg.BestForKind(KindGraphic, nil)
	require.True(t, ok)
	assert.Equal(t, "Good", best.Key.Name)
}

func Test_BestForKind_HigherVersionWins(t *testing.T) {
	reg := NewRegistry()
	reg.modules[Key{Name: "Mod", Version: "1.0"}] = &EngineModule{Key: Key{Name: "Mod", Version: "1.0"}, Kind: KindPhysics}
	reg.modules[Key{Name: "Mod", Version: "2.0"}] = &EngineModule{Key: Key{Name: "Mod", Version: "2.0"}, Kind: KindPhysics}

	best, ok := reg.BestForKind(KindPhysics, nil)
	require.True(t, ok)
	assert.Equal(t, "2.0", best.Key.Version)
}

func Test_BestForKind_DisabledIsSkipped(t *testing.T) {
	reg := NewRegistry()
	reg.modules[Key{Name: "Mod", Version: "2.0"}] = &EngineModule{Key: Key{Name: "Mod", Version: "2.0"}, Kind: KindInput}
	reg.modules[Key{Name: "Mod", Version: "1.0"}] = &EngineModule{Key: Key{Name: "Mod", Version: "1.0"}, Kind: KindInput}

	best, ok := reg.BestForKind(KindInput, map[Key]bool{{Name: "Mod", Version: "2.0"}: true})
	require.True(t, ok)
	assert.Equal(t, "1.0", best.Key.Version)
}

func Test_BestForKind_NoneFound(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.BestForKind(KindVR, nil)
	assert.False(t, ok)
}
