package pathvfs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragontooth/launcher/internal/config"
)

func Test_ResolveRoots_ExplicitOverrideWins(t *testing.T) {
	cfg := &config.Config{
		SysConfigOverride: "/custom/sys",
		Home:              "/home/alice",
	}
	roots := ResolveRoots(cfg)
	assert.Equal(t, "/custom/sys", roots.SysConfig, "an explicit override must win over any derived default")
}

func Test_GameDir(t *testing.T) {
	roots := Roots{UserConfig: "/home/alice/.config/delauncher"}
	assert.Equal(t, "/home/alice/.config/delauncher/games/deadbeef", roots.GameDir("deadbeef"))
}
