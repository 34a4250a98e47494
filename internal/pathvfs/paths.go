package pathvfs

import (
	"path/filepath"
	"runtime"

	"github.com/dragontooth/launcher/internal/config"
)

// Roots holds the launcher's five local filesystem roots (spec §4.1),
// resolved once at startup. EngineConfig/EngineShare/EngineLib/EngineCache
// are populated later, once the engine instance reports them (spec §4.1).
type Roots struct {
	SysConfig  string
	UserConfig string
	Shares     string
	Games      string
	Logs       string

	EngineConfig string
	EngineShare  string
	EngineLib    string
	EngineCache  string
}

// ResolveRoots computes the five local roots in the precedence order of
// spec §4.1: explicit environment override, then platform-specific
// derived default, then compile-time default.
func ResolveRoots(cfg *config.Config) Roots {
	return Roots{
		SysConfig:  firstNonEmpty(cfg.SysConfigOverride, derivedSysConfig()),
		UserConfig: firstNonEmpty(cfg.UserConfigOverride, derivedUserConfig(cfg)),
		Shares:     firstNonEmpty(cfg.SharesOverride, derivedShares()),
		Games:      firstNonEmpty(cfg.GamesOverride, derivedGames()),
		Logs:       firstNonEmpty(cfg.LogsOverride, derivedLogs(cfg)),
	}
}

// WithEngineRoots returns a copy of r with the engine-reported roots
// filled in, as obtained from the engine instance (C9 get-property).
func (r Roots) WithEngineRoots(configDir, shareDir, libDir, cacheDir string) Roots {
	r.EngineConfig = configDir
	r.EngineShare = shareDir
	r.EngineLib = libDir
	r.EngineCache = cacheDir
	return r
}

// GameDir returns <user_config>/games/<id-hex>, the per-game
// config directory of spec §6.
func (r Roots) GameDir(idHex string) string {
	return filepath.Join(r.UserConfig, "games", idHex)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

const compileDefaultPrefix = "/usr/share/delauncher"

func derivedSysConfig() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(windowsProgramData(), "DELauncher", "Config")
	}
	return "/etc/delauncher"
}

func derivedUserConfig(cfg *config.Config) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(windowsAppData(), "DELauncher", "Config")
	}
	home := unixHome(cfg)
	if home == "" {
		return compileDefaultPrefix + "/config"
	}
	return filepath.Join(home, ".config", "delauncher")
}

func derivedShares() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(windowsProgramData(), "DELauncher", "Shares")
	}
	return compileDefaultPrefix + "/shares"
}

func derivedGames() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(windowsProgramData(), "DELauncher", "Games")
	}
	return compileDefaultPrefix + "/games"
}

func derivedLogs(cfg *config.Config) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(windowsAppData(), "DELauncher", "Logs")
	}
	home := unixHome(cfg)
	if home == "" {
		return compileDefaultPrefix + "/logs"
	}
	return filepath.Join(home, ".local", "share", "delauncher", "logs")
}

// unixHome derives the home directory for the Unix fallback, preferring
// HOME, falling back to a path built from USER or LOGUSER (spec §6).
func unixHome(cfg *config.Config) string {
	if cfg.Home != "" {
		return cfg.Home
	}
	user := firstNonEmpty(cfg.User, cfg.LogUser)
	if user == "" {
		return ""
	}
	return filepath.Join("/home", user)
}
