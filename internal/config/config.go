// Package config loads launcher-wide configuration from environment
// variables, following the precedence rules of spec §6: an explicit
// environment override always wins over a derived default.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config holds the resolved launcher configuration. Fields that come
// from spec §6's root overrides are resolved lazily by internal/pathvfs;
// Config only carries the raw override strings plus launch-time tunables.
type Config struct {
	// Root overrides (spec §6). Empty means "let pathvfs derive a default".
	SysConfigOverride  string
	UserConfigOverride string
	SharesOverride     string
	GamesOverride      string
	LogsOverride       string

	// Unix-only derivation inputs, read here so pathvfs stays pure.
	Home    string
	User    string
	LogUser string

	// Engine launch tunables.
	EngineExecutable string // path to the child engine binary
	DefaultExeName   string // spec §9 InstanceFactory.default-executable-name
	EngineUseConsole bool   // spec §4.9 handshake flags bit 0x1

	// Timeouts.
	StopGrace          time.Duration // spec §5: ~5s bound before falling back to Kill
	HealthPollInterval time.Duration

	// History ring capacity (spec §4.2).
	HistorySize int

	// Optional local status endpoint (SPEC_FULL.md §4 supplement 4).
	StatusServerPort int
}

// Load reads configuration from environment variables, applying the
// same defaults-then-override idiom as the teacher's config.Load.
func Load() (*Config, error) {
	cfg := &Config{
		DefaultExeName:     defaultExeNameForOS(),
		StopGrace:          5 * time.Second,
		HealthPollInterval: 500 * time.Millisecond,
		HistorySize:        500,
		StatusServerPort:   0, // 0 disables the optional status server
	}

	cfg.SysConfigOverride = os.Getenv("DELAUNCHER_SYS_CONFIG")
	cfg.UserConfigOverride = os.Getenv("DELAUNCHER_USER_CONFIG")
	cfg.SharesOverride = os.Getenv("DELAUNCHER_SHARES")
	cfg.GamesOverride = os.Getenv("DELAUNCHER_GAMES")
	cfg.LogsOverride = os.Getenv("DELAUNCHER_LOGS")

	cfg.Home = os.Getenv("HOME")
	cfg.User = os.Getenv("USER")
	cfg.LogUser = os.Getenv("LOGUSER")

	cfg.EngineExecutable = os.Getenv("DELAUNCHER_ENGINE_EXE")
	if name := os.Getenv("DELAUNCHER_DEFAULT_EXE_NAME"); name != "" {
		cfg.DefaultExeName = name
	}

	if useConsole := os.Getenv("DELAUNCHER_ENGINE_USE_CONSOLE"); useConsole != "" {
		b, err := strconv.ParseBool(useConsole)
		if err != nil {
			return nil, fmt.Errorf("invalid DELAUNCHER_ENGINE_USE_CONSOLE: %w", err)
		}
		cfg.EngineUseConsole = b
	}

	if grace := os.Getenv("DELAUNCHER_STOP_GRACE_SECONDS"); grace != "" {
		seconds, err := strconv.Atoi(grace)
		if err != nil {
			return nil, fmt.Errorf("invalid DELAUNCHER_STOP_GRACE_SECONDS: %w", err)
		}
		cfg.StopGrace = time.Duration(seconds) * time.Second
	}

	if poll := os.Getenv("DELAUNCHER_HEALTH_POLL_MS"); poll != "" {
		ms, err := strconv.Atoi(poll)
		if err != nil {
			return nil, fmt.Errorf("invalid DELAUNCHER_HEALTH_POLL_MS: %w", err)
		}
		cfg.HealthPollInterval = time.Duration(ms) * time.Millisecond
	}

	if size := os.Getenv("DELAUNCHER_HISTORY_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("invalid DELAUNCHER_HISTORY_SIZE: %w", err)
		}
		cfg.HistorySize = n
	}

	if port := os.Getenv("DELAUNCHER_STATUS_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DELAUNCHER_STATUS_PORT: %w", err)
		}
		cfg.StatusServerPort = n
	}

	return cfg, nil
}

func defaultExeNameForOS() string {
	if runtime.GOOS == "windows" {
		return "DEEngine.exe"
	}
	return "deengine"
}
