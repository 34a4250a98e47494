// Command launcher wires together the module/game/patch registries,
// resolves one game's run parameters, and drives a single launch
// through the lifecycle coordinator (spec §1 overview).
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/config"
	"github.com/dragontooth/launcher/internal/engine"
	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/lifecycle"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/module"
	"github.com/dragontooth/launcher/internal/patch"
	"github.com/dragontooth/launcher/internal/pathvfs"
	"github.com/dragontooth/launcher/internal/profile"
	"github.com/dragontooth/launcher/internal/runparams"
)

func main() {
	gameIDHex := flag.String("game", "", "hex identifier of the game to launch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, cleanup, err := buildLogger(cfg.HistorySize)
	if err != nil {
		os.Stderr.WriteString("failed to start logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer cleanup()

	roots := pathvfs.ResolveRoots(cfg)
	fs := afero.NewOsFs()

	modules := module.NewRegistry()
	if err := modules.Scan(context.Background(), fs, roots.Shares, log); err != nil {
		log.Error("main", "module scan failed: "+err.Error())
		os.Exit(1)
	}

	games := game.NewRegistry()
	if err := game.ScanLegacy(fs, roots.Games, nil, games, log); err != nil {
		log.Warn("main", "legacy game scan failed: "+err.Error())
	}
	if overlays, err := game.LoadConfigOverlays(fs, roots.GameDir(""), log); err == nil {
		game.ApplyConfigOverlays(games, overlays, nil, log)
	}

	patches := patch.NewRegistry()
	if err := patch.ScanLegacy(fs, roots.Games, nil, patches, log); err != nil {
		log.Warn("main", "legacy patch scan failed: "+err.Error())
	}

	if *gameIDHex == "" {
		log.Error("main", "-game is required")
		os.Exit(1)
	}
	gameID, err := ids.ParseHex(*gameIDHex)
	if err != nil {
		log.Error("main", "invalid -game identifier: "+err.Error())
		os.Exit(1)
	}
	g, ok := games.Get(gameID)
	if !ok {
		log.Error("main", "no game found with identifier "+*gameIDHex)
		os.Exit(1)
	}
	g.VerifyRequirements(modules)

	if g.LogFilePath != "" {
		if f, err := logging.OpenTruncated(g.LogFilePath); err != nil {
			log.Warn("main", "could not open per-game log file: "+err.Error())
		} else {
			log.AddSink(logging.NewZapFileSink(logging.AsWriteSyncer(f)))
		}
	}

	defaultProfile := profile.Synthesize(modules, 1920, 1080)
	rp, err := runparams.Resolve(g, patches, nil, nil, defaultProfile)
	if err != nil {
		log.Error("main", "failed to resolve run parameters: "+err.Error())
		os.Exit(1)
	}

	vfs := pathvfs.New()
	vfs.MountDisk("/data", g.DataDirectory, false, g.HiddenPath)

	spawn := func() (engine.EngineInstance, error) {
		return engine.Spawn(context.Background(), cfg.EngineExecutable, nil, g.LogFilePath, cfg.EngineUseConsole, log)
	}

	coord := lifecycle.New(spawn, modules, vfs, fs, log)

	if err := coord.Start(g, rp); err != nil {
		log.Error("main", "failed to start game: "+err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.RunPulseLoop(ctx, cfg.HealthPollInterval)

	if cfg.StatusServerPort != 0 {
		status := lifecycle.NewStatusServer(cfg.StatusServerPort, coord)
		go func() {
			if err := status.Start(ctx); err != nil {
				log.Warn("main", "status server error: "+err.Error())
			}
		}()
	}

	signals := lifecycle.NewSignalHandler(coord, log)
	signals.Start(ctx)

	for coord.IsRunning() {
		time.Sleep(cfg.HealthPollInterval)
	}

	cancel()
	signals.Wait()
}

func buildLogger(historySize int) (*logging.Logger, func(), error) {
	console, err := logging.NewZapConsoleSink()
	if err != nil {
		return nil, nil, err
	}

	history := logging.NewHistory(historySize)
	chain := logging.NewChain(console, logging.NewHistorySink(history))

	cleanup := func() { _ = console.Sync() }
	return chain, cleanup, nil
}
