package game

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

// DelgaReader is the subset of engine-instance operations needed to
// enumerate and read the contents of DELGA archives (spec §4.5;
// satisfied by internal/engine's EngineInstance).
type DelgaReader interface {
	ReadDelgaGameDefs(delgaPath string) ([]string, error)
	ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error)
}

// ScanLegacy recursively walks root on fs, decoding every *.degame file
// it finds directly and every *.delga archive via reader, registering
// one Game per degame definition (spec §4.5 point 2).
func ScanLegacy(fs afero.Fs, root string, reader DelgaReader, reg *Registry, log *logging.Logger) error {
	return afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if log != nil {
				log.Warn("game", "cannot read "+p+": "+err.Error())
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		switch {
		case strings.HasSuffix(strings.ToLower(p), ".degame"):
			data, err := afero.ReadFile(fs, p)
			if err != nil {
				if log != nil {
					log.Warn("game", "cannot read "+p+": "+err.Error())
				}
				return nil
			}
			addFromDegame(data, path.Dir(p), "", reg, log)

		case strings.HasSuffix(strings.ToLower(p), ".delga"):
			if reader == nil {
				if log != nil {
					log.Warn("game", "no DELGA reader available, skipping "+p)
				}
				return nil
			}
			defs, err := reader.ReadDelgaGameDefs(p)
			if err != nil {
				if log != nil {
					log.Warn("game", "cannot read DELGA game defs from "+p+": "+err.Error())
				}
				return nil
			}
			for _, def := range defs {
				addFromDegame([]byte(def), path.Dir(p), p, reg, log)
				materializeLastIcons(reader, p, reg, log)
			}
		}
		return nil
	})
}

func addFromDegame(data []byte, gameDir, delgaPath string, reg *Registry, log *logging.Logger) {
	dx, err := xmlcodec.DecodeDegame(data)
	if err != nil {
		if log != nil {
			log.Warn("game", "malformed degame manifest: "+err.Error())
		}
		return
	}

	id, err := ids.Parse(dx.Identifier)
	if err != nil {
		if log != nil {
			log.Warn("game", "degame manifest has invalid identifier \""+dx.Identifier+"\": "+err.Error())
		}
		return
	}

	if dx.PathConfig == "" || dx.PathCapture == "" {
		if log != nil {
			log.Warn("game", "game "+dx.Title+" is missing a config or capture path, skipping")
		}
		return
	}

	g := &Game{
		ID:              id,
		AliasIdentifier: dx.AliasIdentifier,
		Title:           dx.Title,
		Description:     dx.Description,
		Creator:         dx.Creator,
		Homepage:        dx.Homepage,
		GameDirectory:   gameDir,
		DataDirectory:   dx.DataDirectory,
		ScriptDirectory: dx.ScriptDirectory,
		GameObject:      dx.GameObject,
		ScriptModule:    ScriptModuleRef{Name: dx.ScriptModule.Name, MinVersion: dx.ScriptModule.Version},
		PathConfig:      dx.PathConfig,
		PathCapture:     dx.PathCapture,
		DelgaFile:       delgaPath,
	}
	if dx.WindowSize != nil {
		g.HasFixedSize = true
		g.WindowWidth = dx.WindowSize.X
		g.WindowHeight = dx.WindowSize.Y
	}
	for _, icon := range dx.Icons {
		g.Icons = append(g.Icons, Icon{Size: icon.Size, Path: icon.Path})
	}
	for _, rf := range dx.RequireFormats {
		g.Requirements = append(g.Requirements, FormatRequirement{Kind: rf.Type, Pattern: rf.Pattern})
	}

	reg.Add(g, log)
}

// materializeLastIcons loads icon bytes for the most recently added
// game (the one addFromDegame just registered from this DELGA) via a
// second DELGA read of each icon's declared path (spec §4.5).
func materializeLastIcons(reader DelgaReader, delgaPath string, reg *Registry, log *logging.Logger) {
	for _, g := range reg.All() {
		if g.DelgaFile != delgaPath || len(g.Icons) == 0 || g.Icons[0].Data != nil {
			continue
		}
		paths := make([]string, len(g.Icons))
		for i, icon := range g.Icons {
			paths[i] = icon.Path
		}
		contents, err := reader.ReadDelgaFiles(delgaPath, paths)
		if err != nil {
			if log != nil {
				log.Warn("game", "cannot read icons from "+delgaPath+": "+err.Error())
			}
			return
		}
		for i := range g.Icons {
			if i < len(contents) {
				g.Icons[i].Data = contents[i]
			}
		}
	}
}

// LoadConfigOverlays scans gamesConfigDir on fs for per-game directories
// named by UUID hex, decoding each launcher.xml into an overlay keyed
// by identifier (spec §4.5 point 1 / §6).
func LoadConfigOverlays(fs afero.Fs, gamesConfigDir string, log *logging.Logger) (map[ids.ID]xmlcodec.GameConfigXML, error) {
	overlays := make(map[ids.ID]xmlcodec.GameConfigXML)

	entries, err := afero.ReadDir(fs, gamesConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			return overlays, nil
		}
		return nil, launcherr.Wrap(launcherr.IOFailed, "game", err, "read games config directory")
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := ids.ParseHex(e.Name())
		if err != nil {
			continue // not a game identifier directory
		}

		configPath := path.Join(gamesConfigDir, e.Name(), "launcher.xml")
		data, err := afero.ReadFile(fs, configPath)
		if err != nil {
			continue // no config written yet
		}

		gx, err := xmlcodec.DecodeGameConfig(data, configPath, func(source, message string) {
			if log != nil {
				log.Warn("game", source+": "+message)
			}
		})
		if err != nil {
			if log != nil {
				log.Warn("game", "malformed game config "+configPath+": "+err.Error())
			}
			continue
		}
		overlays[id] = gx
	}

	return overlays, nil
}
