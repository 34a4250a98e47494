package patch

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

// DelgaReader is the subset of engine-instance operations needed to
// enumerate patches hosted inside DELGA archives (spec §4.6).
type DelgaReader interface {
	ReadDelgaPatchDefs(delgaPath string) ([]string, error)
}

// ScanLegacy recursively walks root on fs, decoding every *.depatch
// file directly and every *.delga archive via reader (spec §4.6,
// analogous to game.ScanLegacy).
func ScanLegacy(fs afero.Fs, root string, reader DelgaReader, reg *Registry, log *logging.Logger) error {
	return afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if log != nil {
				log.Warn("patch", "cannot read "+p+": "+err.Error())
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		switch {
		case strings.HasSuffix(strings.ToLower(p), ".depatch"):
			data, err := afero.ReadFile(fs, p)
			if err != nil {
				if log != nil {
					log.Warn("patch", "cannot read "+p+": "+err.Error())
				}
				return nil
			}
			addFromDepatch(data, path.Dir(p), "", reg, log)

		case strings.HasSuffix(strings.ToLower(p), ".delga"):
			if reader == nil {
				return nil
			}
			defs, err := reader.ReadDelgaPatchDefs(p)
			if err != nil {
				if log != nil {
					log.Warn("patch", "cannot read DELGA patch defs from "+p+": "+err.Error())
				}
				return nil
			}
			for _, def := range defs {
				addFromDepatch([]byte(def), path.Dir(p), p, reg, log)
			}
		}
		return nil
	})
}

func addFromDepatch(data []byte, patchDir, delgaPath string, reg *Registry, log *logging.Logger) {
	px, err := xmlcodec.DecodeDepatch(data)
	if err != nil {
		if log != nil {
			log.Warn("patch", "malformed depatch manifest: "+err.Error())
		}
		return
	}

	id, err := ids.Parse(px.Identifier)
	if err != nil {
		if log != nil {
			log.Warn("patch", "depatch manifest has invalid identifier: "+err.Error())
		}
		return
	}
	gameID, err := ids.Parse(px.GameID)
	if err != nil {
		if log != nil {
			log.Warn("patch", "depatch manifest has invalid gameId: "+err.Error())
		}
		return
	}

	p := &Patch{
		ID:          id,
		Name:        px.Name,
		Description: px.Description,
		Creator:     px.Creator,
		Homepage:    px.Homepage,
		PatchDir:    patchDir,
		DataDir:     px.DataDir,
		GameID:      gameID,
		DelgaFile:   delgaPath,
	}
	for _, req := range px.RequiredPatch {
		if reqID, err := ids.Parse(req); err == nil {
			p.RequiredPatches = append(p.RequiredPatches, reqID)
		}
	}

	reg.Add(p, log)
}
