package game

import (
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/profile"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

// ApplyConfigOverlays attaches each decoded per-game config onto the
// already-discovered game sharing its identifier, contributing the
// custom profile, active-profile reference, and run preferences (spec
// §4.5 point 1). Overlays with no matching discovered game are logged
// and dropped: a configuration directory names a game by identifier but
// carries no game metadata of its own (see DESIGN.md open question
// addendum), so without a matching disk/DELGA discovery there is
// nothing to attach it to.
func ApplyConfigOverlays(reg *Registry, overlays map[ids.ID]xmlcodec.GameConfigXML, legacyVR *profile.ModuleRef, log *logging.Logger) {
	for id, gx := range overlays {
		g, ok := reg.Get(id)
		if !ok {
			if log != nil {
				log.Warn("game", "config directory "+id.Hex()+" has no matching discovered game")
			}
			continue
		}

		if gx.CustomProfile != nil {
			g.CustomProfile = profile.FromXML(*gx.CustomProfile, legacyVR)
		}
		g.ActiveProfileName = gx.ActiveProfile
		g.RunArguments = gx.RunArguments
		g.UseLatestPatch = gx.UseLatestPatch
		if gx.UseCustomPatch != "" {
			if pinned, err := ids.Parse(gx.UseCustomPatch); err == nil {
				g.PinnedPatch = pinned
				g.HasPinnedPatch = true
			}
		}
	}
}
