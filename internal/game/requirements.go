package game

import "github.com/dragontooth/launcher/internal/module"

// VerifyRequirements fills g.Verification by checking the game's
// declared format requirements and script-module dependency against
// reg (spec §3 "derived verification fields").
func (g *Game) VerifyRequirements(reg *module.Registry) {
	g.Verification.AllFormatsSupported = true
	for _, req := range g.Requirements {
		if !anyModuleMatchesPattern(reg, module.Kind(req.Kind), req.Pattern) {
			g.Verification.AllFormatsSupported = false
			break
		}
	}

	g.Verification.ScriptModuleFound = false
	for _, m := range reg.ByFamily(g.ScriptModule.Name) {
		if m.Kind != module.KindScript || m.Status != module.StatusReady {
			continue
		}
		if g.ScriptModule.MinVersion == "" || module.CompareVersions(m.Key.Version, g.ScriptModule.MinVersion) >= 0 {
			if !g.Verification.ScriptModuleFound || module.CompareVersions(m.Key.Version, g.Verification.ResolvedScriptVer) > 0 {
				g.Verification.ScriptModuleFound = true
				g.Verification.ResolvedScriptVer = m.Key.Version
			}
		}
	}

	g.Verification.CanRun = g.Verification.AllFormatsSupported && g.Verification.ScriptModuleFound
}

func anyModuleMatchesPattern(reg *module.Registry, kind module.Kind, pattern string) bool {
	for _, m := range reg.All() {
		if m.Kind == kind && m.Status == module.StatusReady && m.Pattern == pattern {
			return true
		}
	}
	return false
}
