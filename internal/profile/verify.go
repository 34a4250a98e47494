package profile

import (
	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/module"
)

// Validate walks every assigned single-instance kind and checks that
// its chosen module exists in reg with status ready and matching kind
// (spec §4.7). Unassigned kinds are skipped. Sets p.Valid as a side
// effect and returns a descriptive error on the first violation found.
func (p *Profile) Validate(reg *module.Registry) error {
	disabled := p.DisabledSet()

	for _, kind := range module.SingleInstanceKinds() {
		ref := p.Systems[kind]
		if ref.Empty() {
			continue
		}

		m, ok := reg.ResolveRef(kind, ref.Name, ref.Version, disabled)
		if !ok {
			p.Valid = false
			return launcherr.Newf(launcherr.InvalidState, "profile",
				"profile %q: no %s module %q version %q is available", p.Name, kind, ref.Name, ref.Version)
		}
		if m.Status != module.StatusReady {
			p.Valid = false
			return launcherr.Newf(launcherr.InvalidState, "profile",
				"profile %q: %s module %q %q is not ready (status %s)", p.Name, kind, ref.Name, m.Key.Version, m.Status)
		}
	}

	p.Valid = true
	return nil
}
