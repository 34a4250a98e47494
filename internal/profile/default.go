package profile

import "github.com/dragontooth/launcher/internal/module"

// Synthesize builds the default profile at engine init: best
// module-per-type for each single-instance kind, full-screen at the
// given display resolution (spec §4.7).
func Synthesize(reg *module.Registry, displayWidth, displayHeight int) *Profile {
	p := New("")
	for _, kind := range module.SingleInstanceKinds() {
		if m, ok := reg.BestForKind(kind, nil); ok {
			p.Systems[kind] = ModuleRef{Name: m.Key.Name, Version: m.Key.Version}
		}
	}
	p.Window = Window{FullScreen: true, Width: displayWidth, Height: displayHeight}
	return p
}
