package profile

import "github.com/dragontooth/launcher/internal/module"

// Commander is the subset of engine-instance operations activation
// needs (spec §4.9 commands 5/6/7). internal/engine's EngineInstance
// satisfies it; tests use a recording fake.
type Commander interface {
	EnableModule(name, version string, enable bool) error
	ActivateModule(name, version string) error
	SetModuleParameter(name, version, parameter, value string) error
}

// Activate sequences the engine commands described in spec §4.7:
// disable listed pairs, activate each single-instance kind in the
// fixed order, then push parameter overrides for matched parameters.
func (p *Profile) Activate(reg *module.Registry, cmd Commander) error {
	for _, d := range p.Disabled {
		if err := cmd.EnableModule(d.Name, d.Version, false); err != nil {
			return err
		}
	}

	for _, kind := range module.SingleInstanceKinds() {
		ref := p.Systems[kind]
		if ref.Empty() {
			continue
		}
		if err := cmd.ActivateModule(ref.Name, ref.Version); err != nil {
			return err
		}
	}

	disabled := p.DisabledSet()
	for name, overrides := range p.ParameterOverrides {
		versions := reg.ByFamily(name)
		if len(versions) == 0 {
			continue
		}
		var target *module.EngineModule
		for _, m := range versions {
			if disabled[m.Key] {
				continue
			}
			target = m
			break
		}
		if target == nil {
			continue
		}
		for paramName, value := range overrides {
			if _, ok := target.Parameter(paramName); !ok {
				continue // unknown parameters are silently skipped
			}
			if err := cmd.SetModuleParameter(target.Key.Name, target.Key.Version, paramName, value); err != nil {
				return err
			}
		}
	}

	return nil
}
