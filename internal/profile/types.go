// Package profile implements the profile model (C7): the set of chosen
// modules and their parameter overrides that together describe how the
// engine should be configured for a run, plus activation against a live
// engine instance.
package profile

import "github.com/dragontooth/launcher/internal/module"

// ModuleRef names a chosen module by family, with an optional pinned
// version (empty means "use highest available", spec §4.7).
type ModuleRef struct {
	Name    string
	Version string
}

// Empty reports whether no module has been assigned to this slot.
func (r ModuleRef) Empty() bool { return r.Name == "" }

// DisabledModuleVersion is a (name, version) pair that must never be
// activated, regardless of selection (spec §3).
type DisabledModuleVersion struct {
	Name    string
	Version string
}

// Window carries the display preferences a profile requests.
type Window struct {
	FullScreen bool
	Width      int
	Height     int
}

// Profile is a named (or anonymous, when Name == "") bundle of module
// choices, disables, parameter overrides, and run preferences (spec §3).
type Profile struct {
	Name string

	Systems map[module.Kind]ModuleRef

	Disabled []DisabledModuleVersion

	// ParameterOverrides is module-family-name -> {parameter-name -> value}.
	ParameterOverrides map[string]map[string]string

	Window Window

	RunArguments        string
	ReplaceRunArguments bool

	Valid bool
}

// New returns a profile called name (anonymous when name is empty) with
// an empty slot for every single-instance kind.
func New(name string) *Profile {
	p := &Profile{
		Name:               name,
		Systems:            make(map[module.Kind]ModuleRef, len(module.SingleInstanceKinds())),
		ParameterOverrides: make(map[string]map[string]string),
	}
	for _, k := range module.SingleInstanceKinds() {
		p.Systems[k] = ModuleRef{}
	}
	return p
}

// DisabledSet builds the registry-friendly lookup set for p.Disabled.
func (p *Profile) DisabledSet() map[module.Key]bool {
	set := make(map[module.Key]bool, len(p.Disabled))
	for _, d := range p.Disabled {
		set[module.Key{Name: d.Name, Version: d.Version}] = true
	}
	return set
}
