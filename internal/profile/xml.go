package profile

import (
	"github.com/dragontooth/launcher/internal/module"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

type systemsField struct {
	kind    module.Kind
	name    func(xmlcodec.SystemsXML) string
	version func(xmlcodec.SystemsXML) *string
}

var systemsFields = []systemsField{
	{module.KindGraphic, func(s xmlcodec.SystemsXML) string { return s.Graphic }, func(s xmlcodec.SystemsXML) *string { return s.GraphicVersion }},
	{module.KindInput, func(s xmlcodec.SystemsXML) string { return s.Input }, func(s xmlcodec.SystemsXML) *string { return s.InputVersion }},
	{module.KindPhysics, func(s xmlcodec.SystemsXML) string { return s.Physics }, func(s xmlcodec.SystemsXML) *string { return s.PhysicsVersion }},
	{module.KindAnimator, func(s xmlcodec.SystemsXML) string { return s.Animator }, func(s xmlcodec.SystemsXML) *string { return s.AnimatorVersion }},
	{module.KindAI, func(s xmlcodec.SystemsXML) string { return s.AI }, func(s xmlcodec.SystemsXML) *string { return s.AIVersion }},
	{module.KindCrashRecovery, func(s xmlcodec.SystemsXML) string { return s.CrashRecovery }, func(s xmlcodec.SystemsXML) *string { return s.CrashRecoveryVersion }},
	{module.KindAudio, func(s xmlcodec.SystemsXML) string { return s.Audio }, func(s xmlcodec.SystemsXML) *string { return s.AudioVersion }},
	{module.KindSynthesizer, func(s xmlcodec.SystemsXML) string { return s.Synthesizer }, func(s xmlcodec.SystemsXML) *string { return s.SynthesizerVersion }},
	{module.KindNetwork, func(s xmlcodec.SystemsXML) string { return s.Network }, func(s xmlcodec.SystemsXML) *string { return s.NetworkVersion }},
	{module.KindScript, func(s xmlcodec.SystemsXML) string { return s.Script }, func(s xmlcodec.SystemsXML) *string { return s.ScriptVersion }},
}

// FromXML converts a decoded ProfileXML document into a Profile. When
// the document has no <vr> tag at all (HasVR() == false), legacyVR, if
// non-nil, supplies the fallback vr assignment (spec §9 legacy
// documents predating the vr slot; the decision taken here is recorded
// in DESIGN.md).
func FromXML(px xmlcodec.ProfileXML, legacyVR *ModuleRef) *Profile {
	p := New(px.Name)

	for _, f := range systemsFields {
		name := f.name(px.Systems)
		if name == "" {
			continue
		}
		version := ""
		if v := f.version(px.Systems); v != nil {
			version = *v
		}
		p.Systems[f.kind] = ModuleRef{Name: name, Version: version}
	}

	if px.Systems.HasVR() {
		version := ""
		if px.Systems.VRVersion != nil {
			version = *px.Systems.VRVersion
		}
		p.Systems[module.KindVR] = ModuleRef{Name: *px.Systems.VR, Version: version}
	} else if legacyVR != nil {
		p.Systems[module.KindVR] = *legacyVR
	}

	for _, d := range px.DisabledModuleVersions {
		p.Disabled = append(p.Disabled, DisabledModuleVersion{Name: d.Name, Version: d.Version})
	}

	for _, m := range px.Modules {
		if len(m.Parameters) == 0 {
			continue
		}
		overrides := make(map[string]string, len(m.Parameters))
		for _, param := range m.Parameters {
			overrides[param.Name] = param.Value
		}
		p.ParameterOverrides[m.Name] = overrides
	}

	p.RunArguments = px.RunArguments
	p.ReplaceRunArguments = px.ReplaceRunArguments
	p.Window = Window{FullScreen: px.Window.FullScreen, Width: px.Window.Width, Height: px.Window.Height}

	return p
}

// ToXML serializes p back to its on-disk shape.
func ToXML(p *Profile) xmlcodec.ProfileXML {
	px := xmlcodec.ProfileXML{
		Name: p.Name,
		Window: xmlcodec.WindowXML{
			FullScreen: p.Window.FullScreen,
			Width:      p.Window.Width,
			Height:     p.Window.Height,
		},
		RunArguments:        p.RunArguments,
		ReplaceRunArguments: p.ReplaceRunArguments,
	}

	for _, f := range systemsFields {
		ref := p.Systems[f.kind]
		if ref.Empty() {
			continue
		}
		assignSystemField(&px.Systems, f.kind, ref)
	}
	if ref := p.Systems[module.KindVR]; !ref.Empty() {
		name := ref.Name
		version := ref.Version
		px.Systems.VR = &name
		px.Systems.VRVersion = &version
	}

	for _, d := range p.Disabled {
		px.DisabledModuleVersions = append(px.DisabledModuleVersions, xmlcodec.DisabledModuleVersionXML{Name: d.Name, Version: d.Version})
	}

	for name, overrides := range p.ParameterOverrides {
		mp := xmlcodec.ModuleParamsXML{Name: name}
		for param, value := range overrides {
			mp.Parameters = append(mp.Parameters, xmlcodec.ModuleParameterXML{Name: param, Value: value})
		}
		px.Modules = append(px.Modules, mp)
	}

	return px
}

func assignSystemField(s *xmlcodec.SystemsXML, kind module.Kind, ref ModuleRef) {
	version := ref.Version
	switch kind {
	case module.KindGraphic:
		s.Graphic, s.GraphicVersion = ref.Name, &version
	case module.KindInput:
		s.Input, s.InputVersion = ref.Name, &version
	case module.KindPhysics:
		s.Physics, s.PhysicsVersion = ref.Name, &version
	case module.KindAnimator:
		s.Animator, s.AnimatorVersion = ref.Name, &version
	case module.KindAI:
		s.AI, s.AIVersion = ref.Name, &version
	case module.KindCrashRecovery:
		s.CrashRecovery, s.CrashRecoveryVersion = ref.Name, &version
	case module.KindAudio:
		s.Audio, s.AudioVersion = ref.Name, &version
	case module.KindSynthesizer:
		s.Synthesizer, s.SynthesizerVersion = ref.Name, &version
	case module.KindNetwork:
		s.Network, s.NetworkVersion = ref.Name, &version
	case module.KindScript:
		s.Script, s.ScriptVersion = ref.Name, &version
	}
}
