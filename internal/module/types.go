// Package module implements the engine module registry (C4): discovery
// of module.xml manifests, library hashing, and best-module-per-type
// selection (spec §3, §4.4, §8).
package module

// Kind is one of the closed set of module kinds (spec §3).
type Kind string

const (
	KindGraphic         Kind = "graphic"
	KindInput           Kind = "input"
	KindPhysics         Kind = "physics"
	KindAnimator        Kind = "animator"
	KindAI              Kind = "ai"
	KindCrashRecovery   Kind = "crashRecovery"
	KindAudio           Kind = "audio"
	KindSynthesizer     Kind = "synthesizer"
	KindNetwork         Kind = "network"
	KindVR              Kind = "vr"
	KindScript          Kind = "script"
	KindArchive         Kind = "archive"
	KindAnimation       Kind = "animation"
	KindFont            Kind = "font"
	KindImage           Kind = "image"
	KindModel           Kind = "model"
	KindRig             Kind = "rig"
	KindSkin            Kind = "skin"
	KindLanguagePack    Kind = "languagePack"
	KindSound           Kind = "sound"
	KindVideo           Kind = "video"
	KindOcclusionMesh   Kind = "occlusionMesh"
	KindService         Kind = "service"
)

// AllKinds lists every known module kind, in the order their manifest
// directories are scanned.
var AllKinds = []Kind{
	KindGraphic, KindInput, KindPhysics, KindAnimator, KindAI, KindCrashRecovery,
	KindAudio, KindSynthesizer, KindNetwork, KindVR, KindScript, KindArchive,
	KindAnimation, KindFont, KindImage, KindModel, KindRig, KindSkin,
	KindLanguagePack, KindSound, KindVideo, KindOcclusionMesh, KindService,
}

// singleInstanceKinds is the set of kinds of which exactly one module is
// active at a time (spec §3).
var singleInstanceKinds = map[Kind]bool{
	KindGraphic: true, KindInput: true, KindPhysics: true, KindAnimator: true,
	KindAI: true, KindCrashRecovery: true, KindAudio: true, KindSynthesizer: true,
	KindNetwork: true, KindVR: true, KindScript: true,
}

// IsSingleInstance reports whether k is a single-instance kind.
func (k Kind) IsSingleInstance() bool { return singleInstanceKinds[k] }

// SingleInstanceKinds returns the single-instance kinds in the fixed
// activation order of spec §4.7 step 2.
func SingleInstanceKinds() []Kind {
	return []Kind{
		KindCrashRecovery, KindGraphic, KindInput, KindPhysics, KindAnimator,
		KindAI, KindAudio, KindSynthesizer, KindNetwork, KindVR, KindScript,
	}
}

// Status is a module's verification status (spec §3).
type Status int

const (
	StatusNotTested Status = iota
	StatusReady
	StatusBroken
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusBroken:
		return "broken"
	default:
		return "not-tested"
	}
}

// SelectionEntry is one choice in a ModuleParameter's enumerated value
// list (spec §3).
type SelectionEntry struct {
	Value       string
	DisplayName string
	Description string
}

// ParameterType classifies a module parameter's value domain, mirroring
// the engine-instance wire protocol's u8 type tag (spec §4.9 command 4).
type ParameterType int

const (
	ParamBoolean ParameterType = iota
	ParamInt
	ParamFloat
	ParamString
	ParamSelection
	ParamRange
)

// ParameterInfo is the immutable description of one module parameter
// (spec §3).
type ParameterInfo struct {
	Name        string
	Description string
	Type        ParameterType
	Min         float32
	Max         float32
	Step        float32
	Category    int
	DisplayName string
	Default     string
	Selection   []SelectionEntry
}

// ModuleParameter pairs a parameter's static info with its current value.
type ModuleParameter struct {
	Index   int
	Info    ParameterInfo
	Current string
}

// Key identifies a concrete module release (spec §3: name alone
// identifies a family, the pair identifies a release).
type Key struct {
	Name    string
	Version string
}

// EngineModule is a discovered, concrete module release (spec §3).
type EngineModule struct {
	Key Key

	Kind        Kind
	Description string
	Author      string
	Directory   string // directory name the manifest was found in
	Pattern     string // file-match pattern
	Priority    int
	IsFallback  bool

	Status    Status
	ErrorCode int

	LibraryFile    string
	ExpectedSize   int64
	ObservedSize   int64
	ExpectedHash   string
	ObservedHash   string
	EntryPoint     string

	Parameters []ModuleParameter
}

// Family returns the module's name, the "family" identity of spec §3.
func (m *EngineModule) Family() string { return m.Key.Name }

// HashMatches reports whether the observed library hash/size agree with
// the manifest's declared expectations (spec §8).
func (m *EngineModule) HashMatches() bool {
	return m.ExpectedHash != "" &&
		m.ObservedHash == m.ExpectedHash &&
		m.ExpectedSize == m.ObservedSize
}

// Parameter returns the named parameter, if present (spec §3: name
// unique within a module).
func (m *EngineModule) Parameter(name string) (*ModuleParameter, bool) {
	for i := range m.Parameters {
		if m.Parameters[i].Info.Name == name {
			return &m.Parameters[i], true
		}
	}
	return nil, false
}
