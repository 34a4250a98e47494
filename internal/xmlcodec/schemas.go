package xmlcodec

import (
	"bytes"
	"encoding/xml"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// Warn reports an unrecognized tag encountered while decoding; callers
// pass a closure bound to their chain logger. It must never fail a load
// (spec §4.3): unknown tags warn, they don't abort.
type Warn func(source, message string)

// --- launcherConfig -------------------------------------------------

// LauncherConfigXML is the <user_config>/launcher.xml schema (spec §6).
type LauncherConfigXML struct {
	XMLName       xml.Name    `xml:"launcherConfig"`
	Profiles      []ProfileXML `xml:"profiles>profile"`
	ActiveProfile string      `xml:"activeProfile,omitempty"`
}

var launcherConfigKnownTags = map[string]bool{"profiles": true, "activeProfile": true}

func DecodeLauncherConfig(data []byte, source string, warn Warn) (LauncherConfigXML, error) {
	var c LauncherConfigXML
	if err := xml.Unmarshal(data, &c); err != nil {
		return LauncherConfigXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode launcher config")
	}
	if warn != nil {
		if dom, err := ReadDOM(bytes.NewReader(data)); err == nil {
			for _, tag := range dom.UnknownChildren(launcherConfigKnownTags) {
				warn(source, "unrecognized launcherConfig tag: "+tag)
			}
		}
	}
	return c, nil
}

func EncodeLauncherConfig(c LauncherConfigXML) ([]byte, error) {
	out, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "xmlcodec", err, "encode launcher config")
	}
	return append([]byte(xml.Header), out...), nil
}

// --- profile ----------------------------------------------------------

// ProfileXML is the on-disk shape of a profile record (spec §6, §4.3).
// Pointer fields for each single-instance kind's version distinguish
// "tag present but empty" (use-highest) from "tag absent entirely"
// (legacy vr fallback, spec §4.3/§9).
type ProfileXML struct {
	XMLName xml.Name `xml:"profile"`
	Name    string   `xml:"name,attr,omitempty"`

	Systems SystemsXML `xml:"systems"`

	DisabledModuleVersions []DisabledModuleVersionXML `xml:"disableModuleVersions>disableModuleVersion"`
	Modules                []ModuleParamsXML           `xml:"modules>module"`

	RunArguments        string `xml:"runArguments,omitempty"`
	ReplaceRunArguments bool   `xml:"replaceRunArguments,omitempty"`

	Window WindowXML `xml:"window"`
}

// SystemsXML carries the chosen module name (+optional version) for
// each single-instance kind. A nil *Version pointer means the tag was
// absent from the document (spec §4.3 legacy vr fallback); a non-nil
// pointer to "" means "use highest" (spec §3 Profile).
type SystemsXML struct {
	Graphic        string  `xml:"graphic"`
	GraphicVersion *string `xml:"graphicVersion"`
	Input          string  `xml:"input"`
	InputVersion   *string `xml:"inputVersion"`
	Physics        string  `xml:"physics"`
	PhysicsVersion *string `xml:"physicsVersion"`
	Animator       string  `xml:"animator"`
	AnimatorVersion *string `xml:"animatorVersion"`
	AI             string  `xml:"ai"`
	AIVersion      *string `xml:"aiVersion"`
	CrashRecovery  string  `xml:"crashRecovery"`
	CrashRecoveryVersion *string `xml:"crashRecoveryVersion"`
	Audio          string  `xml:"audio"`
	AudioVersion   *string `xml:"audioVersion"`
	Synthesizer    string  `xml:"synthesizer"`
	SynthesizerVersion *string `xml:"synthesizerVersion"`
	Network        string  `xml:"network"`
	NetworkVersion *string `xml:"networkVersion"`
	VR             *string `xml:"vr"`
	VRVersion      *string `xml:"vrVersion"`
	Script         string  `xml:"script"`
	ScriptVersion  *string `xml:"scriptVersion"`
}

// HasVR reports whether the document carried a <vr> tag at all,
// distinguishing "absent" (legacy document, spec §9) from "present but
// empty" (explicit "no vr module chosen").
func (s SystemsXML) HasVR() bool { return s.VR != nil }

type DisabledModuleVersionXML struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
}

type ModuleParamsXML struct {
	Name       string               `xml:"name,attr"`
	Parameters []ModuleParameterXML `xml:"parameters>parameter"`
}

type ModuleParameterXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type WindowXML struct {
	FullScreen bool `xml:"fullScreen"`
	Width      int  `xml:"width"`
	Height     int  `xml:"height"`
}

var profileKnownTags = map[string]bool{
	"systems": true, "disableModuleVersions": true, "modules": true,
	"runArguments": true, "replaceRunArguments": true, "window": true,
}

// DecodeProfile decodes a <profile> document, warning (not failing) on
// unrecognized top-level tags.
func DecodeProfile(data []byte, source string, warn Warn) (ProfileXML, error) {
	var p ProfileXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return ProfileXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode profile")
	}
	if warn != nil {
		if dom, err := ReadDOM(bytes.NewReader(data)); err == nil {
			for _, tag := range dom.UnknownChildren(profileKnownTags) {
				warn(source, "unrecognized profile tag: "+tag)
			}
		}
	}
	return p, nil
}

// EncodeProfile serializes a profile record back to XML bytes,
// indented for readability (spec §8: profile XML round-trip must be
// lossless over the fields above).
func EncodeProfile(p ProfileXML) ([]byte, error) {
	out, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "xmlcodec", err, "encode profile")
	}
	return append([]byte(xml.Header), out...), nil
}

// --- gameConfig ---------------------------------------------------------

// GameConfigXML is the per-game <user_config>/games/<id-hex>/launcher.xml
// schema (spec §6).
type GameConfigXML struct {
	XMLName         xml.Name    `xml:"gameConfig"`
	CustomProfile   *ProfileXML `xml:"customProfile"`
	ActiveProfile   string      `xml:"activeProfile,omitempty"`
	RunArguments    string      `xml:"runArguments,omitempty"`
	UseLatestPatch  bool        `xml:"useLatestPatch"`
	UseCustomPatch  string      `xml:"useCustomPatch,omitempty"`
}

var gameConfigKnownTags = map[string]bool{
	"customProfile": true, "activeProfile": true, "runArguments": true,
	"useLatestPatch": true, "useCustomPatch": true,
}

func DecodeGameConfig(data []byte, source string, warn Warn) (GameConfigXML, error) {
	var g GameConfigXML
	if err := xml.Unmarshal(data, &g); err != nil {
		return GameConfigXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode game config")
	}
	if warn != nil {
		if dom, err := ReadDOM(bytes.NewReader(data)); err == nil {
			for _, tag := range dom.UnknownChildren(gameConfigKnownTags) {
				warn(source, "unrecognized gameConfig tag: "+tag)
			}
		}
	}
	return g, nil
}

func EncodeGameConfig(g GameConfigXML) ([]byte, error) {
	out, err := xml.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "xmlcodec", err, "encode game config")
	}
	return append([]byte(xml.Header), out...), nil
}

// --- module manifest ------------------------------------------------

// ModuleXML is a module.xml engine manifest (spec §6).
type ModuleXML struct {
	XMLName     xml.Name       `xml:"module"`
	Name        string         `xml:"name"`
	Description string         `xml:"description,omitempty"`
	Author      string         `xml:"author,omitempty"`
	Version     string         `xml:"version"`
	Type        string         `xml:"type"`
	Pattern     string         `xml:"pattern,omitempty"`
	Library     ModuleLibraryXML `xml:"library"`
	Fallback    bool           `xml:"fallback,omitempty"`
	Priority    int            `xml:"priority,omitempty"`
}

type ModuleLibraryXML struct {
	File       string `xml:"file"`
	Size       int64  `xml:"size,omitempty"`
	SHA1       string `xml:"sha1,omitempty"`
	EntryPoint string `xml:"entrypoint"`
}

// mandatory tags per spec §4.3: missing mandatory fields fail the load
// with InvalidFormat.
func DecodeModule(data []byte) (ModuleXML, error) {
	var m ModuleXML
	if err := xml.Unmarshal(data, &m); err != nil {
		return ModuleXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode module manifest")
	}
	if m.Name == "" || m.Version == "" || m.Type == "" || m.Library.File == "" {
		return ModuleXML{}, launcherr.New(launcherr.InvalidFormat, "xmlcodec", "module manifest missing mandatory field")
	}
	return m, nil
}

// --- degame manifest --------------------------------------------------

type DegameXML struct {
	XMLName          xml.Name      `xml:"degame"`
	Identifier       string        `xml:"identifier"`
	AliasIdentifier  string        `xml:"aliasIdentifier,omitempty"`
	Title            string        `xml:"title"`
	SubTitle         string        `xml:"subTitle,omitempty"`
	Description      string        `xml:"description,omitempty"`
	Icons            []DegameIconXML `xml:"icon"`
	Creator          string        `xml:"creator,omitempty"`
	Homepage         string        `xml:"homepage,omitempty"`
	GameDirectory    string        `xml:"gameDirectory"`
	DataDirectory    string        `xml:"dataDirectory"`
	ScriptDirectory  string        `xml:"scriptDirectory"`
	GameObject       string        `xml:"gameObject"`
	PathConfig       string        `xml:"pathConfig"`
	PathCapture      string        `xml:"pathCapture"`
	ScriptModule     ScriptModuleXML `xml:"scriptModule"`
	WindowSize       *WindowSizeXML  `xml:"windowSize"`
	RequireFormats   []RequireFormatXML `xml:"requireFormat"`
}

type DegameIconXML struct {
	Size int    `xml:"size,attr"`
	Path string `xml:",chardata"`
}

type ScriptModuleXML struct {
	Name    string `xml:",chardata"`
	Version string `xml:"version,attr,omitempty"`
}

type WindowSizeXML struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type RequireFormatXML struct {
	Type    string `xml:"type,attr"`
	Pattern string `xml:",chardata"`
}

func DecodeDegame(data []byte) (DegameXML, error) {
	var g DegameXML
	if err := xml.Unmarshal(data, &g); err != nil {
		return DegameXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode degame manifest")
	}
	if g.Identifier == "" || g.Title == "" || g.GameDirectory == "" ||
		g.PathConfig == "" || g.PathCapture == "" {
		return DegameXML{}, launcherr.New(launcherr.InvalidFormat, "xmlcodec", "degame manifest missing mandatory field")
	}
	return g, nil
}

// --- depatch manifest -------------------------------------------------

type DepatchXML struct {
	XMLName       xml.Name `xml:"depatch"`
	Identifier    string   `xml:"identifier"`
	Name          string   `xml:"name"`
	Description   string   `xml:"description,omitempty"`
	Creator       string   `xml:"creator,omitempty"`
	Homepage      string   `xml:"homepage,omitempty"`
	PatchDir      string   `xml:"patchDir"`
	DataDir       string   `xml:"dataDir"`
	GameID        string   `xml:"gameId"`
	RequiredPatch []string `xml:"requiredPatch"`
}

func DecodeDepatch(data []byte) (DepatchXML, error) {
	var p DepatchXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return DepatchXML{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode depatch manifest")
	}
	if p.Identifier == "" || p.GameID == "" {
		return DepatchXML{}, launcherr.New(launcherr.InvalidFormat, "xmlcodec", "depatch manifest missing mandatory field")
	}
	return p, nil
}
