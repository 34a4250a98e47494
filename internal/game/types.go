// Package game implements the game registry (C5): discovery of
// installed games from disk scans and DELGA archives, and the per-game
// configuration overlay that attaches a custom profile and run
// preferences to a discovered game.
package game

import (
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/profile"
)

// Icon is lazily-loaded artwork belonging to a Game.
type Icon struct {
	Size int
	Path string
	Data []byte
}

// FormatRequirement pairs a module kind with a file-match pattern a
// game declares it needs support for.
type FormatRequirement struct {
	Kind    string
	Pattern string
}

// ScriptModuleRef names the script module a game requires, plus the
// minimum acceptable version (empty means "any").
type ScriptModuleRef struct {
	Name       string
	MinVersion string
}

// Verification holds the derived fields computed by requirement
// checking (spec §3 "derived verification fields").
type Verification struct {
	AllFormatsSupported bool
	ScriptModuleFound   bool
	ResolvedScriptVer   string
	CanRun              bool
}

// Game is one discovered, installable title (spec §3).
type Game struct {
	ID              ids.ID
	AliasIdentifier string

	Title       string
	Description string
	Creator     string
	Homepage    string
	Icons       []Icon

	GameDirectory   string
	DataDirectory   string
	ScriptDirectory string
	GameObject      string
	ScriptModule    ScriptModuleRef

	WindowWidth  int
	WindowHeight int
	HasFixedSize bool

	Requirements []FormatRequirement

	PathConfig  string
	PathCapture string

	DelgaFile  string
	HiddenPath []string

	CustomProfile     *profile.Profile // nil unless the config overlay embedded one
	ActiveProfileName string
	RunArguments      string
	UseLatestPatch    bool
	PinnedPatch       ids.ID
	HasPinnedPatch    bool

	LogFilePath string

	Verification Verification
}

// HasCustomProfile reports whether the game config overlay embedded an
// anonymous profile rather than referencing a named one.
func (g *Game) HasCustomProfile() bool { return g.CustomProfile != nil }
