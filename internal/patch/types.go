// Package patch implements the patch registry (C6): discovery of
// *.depatch manifests and DELGA-hosted patches, analogous to
// internal/game but keyed to a target game and a required-patch graph
// with OR semantics.
package patch

import "github.com/dragontooth/launcher/internal/ids"

// Patch is one discovered patch (spec §3).
type Patch struct {
	ID ids.ID

	Name        string
	Description string
	Creator     string
	Homepage    string

	PatchDir string
	DataDir  string

	GameID ids.ID

	// RequiredPatches lists prerequisite patch identifiers with
	// OR semantics: any one being present satisfies the requirement
	// (spec §4.6).
	RequiredPatches []ids.ID

	DelgaFile  string
	HiddenPath []string
}

// SatisfiedBy reports whether present contains at least one of p's
// required patches, or p requires none.
func (p *Patch) SatisfiedBy(present map[ids.ID]bool) bool {
	if len(p.RequiredPatches) == 0 {
		return true
	}
	for _, req := range p.RequiredPatches {
		if present[req] {
			return true
		}
	}
	return false
}
