// Package runparams implements the run-parameter resolver (C8):
// patch-set resolution, and composition of the effective profile, run
// arguments, and window settings for one launch.
package runparams

import (
	"sort"
	"strings"

	"github.com/dragontooth/launcher/internal/game"
	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/patch"
	"github.com/dragontooth/launcher/internal/profile"
)

// RunParams is the transient, per-launch resolution result (spec §3).
type RunParams struct {
	Profile      *profile.Profile
	RunArguments string
	Width        int
	Height       int
	FullScreen   bool
	Patches      []*patch.Patch
}

// ProfileLookup resolves a named profile from the launcher-wide profile
// registry.
type ProfileLookup func(name string) (*profile.Profile, bool)

// Resolve computes the run parameters for g (spec §4.8).
func Resolve(g *game.Game, patches *patch.Registry, lookup ProfileLookup, launcherActive, defaultProfile *profile.Profile) (*RunParams, error) {
	resolvedPatches, err := resolvePatches(g, patches)
	if err != nil {
		return nil, err
	}

	p := effectiveProfile(g, lookup, launcherActive, defaultProfile)

	width, height, fullScreen := p.Window.Width, p.Window.Height, p.Window.FullScreen
	if g.HasFixedSize {
		width, height = g.WindowWidth, g.WindowHeight
		fullScreen = false
	}

	return &RunParams{
		Profile:      p,
		RunArguments: effectiveArgs(g, p),
		Width:        width,
		Height:       height,
		FullScreen:   fullScreen,
		Patches:      resolvedPatches,
	}, nil
}

// effectiveProfile picks game's active-profile ?? custom ?? launcher
// active ?? default (spec §4.8).
func effectiveProfile(g *game.Game, lookup ProfileLookup, launcherActive, defaultProfile *profile.Profile) *profile.Profile {
	if g.ActiveProfileName != "" && lookup != nil {
		if p, ok := lookup(g.ActiveProfileName); ok {
			return p
		}
	}
	if g.CustomProfile != nil {
		return g.CustomProfile
	}
	if launcherActive != nil {
		return launcherActive
	}
	return defaultProfile
}

// effectiveArgs composes run arguments per the replace-vs-append open
// question decision recorded in DESIGN.md: replace ⇒ profile args only;
// else ⇒ game args concatenated with profile args, trimmed.
func effectiveArgs(g *game.Game, p *profile.Profile) string {
	if p != nil && p.ReplaceRunArguments {
		return p.RunArguments
	}
	profileArgs := ""
	if p != nil {
		profileArgs = p.RunArguments
	}
	return strings.TrimSpace(g.RunArguments + " " + profileArgs)
}

func resolvePatches(g *game.Game, patches *patch.Registry) ([]*patch.Patch, error) {
	switch {
	case g.UseLatestPatch:
		return latestOrder(patches.ForGame(g.ID)), nil
	case !g.HasPinnedPatch:
		return nil, nil
	default:
		return pinnedChain(g.PinnedPatch, patches)
	}
}

// latestOrder repeatedly adds any not-yet-added patch whose required
// set is empty or intersects the already-added set, terminating when a
// pass adds nothing (spec §4.8 topological order).
func latestOrder(candidates []*patch.Patch) []*patch.Patch {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID.Hex() < candidates[j].ID.Hex() })

	added := make(map[ids.ID]bool, len(candidates))
	var order []*patch.Patch
	remaining := candidates

	for {
		var next []*patch.Patch
		progressed := false
		for _, p := range remaining {
			if p.SatisfiedBy(added) {
				order = append(order, p)
				added[p.ID] = true
				progressed = true
			} else {
				next = append(next, p)
			}
		}
		remaining = next
		if !progressed || len(remaining) == 0 {
			break
		}
	}
	return order
}

// pinnedChain walks backward from pinnedID through required-patch sets,
// picking the first required patch present in the registry at each
// step, until a patch with no requirements is reached (spec §4.8).
func pinnedChain(pinnedID ids.ID, patches *patch.Registry) ([]*patch.Patch, error) {
	pinned, ok := patches.Get(pinnedID)
	if !ok {
		return nil, launcherr.Newf(launcherr.NotFound, "runparams", "No patch found with identifier '%s'", pinnedID.String())
	}

	chain := []*patch.Patch{pinned}
	current := pinned

	for len(current.RequiredPatches) > 0 {
		var next *patch.Patch
		for _, reqID := range current.RequiredPatches {
			if cand, ok := patches.Get(reqID); ok {
				next = cand
				break
			}
		}
		if next == nil {
			names := make([]string, len(current.RequiredPatches))
			for i, reqID := range current.RequiredPatches {
				names[i] = reqID.String()
			}
			return nil, launcherr.Newf(launcherr.DependencyUnresolved, "runparams",
				"No patch found with identifier '%s'", strings.Join(names, "', '"))
		}
		chain = append(chain, next)
		current = next
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
