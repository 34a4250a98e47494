package game

import (
	"sync"

	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/logging"
)

// Registry holds every discovered game, keyed by identifier.
type Registry struct {
	mu    sync.RWMutex
	games map[ids.ID]*Game
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[ids.ID]*Game)}
}

// Add registers g unless its identifier already claims a slot, in
// which case the second sighting is rejected (spec §4.5: "Duplicates
// by identifier are rejected silently on the second sighting"); the
// rejection is logged at info level when log is non-nil.
func (r *Registry) Add(g *Game, log *logging.Logger) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[g.ID]; exists {
		if log != nil {
			log.Info("game", "duplicate game identifier "+g.ID.Hex()+" ("+g.Title+") ignored")
		}
		return false
	}
	r.games[g.ID] = g
	return true
}

// Get looks up a game by identifier.
func (r *Registry) Get(id ids.ID) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// All returns every registered game.
func (r *Registry) All() []*Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out
}
