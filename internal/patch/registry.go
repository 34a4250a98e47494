package patch

import (
	"sync"

	"github.com/dragontooth/launcher/internal/ids"
	"github.com/dragontooth/launcher/internal/logging"
)

// Registry holds every discovered patch, keyed by identifier.
type Registry struct {
	mu      sync.RWMutex
	patches map[ids.ID]*Patch
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{patches: make(map[ids.ID]*Patch)}
}

// Add registers p unless its identifier already claims a slot (spec
// §4.6, same duplicate rule as the game registry).
func (r *Registry) Add(p *Patch, log *logging.Logger) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patches[p.ID]; exists {
		if log != nil {
			log.Info("patch", "duplicate patch identifier "+p.ID.Hex()+" ("+p.Name+") ignored")
		}
		return false
	}
	r.patches[p.ID] = p
	return true
}

// Get looks up a patch by identifier.
func (r *Registry) Get(id ids.ID) (*Patch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patches[id]
	return p, ok
}

// ForGame returns every patch targeting gameID.
func (r *Registry) ForGame(gameID ids.ID) []*Patch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Patch
	for _, p := range r.patches {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	return out
}
