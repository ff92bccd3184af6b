// Package actors keeps the in-process roster of live participants. Player
// sessions and the NPC population register here; the succession and combat
// systems read through ports.ActorProvider.
package actors

import (
	"sort"
	"sync"

	"crownhold/internal/app/ports"
)

type Registry struct {
	mu     sync.RWMutex
	actors map[string]ports.Actor
}

func NewRegistry() *Registry {
	return &Registry{actors: make(map[string]ports.Actor)}
}

// Upsert registers or refreshes an actor keyed by stats name.
func (r *Registry) Upsert(a ports.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors[a.Stats.Name] = a
}

func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actors, name)
}

func (r *Registry) FindLive(name string) (ports.Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actors[name]
	return a, ok
}

// ListLiveNPCs returns the NPC roster sorted by name, so callers ranking
// candidates see a stable order across runs.
func (r *Registry) ListLiveNPCs() []ports.Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.Actor, 0, len(r.actors))
	for _, a := range r.actors {
		if a.IsNPC {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stats.Name < out[j].Stats.Name })
	return out
}
