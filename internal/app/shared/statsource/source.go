// Package statsource adapts the actor boundaries into combat stat tiers.
package statsource

import (
	"context"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
)

// Live resolves stats from a currently connected actor (NPC or online
// player).
type Live struct {
	Actors ports.ActorProvider
}

func (s Live) Resolve(name string) (combat.Stats, bool) {
	if s.Actors == nil {
		return combat.Stats{}, false
	}
	a, ok := s.Actors.FindLive(name)
	if !ok || !a.Alive {
		return combat.Stats{}, false
	}
	return a.Stats, true
}

// Snapshot resolves stats from a persisted offline snapshot. Missing or
// unreadable snapshots decline rather than fail; the chain's estimator
// tier picks up from there.
type Snapshot struct {
	Ctx  context.Context
	Repo ports.ActorSnapshotRepository
}

func (s Snapshot) Resolve(name string) (combat.Stats, bool) {
	if s.Repo == nil {
		return combat.Stats{}, false
	}
	stats, err := s.Repo.Get(s.Ctx, name)
	if err != nil || stats.MaxHP <= 0 {
		return combat.Stats{}, false
	}
	if stats.HP <= 0 {
		stats.HP = stats.MaxHP
	}
	return stats, true
}

// Reign is the terminal estimator tier keyed to reign length.
type Reign struct {
	DaysReigned int
}

func (s Reign) Resolve(name string) (combat.Stats, bool) {
	return combat.EstimateFromReign(name, s.DaysReigned), true
}
