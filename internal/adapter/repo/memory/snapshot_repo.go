package memory

import (
	"context"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Get(ctx context.Context, name string) (combat.Stats, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	stats, exists := r.store.snapshots[name]
	if !exists {
		return combat.Stats{}, ports.ErrNotFound
	}
	return stats, nil
}

func (r SnapshotRepo) Save(ctx context.Context, stats combat.Stats) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	r.store.snapshots[stats.Name] = stats
	return nil
}
