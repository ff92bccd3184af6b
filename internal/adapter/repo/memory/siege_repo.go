package memory

import (
	"context"
	"time"

	"crownhold/internal/app/ports"
)

type SiegeRepo struct {
	store *Store
}

func NewSiegeRepo(store *Store) SiegeRepo {
	return SiegeRepo{store: store}
}

func (r SiegeRepo) Create(ctx context.Context, rec ports.SiegeRecord) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.sieges[rec.ID]; exists {
		return ports.ErrConflict
	}
	r.store.sieges[rec.ID] = rec
	return nil
}

func (r SiegeRepo) Update(ctx context.Context, rec ports.SiegeRecord) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	current, exists := r.store.sieges[rec.ID]
	if !exists {
		return ports.ErrNotFound
	}
	if current.Status.Terminal() {
		return ports.ErrConflict
	}
	r.store.sieges[rec.ID] = rec
	return nil
}

func (r SiegeRepo) GetByID(ctx context.Context, id string) (ports.SiegeRecord, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	rec, exists := r.store.sieges[id]
	if !exists {
		return ports.SiegeRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

// ClaimSiegeWindow is check-and-set under the store lock, so only one team
// can open a window at a time.
func (r SiegeRepo) ClaimSiegeWindow(ctx context.Context, team string, now time.Time, cooldown time.Duration) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if until, exists := r.store.windows[team]; exists && now.Before(until) {
		return ports.ErrConflict
	}
	r.store.windows[team] = now.Add(cooldown)
	return nil
}
