package memory

import (
	"context"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"
)

type MonarchRepo struct {
	store *Store
}

func NewMonarchRepo(store *Store) MonarchRepo {
	return MonarchRepo{store: store}
}

func (r MonarchRepo) LoadCurrent(ctx context.Context) (royal.Monarch, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	if r.store.monarch == nil {
		return royal.Monarch{}, ports.ErrNotFound
	}
	return *r.store.monarch, nil
}

func (r MonarchRepo) SaveWithVersion(ctx context.Context, m royal.Monarch, expectedVersion int64) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if r.store.monarch == nil {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.monarch = &m
		return nil
	}
	if r.store.monarch.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.monarch = &m
	return nil
}
