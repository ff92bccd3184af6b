package memory

import (
	"context"

	"crownhold/internal/domain/royal"
)

type HistoryRepo struct {
	store *Store
}

func NewHistoryRepo(store *Store) HistoryRepo {
	return HistoryRepo{store: store}
}

func (r HistoryRepo) Append(ctx context.Context, recs []royal.MonarchRecord) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	ledger := royal.History{Records: r.store.history}
	for _, rec := range recs {
		ledger.Append(rec)
	}
	r.store.history = ledger.Records
	return nil
}

func (r HistoryRepo) List(ctx context.Context, limit int) ([]royal.MonarchRecord, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	records := r.store.history
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]royal.MonarchRecord, len(records))
	copy(out, records)
	return out, nil
}
