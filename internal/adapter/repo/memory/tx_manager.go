package memory

import "context"

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, true)
}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey).(bool)
	return ok && v
}

// TxManager serializes units of work on the store's lock. Repos see the
// tx marker on the context and skip their own locking inside a unit of
// work; called with a plain context they lock individually. There is no
// rollback; callers rely on the usecases' reject-before-mutate discipline.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(withTx(ctx))
}
