package ports

import "context"

// TxManager scopes a unit of work to one store transaction. The memory
// adapter serializes on a single mutex instead.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
