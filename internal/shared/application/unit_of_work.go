package application

import "context"

// UnitOfWork groups repository operations into a single atomic scope.
type UnitOfWork interface {
	// Begin returns a context carrying the transaction.
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WithUnitOfWork runs fn inside a transaction, committing on success and
// rolling back on error.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}
