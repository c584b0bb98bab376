package database

import (
	"context"
	"errors"
)

// UnitOfWork implements application.UnitOfWork on top of a Connection.
// Nested Begin calls join the enclosing transaction instead of opening a
// second one; only the outermost owner commits or rolls back.
type UnitOfWork struct {
	conn Connection
}

// NewUnitOfWork creates a unit of work bound to conn.
func NewUnitOfWork(conn Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Begin starts a transaction, or joins one already in the context.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if tx, _, ok := txOwned(ctx); ok {
		return WithTx(ctx, tx, false), nil
	}

	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return WithTx(ctx, tx, true), nil
}

// Commit commits the transaction when this unit owns it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, owned, ok := txOwned(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !owned {
		return nil
	}
	return tx.Commit(ctx)
}

// Rollback rolls back the transaction when this unit owns it.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, owned, ok := txOwned(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !owned {
		return nil
	}
	return tx.Rollback(ctx)
}
