package database

import "context"

type txKey struct{}

type txInfo struct {
	tx    Transaction
	owned bool
}

// WithTx stores a transaction in the context. Owned marks whether the
// caller started the transaction and is responsible for finishing it.
func WithTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, txInfo{tx: tx, owned: owned})
}

// TxFromContext returns the context's transaction, or nil.
func TxFromContext(ctx context.Context) Transaction {
	info, ok := ctx.Value(txKey{}).(txInfo)
	if !ok {
		return nil
	}
	return info.tx
}

func txOwned(ctx context.Context) (Transaction, bool, bool) {
	info, ok := ctx.Value(txKey{}).(txInfo)
	if !ok || info.tx == nil {
		return nil, false, false
	}
	return info.tx, info.owned, true
}

// ExecutorFromContext returns the active transaction when one is present,
// falling back to the plain connection. Repositories call this so they
// participate in a unit of work transparently.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return conn
}
