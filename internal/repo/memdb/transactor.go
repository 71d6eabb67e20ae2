package memdb

import (
	"context"
	"sync"
)

type txKey struct{}

// Transactor serializes ledger writers with a single mutex. Calls made with a
// ctx that already holds the lock run directly.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(txKey{}).(*Transactor); held == t {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, t))
}

type Diagnostics struct{}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (Diagnostics) Ping(context.Context) error {
	return nil
}
