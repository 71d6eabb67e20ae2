package pgdb

import (
	"context"
	"fmt"

	"bid-ledger-api/pkg/postgres"
)

// ledgerStateId is the primary key of the single ledger_state row.
const ledgerStateId = 1

type TransactorRepo struct {
	*postgres.Postgres
}

func NewTransactorRepo(pgdb *postgres.Postgres) *TransactorRepo {
	return &TransactorRepo{pgdb}
}

// WithinTx opens a transaction and locks the ledger_state row before running fn,
// so ledger writers from every process are serialized.
func (r *TransactorRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.Postgres.WithinTx(ctx, func(ctx context.Context) error {
		lockReq, args, _ := r.SqlBuilder.
			Select("next_bid_id").
			From("ledger_state").
			Where("id = ?", ledgerStateId).
			Suffix("FOR UPDATE").
			ToSql()

		var nextBidId int64
		if err := r.Conn(ctx).QueryRowContext(ctx, lockReq, args...).Scan(&nextBidId); err != nil {
			return fmt.Errorf("lock ledger state: %w", err)
		}

		return fn(ctx)
	})
}
