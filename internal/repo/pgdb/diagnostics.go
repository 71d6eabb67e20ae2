package pgdb

import (
	"context"
	"fmt"

	"bid-ledger-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

// Ping checks the connection and that the ledger schema is migrated.
func (r *DiagnosticsRepo) Ping(ctx context.Context) error {
	if err := r.Database.PingContext(ctx); err != nil {
		return err
	}

	stateReq, args, _ := r.SqlBuilder.
		Select("next_bid_id").
		From("ledger_state").
		Where("id = ?", ledgerStateId).
		ToSql()

	var nextBidId int64
	if err := r.Database.QueryRowContext(ctx, stateReq, args...).Scan(&nextBidId); err != nil {
		return fmt.Errorf("read ledger state: %w", err)
	}

	return nil
}
