package pgdb

import (
	"context"

	"bid-ledger-api/internal/repo/repo_errors"
	"bid-ledger-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

// TransferRepo moves balances between stake_account rows. When ctx carries the
// ledger transaction the transfer commits or rolls back together with the bid.
type TransferRepo struct {
	*postgres.Postgres
}

func NewTransferRepo(pgdb *postgres.Postgres) *TransferRepo {
	return &TransferRepo{pgdb}
}

func (r *TransferRepo) Transfer(ctx context.Context, amount int64, from string, to string) error {
	if amount < 0 {
		return repo_errors.ErrInsufficientFunds
	}
	if amount == 0 {
		return nil
	}

	return r.WithinTx(ctx, func(ctx context.Context) error {
		debitReq, args, _ := r.SqlBuilder.
			Update("stake_account").
			Set("balance", squirrel.Expr("balance - ?", amount)).
			Where("owner = ?", from).
			Where("balance >= ?", amount).
			ToSql()

		res, err := r.Conn(ctx).ExecContext(ctx, debitReq, args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repo_errors.ErrInsufficientFunds
		}

		creditReq, args, _ := r.SqlBuilder.
			Insert("stake_account").
			Columns("owner", "balance").
			Values(to, amount).
			Suffix("ON CONFLICT (owner) DO UPDATE SET balance = stake_account.balance + EXCLUDED.balance").
			ToSql()

		if _, err = r.Conn(ctx).ExecContext(ctx, creditReq, args...); err != nil {
			return err
		}

		return nil
	})
}
