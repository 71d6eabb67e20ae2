package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo/repo_errors"
	"bid-ledger-api/pkg/postgres"
)

// RegistryRepo reads the project and bidder tables owned by the registry services.
type RegistryRepo struct {
	*postgres.Postgres
}

func NewRegistryRepo(pgdb *postgres.Postgres) *RegistryRepo {
	return &RegistryRepo{pgdb}
}

func (r *RegistryRepo) GetProjectById(ctx context.Context, id int64) (*entity.Project, error) {
	getProjectReq, args, _ := r.SqlBuilder.
		Select("id", "bidding_start", "bidding_deadline", "minimum_stake").
		From("project").
		Where("id = ?", id).
		ToSql()

	var project entity.Project
	err := r.Conn(ctx).QueryRowContext(ctx, getProjectReq, args...).
		Scan(&project.Id, &project.BiddingStart, &project.BiddingDeadline, &project.MinimumStake)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &project, nil
}

func (r *RegistryRepo) IsVerifiedBidder(ctx context.Context, bidder string) (bool, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("verified").
		From("bidder").
		Where("identity = ?", bidder).
		ToSql()

	var verified bool
	err := r.Conn(ctx).QueryRowContext(ctx, sqlReq, args...).Scan(&verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return verified, nil
}
