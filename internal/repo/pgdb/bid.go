package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo/repo_errors"
	"bid-ledger-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const bidColumns = "id, project_id, bidder, bid_hash, amount, written_at, stake_amount, bid_type, " +
	"support_docs_hash, team_size, experience_level, reputation_score, bid_duration, payment_terms"

// unique_violation
const uniqueViolation = "23505"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (entity.Bid, error) {
	var bid entity.Bid
	err := row.Scan(&bid.Id, &bid.ProjectId, &bid.Bidder, &bid.BidHash, &bid.Amount, &bid.Timestamp,
		&bid.StakeAmount, &bid.BidType, &bid.SupportDocsHash, &bid.TeamSize, &bid.ExperienceLevel,
		&bid.ReputationScore, &bid.BidDuration, &bid.PaymentTerms)

	return bid, err
}

func (r *BidRepo) CreateBid(ctx context.Context, bid *entity.Bid) (int64, error) {
	var bidId int64
	err := r.WithinTx(ctx, func(ctx context.Context) error {
		nextIdReq, args, _ := r.SqlBuilder.
			Update("ledger_state").
			Set("next_bid_id", squirrel.Expr("next_bid_id + ?", 1)).
			Where("id = ?", ledgerStateId).
			Suffix("RETURNING next_bid_id - 1").
			ToSql()

		if err := r.Conn(ctx).QueryRowContext(ctx, nextIdReq, args...).Scan(&bidId); err != nil {
			return fmt.Errorf("allocate bid id: %w", err)
		}

		createBidReq, args, _ := r.SqlBuilder.
			Insert("bid").
			Columns("id", "project_id", "bidder", "bid_hash", "amount", "written_at", "stake_amount", "bid_type",
				"support_docs_hash", "team_size", "experience_level", "reputation_score", "bid_duration", "payment_terms").
			Values(bidId, bid.ProjectId, bid.Bidder, bid.BidHash, bid.Amount, bid.Timestamp, bid.StakeAmount, bid.BidType,
				bid.SupportDocsHash, bid.TeamSize, bid.ExperienceLevel, bid.ReputationScore, bid.BidDuration, bid.PaymentTerms).
			ToSql()

		if _, err := r.Conn(ctx).ExecContext(ctx, createBidReq, args...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return repo_errors.ErrAlreadyExists
			}

			return err
		}

		countReq, args, _ := r.SqlBuilder.
			Insert("project_bid_count").
			Columns("project_id", "bid_count").
			Values(bid.ProjectId, 1).
			Suffix("ON CONFLICT (project_id) DO UPDATE SET bid_count = project_bid_count.bid_count + 1").
			ToSql()

		if _, err := r.Conn(ctx).ExecContext(ctx, countReq, args...); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id int64) (*entity.Bid, error) {
	getBidReq, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("id = ?", id).
		ToSql()

	bid, err := scanBid(r.Conn(ctx).QueryRowContext(ctx, getBidReq, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) GetBidIdByProjectBidder(ctx context.Context, projectId int64, bidder string) (int64, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id").
		From("bid").
		Where("project_id = ?", projectId).
		Where("bidder = ?", bidder).
		ToSql()

	var bidId int64
	err := r.Conn(ctx).QueryRowContext(ctx, sqlReq, args...).Scan(&bidId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repo_errors.ErrNotFound
		}

		return 0, err
	}

	return bidId, nil
}

func (r *BidRepo) GetProjectBidCount(ctx context.Context, projectId int64) (int, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("bid_count").
		From("project_bid_count").
		Where("project_id = ?", projectId).
		ToSql()

	var count int
	err := r.Conn(ctx).QueryRowContext(ctx, sqlReq, args...).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, err
	}

	return count, nil
}

func (r *BidRepo) GetProjectBids(ctx context.Context, projectId int64, pg *entity.PaginationInput) ([]entity.Bid, error) {
	getProjectBidsReq, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("project_id = ?", projectId).
		OrderBy("id ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Conn(ctx).QueryContext(ctx, getProjectBidsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) UpdateBid(ctx context.Context, update *entity.BidUpdate) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		updateBidReq, args, _ := r.SqlBuilder.
			Update("bid").
			Set("bid_hash", update.UpdateHash).
			Set("amount", update.UpdateAmount).
			Set("written_at", update.UpdateTimestamp).
			Where("id = ?", update.BidId).
			ToSql()

		res, err := r.Conn(ctx).ExecContext(ctx, updateBidReq, args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repo_errors.ErrNotFound
		}

		upsertUpdateReq, args, _ := r.SqlBuilder.
			Insert("bid_update").
			Columns("bid_id", "update_hash", "update_amount", "update_timestamp", "updater").
			Values(update.BidId, update.UpdateHash, update.UpdateAmount, update.UpdateTimestamp, update.Updater).
			Suffix("ON CONFLICT (bid_id) DO UPDATE SET " +
				"update_hash = EXCLUDED.update_hash, " +
				"update_amount = EXCLUDED.update_amount, " +
				"update_timestamp = EXCLUDED.update_timestamp, " +
				"updater = EXCLUDED.updater").
			ToSql()

		if _, err = r.Conn(ctx).ExecContext(ctx, upsertUpdateReq, args...); err != nil {
			return err
		}

		return nil
	})
}

func (r *BidRepo) GetBidUpdate(ctx context.Context, bidId int64) (*entity.BidUpdate, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("bid_id", "update_hash", "update_amount", "update_timestamp", "updater").
		From("bid_update").
		Where("bid_id = ?", bidId).
		ToSql()

	var update entity.BidUpdate
	err := r.Conn(ctx).QueryRowContext(ctx, sqlReq, args...).
		Scan(&update.BidId, &update.UpdateHash, &update.UpdateAmount, &update.UpdateTimestamp, &update.Updater)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &update, nil
}
