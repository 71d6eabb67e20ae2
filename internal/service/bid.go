package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"bid-ledger-api/internal/common"
	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo"
	"bid-ledger-api/internal/repo/repo_errors"
	"bid-ledger-api/pkg/logger"
	"bid-ledger-api/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// BidService is the bid ledger. Every write runs inside the repositories'
// Transactor, so checks and the insert they guard are one critical section.
type BidService struct {
	bidRepo    repo.Bid
	registry   repo.Registry
	transfer   repo.Transfer
	transactor repo.Transactor

	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics

	holdingAccount string
	authority      string

	mu                sync.RWMutex
	maxBidsPerProject int
}

type Option func(s *BidService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *BidService) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BidService) {
		s.metrics = m
	}
}

func WithMaxBidsPerProject(n int) Option {
	return func(s *BidService) {
		s.maxBidsPerProject = n
	}
}

// WithHoldingAccount sets the account stakes are transferred to.
func WithHoldingAccount(account string) Option {
	return func(s *BidService) {
		s.holdingAccount = account
	}
}

// WithAuthority sets the identity allowed to change ledger settings.
// Without it nobody can.
func WithAuthority(authority string) Option {
	return func(s *BidService) {
		s.authority = authority
	}
}

func NewBidService(repos *repo.Repositories, opts ...Option) *BidService {
	s := &BidService{
		bidRepo:           repos.Bid,
		registry:          repos.Registry,
		transfer:          repos.Transfer,
		transactor:        repos.Transactor,
		validate:          newFieldValidator(),
		logger:            logger.Discard(),
		holdingAccount:    common.DefaultHoldingAccount,
		maxBidsPerProject: common.DefaultMaxBidsPerProject,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *BidService) MaxBidsPerProject() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxBidsPerProject
}

func (s *BidService) SubmitBid(ctx context.Context, input *entity.SubmitBidInput) (int64, error) {
	var bidId int64
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		project, err := s.registry.GetProjectById(ctx, input.ProjectId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrInvalidProject
			}

			return fmt.Errorf("get project %d: %w", input.ProjectId, err)
		}

		if input.CurrentTime <= project.BiddingStart {
			return ErrBiddingNotStarted
		}
		if input.CurrentTime > project.BiddingDeadline {
			return ErrBiddingClosed
		}

		bidCount, err := s.bidRepo.GetProjectBidCount(ctx, project.Id)
		if err != nil {
			return fmt.Errorf("get bid count of project %d: %w", project.Id, err)
		}
		if bidCount >= s.MaxBidsPerProject() {
			return ErrMaxBidsExceeded
		}

		if err := s.requireVerified(ctx, input.Caller); err != nil {
			return err
		}

		_, err = s.bidRepo.GetBidIdByProjectBidder(ctx, project.Id, input.Caller)
		if err == nil {
			return ErrBidAlreadyExists
		}
		if !errors.Is(err, repo_errors.ErrNotFound) {
			return fmt.Errorf("look up bid index: %w", err)
		}

		if err := firstViolation(s.validate, submissionRules(input, project)); err != nil {
			return err
		}

		if err := s.transfer.Transfer(ctx, input.StakeAmount, input.Caller, s.holdingAccount); err != nil {
			return fmt.Errorf("%w: %v", ErrStakeTransferFailed, err)
		}

		bidId, err = s.bidRepo.CreateBid(ctx, &entity.Bid{
			ProjectId:       project.Id,
			Bidder:          input.Caller,
			BidHash:         input.BidHash,
			Amount:          input.Amount,
			Timestamp:       input.CurrentTime,
			StakeAmount:     input.StakeAmount,
			BidType:         input.BidType,
			SupportDocsHash: input.SupportDocsHash,
			TeamSize:        input.TeamSize,
			ExperienceLevel: input.ExperienceLevel,
			ReputationScore: input.ReputationScore,
			BidDuration:     input.BidDuration,
			PaymentTerms:    input.PaymentTerms,
		})
		if err != nil {
			if errors.Is(err, repo_errors.ErrAlreadyExists) {
				return ErrBidAlreadyExists
			}

			return fmt.Errorf("create bid: %w", err)
		}

		return nil
	})
	if err != nil {
		s.reject(ctx, "submit", err,
			slog.Int64("project_id", input.ProjectId), slog.String("bidder", input.Caller))

		return 0, err
	}

	s.metrics.IncrementBidsSubmitted(input.StakeAmount)
	s.logger.InfoContext(ctx, "bid submitted",
		slog.Int64("bid_id", bidId),
		slog.Int64("project_id", input.ProjectId),
		slog.String("bidder", input.Caller),
		slog.Int64("stake", input.StakeAmount))

	return bidId, nil
}

func (s *BidService) UpdateBid(ctx context.Context, input *entity.UpdateBidInput) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		bid, err := s.bidRepo.GetBidById(ctx, input.BidId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrBidNotFound
			}

			return fmt.Errorf("get bid %d: %w", input.BidId, err)
		}

		project, err := s.registry.GetProjectById(ctx, bid.ProjectId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrInvalidProject
			}

			return fmt.Errorf("get project %d: %w", bid.ProjectId, err)
		}

		if bid.Bidder != input.Caller {
			return ErrNotAuthorized
		}
		if input.CurrentTime > project.BiddingDeadline {
			return ErrUpdateNotAllowed
		}

		if err := firstViolation(s.validate, updateRules(input)); err != nil {
			return err
		}

		if err := s.requireVerified(ctx, input.Caller); err != nil {
			return err
		}

		err = s.bidRepo.UpdateBid(ctx, &entity.BidUpdate{
			BidId:           bid.Id,
			UpdateHash:      input.UpdateHash,
			UpdateAmount:    input.UpdateAmount,
			UpdateTimestamp: input.CurrentTime,
			Updater:         input.Caller,
		})
		if err != nil {
			return fmt.Errorf("update bid %d: %w", bid.Id, err)
		}

		return nil
	})
	if err != nil {
		s.reject(ctx, "update", err,
			slog.Int64("bid_id", input.BidId), slog.String("bidder", input.Caller))

		return err
	}

	s.metrics.IncrementBidsUpdated()
	s.logger.InfoContext(ctx, "bid updated",
		slog.Int64("bid_id", input.BidId),
		slog.String("bidder", input.Caller))

	return nil
}

func (s *BidService) GetBid(ctx context.Context, bidId int64) (*entity.BidOutputModel, error) {
	if bidId < 0 {
		return nil, ErrInvalidBidId
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return mapBid(bid), nil
}

// GetBidUpdate returns the latest amendment. Bids that were never updated have none.
func (s *BidService) GetBidUpdate(ctx context.Context, bidId int64) (*entity.BidUpdateOutputModel, error) {
	if bidId < 0 {
		return nil, ErrInvalidBidId
	}

	update, err := s.bidRepo.GetBidUpdate(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return mapBidUpdate(update), nil
}

func (s *BidService) GetBidIdByProjectBidder(ctx context.Context, projectId int64, bidder string) (int64, error) {
	bidId, err := s.bidRepo.GetBidIdByProjectBidder(ctx, projectId, bidder)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return 0, ErrBidNotFound
		}

		return 0, err
	}

	return bidId, nil
}

func (s *BidService) GetProjectBids(ctx context.Context, projectId int64, pg *entity.PaginationInput) (*entity.ProjectBidsOutputModel, error) {
	if _, err := s.registry.GetProjectById(ctx, projectId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	bidCount, err := s.bidRepo.GetProjectBidCount(ctx, projectId)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetProjectBids(ctx, projectId, pg)
	if err != nil {
		return nil, err
	}

	return &entity.ProjectBidsOutputModel{
		ProjectId: strconv.FormatInt(projectId, 10),
		BidCount:  bidCount,
		Bids:      mapBids(bids),
	}, nil
}

// SetMaxBidsPerProject changes the per-project bound for future submissions.
// Projects already above a lowered bound keep their bids.
func (s *BidService) SetMaxBidsPerProject(ctx context.Context, caller string, value int) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if s.authority == "" || caller != s.authority {
			return ErrAuthorityNotVerified
		}
		if value < 1 {
			return ErrInvalidAmount
		}

		s.mu.Lock()
		s.maxBidsPerProject = value
		s.mu.Unlock()

		return nil
	})
	if err != nil {
		s.reject(ctx, "set_max_bids", err, slog.String("caller", caller))
		return err
	}

	s.logger.InfoContext(ctx, "max bids per project changed",
		slog.Int("value", value), slog.String("caller", caller))

	return nil
}

func (s *BidService) requireVerified(ctx context.Context, bidder string) error {
	verified, err := s.registry.IsVerifiedBidder(ctx, bidder)
	if err != nil {
		return fmt.Errorf("check bidder verification: %w", err)
	}
	if !verified {
		return ErrNotAuthorized
	}

	return nil
}

func (s *BidService) reject(ctx context.Context, operation string, err error, attrs ...any) {
	var ledgerErr *Error
	if !errors.As(err, &ledgerErr) {
		s.metrics.IncrementRejected(operation, "internal")
		s.logger.ErrorContext(ctx, operation+" failed", append(attrs, slog.Any("error", err))...)

		return
	}

	s.metrics.IncrementRejected(operation, strconv.FormatUint(uint64(ledgerErr.Code), 10))
	s.logger.DebugContext(ctx, operation+" rejected",
		append(attrs, slog.Uint64("code", uint64(ledgerErr.Code)), slog.String("reason", err.Error()))...)
}
