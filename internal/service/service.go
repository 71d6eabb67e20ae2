package service

import (
	"context"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type Bid interface {
	SubmitBid(ctx context.Context, input *entity.SubmitBidInput) (int64, error)
	UpdateBid(ctx context.Context, input *entity.UpdateBidInput) error

	GetBid(ctx context.Context, bidId int64) (*entity.BidOutputModel, error)
	GetBidUpdate(ctx context.Context, bidId int64) (*entity.BidUpdateOutputModel, error)
	GetBidIdByProjectBidder(ctx context.Context, projectId int64, bidder string) (int64, error)
	GetProjectBids(ctx context.Context, projectId int64, pg *entity.PaginationInput) (*entity.ProjectBidsOutputModel, error)

	MaxBidsPerProject() int
	SetMaxBidsPerProject(ctx context.Context, caller string, value int) error
}

type Services struct {
	Diagnostics Diagnostics
	Bid         Bid
}

func NewServices(repos *repo.Repositories, opts ...Option) *Services {
	return &Services{
		Bid:         NewBidService(repos, opts...),
		Diagnostics: NewDiagnosticsService(repos),
	}
}
