package repo

//go:generate mockgen -source=repo.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo/memdb"
	"bid-ledger-api/internal/repo/pgdb"
	"bid-ledger-api/pkg/postgres"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

// Registry is the read side of the external project and bidder registries.
type Registry interface {
	GetProjectById(ctx context.Context, id int64) (*entity.Project, error)
	IsVerifiedBidder(ctx context.Context, bidder string) (bool, error)
}

// Transfer moves stake between accounts. A failed transfer has no visible effect.
type Transfer interface {
	Transfer(ctx context.Context, amount int64, from string, to string) error
}

// Transactor scopes ledger writes. Everything fn does through the repositories
// with the given ctx becomes visible at once or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Bid interface {
	// CreateBid assigns the next bid id, records the (project, bidder) index entry
	// and increments the project bid count.
	CreateBid(ctx context.Context, bid *entity.Bid) (int64, error)
	GetBidById(ctx context.Context, id int64) (*entity.Bid, error)
	GetBidIdByProjectBidder(ctx context.Context, projectId int64, bidder string) (int64, error)
	GetProjectBidCount(ctx context.Context, projectId int64) (int, error)
	GetProjectBids(ctx context.Context, projectId int64, pg *entity.PaginationInput) ([]entity.Bid, error)
	// UpdateBid overwrites hash, amount and timestamp of the bid and replaces its update record.
	UpdateBid(ctx context.Context, update *entity.BidUpdate) error
	GetBidUpdate(ctx context.Context, bidId int64) (*entity.BidUpdate, error)
}

type Repositories struct {
	Diagnostics
	Registry
	Transfer
	Transactor
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Registry:    pgdb.NewRegistryRepo(p),
		Transfer:    pgdb.NewTransferRepo(p),
		Transactor:  pgdb.NewTransactorRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}

func NewInMemoryRepositories(registry *memdb.Registry, accounts *memdb.Accounts) *Repositories {
	return &Repositories{
		Diagnostics: memdb.NewDiagnostics(),
		Registry:    registry,
		Transfer:    accounts,
		Transactor:  memdb.NewTransactor(),
		Bid:         memdb.NewLedgerStore(),
	}
}
