package service

import (
	"context"
	"errors"
	"testing"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo"
	"bid-ledger-api/internal/repo/memdb"
	"bid-ledger-api/internal/repo/mocks"
	"bid-ledger-api/internal/repo/repo_errors"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Bid Service Collaborator Test Suite
// =============================================================================
// Registry and transfer gateway are mocked to pin down which collaborator
// calls a submission makes and what happens when they fail.

type BidServiceCollaboratorSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	mockRegistry *mocks.MockRegistry
	mockTransfer *mocks.MockTransfer
	ledger       *memdb.LedgerStore
	service      *BidService
}

func TestBidServiceCollaboratorSuite(t *testing.T) {
	suite.Run(t, new(BidServiceCollaboratorSuite))
}

func (s *BidServiceCollaboratorSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRegistry = mocks.NewMockRegistry(s.ctrl)
	s.mockTransfer = mocks.NewMockTransfer(s.ctrl)
	s.ledger = memdb.NewLedgerStore()
	s.service = NewBidService(&repo.Repositories{
		Diagnostics: memdb.NewDiagnostics(),
		Registry:    s.mockRegistry,
		Transfer:    s.mockTransfer,
		Transactor:  memdb.NewTransactor(),
		Bid:         s.ledger,
	}, WithHoldingAccount("escrow"))
}

func (s *BidServiceCollaboratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BidServiceCollaboratorSuite) expectOpenProject() {
	s.mockRegistry.EXPECT().
		GetProjectById(gomock.Any(), testProjectId).
		Return(&entity.Project{Id: testProjectId, BiddingStart: 0, BiddingDeadline: 100, MinimumStake: 10}, nil).
		AnyTimes()
}

func (s *BidServiceCollaboratorSuite) TestSubmitBid() {
	s.Run("transfers the stake to the holding account", func() {
		s.expectOpenProject()
		s.mockRegistry.EXPECT().IsVerifiedBidder(gomock.Any(), testBidder).Return(true, nil)
		s.mockTransfer.EXPECT().Transfer(gomock.Any(), int64(10), testBidder, "escrow").Return(nil)

		bidId, err := s.service.SubmitBid(s.ctx, validSubmission(testBidder, 50))
		s.Require().NoError(err)
		s.Equal(int64(0), bidId)
	})

	s.Run("rejected transfer leaves the ledger untouched", func() {
		s.expectOpenProject()
		s.mockRegistry.EXPECT().IsVerifiedBidder(gomock.Any(), otherBidder).Return(true, nil)
		s.mockTransfer.EXPECT().
			Transfer(gomock.Any(), int64(10), otherBidder, "escrow").
			Return(repo_errors.ErrInsufficientFunds)

		_, err := s.service.SubmitBid(s.ctx, validSubmission(otherBidder, 50))
		s.ErrorIs(err, ErrStakeTransferFailed)
		s.ErrorContains(err, repo_errors.ErrInsufficientFunds.Error())

		_, err = s.ledger.GetBidIdByProjectBidder(s.ctx, testProjectId, otherBidder)
		s.ErrorIs(err, repo_errors.ErrNotFound)
		count, err := s.ledger.GetProjectBidCount(s.ctx, testProjectId)
		s.Require().NoError(err)
		s.Equal(1, count)
	})
}

func (s *BidServiceCollaboratorSuite) TestSubmitBidSkipsTransferOnValidationFailure() {
	s.expectOpenProject()
	s.mockRegistry.EXPECT().IsVerifiedBidder(gomock.Any(), testBidder).Return(true, nil)
	s.mockTransfer.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	input := validSubmission(testBidder, 50)
	input.PaymentTerms = ""
	_, err := s.service.SubmitBid(s.ctx, input)
	s.ErrorIs(err, ErrInvalidPaymentTerms)
}

func (s *BidServiceCollaboratorSuite) TestSubmitBidStopsAtFirstFailure() {
	s.mockRegistry.EXPECT().
		GetProjectById(gomock.Any(), testProjectId).
		Return(&entity.Project{Id: testProjectId, BiddingStart: 60, BiddingDeadline: 100}, nil)
	s.mockRegistry.EXPECT().IsVerifiedBidder(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.SubmitBid(s.ctx, validSubmission(testBidder, 50))
	s.ErrorIs(err, ErrBiddingNotStarted)
}

func (s *BidServiceCollaboratorSuite) TestRegistryFailures() {
	boom := errors.New("registry unavailable")

	s.Run("project lookup failure is not a ledger error", func() {
		s.mockRegistry.EXPECT().GetProjectById(gomock.Any(), testProjectId).Return(nil, boom)

		_, err := s.service.SubmitBid(s.ctx, validSubmission(testBidder, 50))
		s.ErrorIs(err, boom)

		var ledgerErr *Error
		s.False(errors.As(err, &ledgerErr))
	})

	s.Run("verification lookup failure aborts submission", func() {
		s.expectOpenProject()
		s.mockRegistry.EXPECT().IsVerifiedBidder(gomock.Any(), testBidder).Return(false, boom)

		_, err := s.service.SubmitBid(s.ctx, validSubmission(testBidder, 50))
		s.ErrorIs(err, boom)
	})

	s.Run("missing project on listing", func() {
		s.mockRegistry.EXPECT().GetProjectById(gomock.Any(), int64(5)).Return(nil, repo_errors.ErrNotFound)

		_, err := s.service.GetProjectBids(s.ctx, 5, entity.NewPaginationInput(5, 0))
		s.ErrorIs(err, ErrProjectNotFound)
	})
}

func (s *BidServiceCollaboratorSuite) TestUpdateBidProjectGone() {
	bidId, err := s.ledger.CreateBid(s.ctx, &entity.Bid{ProjectId: 3, Bidder: testBidder, Amount: 10})
	s.Require().NoError(err)
	s.mockRegistry.EXPECT().GetProjectById(gomock.Any(), int64(3)).Return(nil, repo_errors.ErrNotFound)

	err = s.service.UpdateBid(s.ctx, validUpdate(bidId, testBidder, 50))
	s.ErrorIs(err, ErrInvalidProject)
}
