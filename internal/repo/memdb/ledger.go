package memdb

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo/repo_errors"
)

// LedgerStore keeps bids in maps keyed by bid id and by "<projectId>-<bidder>".
type LedgerStore struct {
	mu         sync.RWMutex
	nextBidId  int64
	bids       map[int64]entity.Bid
	index      map[string]int64
	bidCounts  map[int64]int
	bidUpdates map[int64]entity.BidUpdate
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		bids:       make(map[int64]entity.Bid),
		index:      make(map[string]int64),
		bidCounts:  make(map[int64]int),
		bidUpdates: make(map[int64]entity.BidUpdate),
	}
}

func indexKey(projectId int64, bidder string) string {
	return strconv.FormatInt(projectId, 10) + "-" + bidder
}

func (s *LedgerStore) CreateBid(_ context.Context, bid *entity.Bid) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := indexKey(bid.ProjectId, bid.Bidder)
	if _, ok := s.index[key]; ok {
		return 0, repo_errors.ErrAlreadyExists
	}

	bidId := s.nextBidId
	stored := *bid
	stored.Id = bidId

	s.bids[bidId] = stored
	s.index[key] = bidId
	s.bidCounts[bid.ProjectId]++
	s.nextBidId++

	return bidId, nil
}

func (s *LedgerStore) GetBidById(_ context.Context, id int64) (*entity.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bid, ok := s.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &bid, nil
}

func (s *LedgerStore) GetBidIdByProjectBidder(_ context.Context, projectId int64, bidder string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bidId, ok := s.index[indexKey(projectId, bidder)]
	if !ok {
		return 0, repo_errors.ErrNotFound
	}

	return bidId, nil
}

func (s *LedgerStore) GetProjectBidCount(_ context.Context, projectId int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bidCounts[projectId], nil
}

func (s *LedgerStore) GetProjectBids(_ context.Context, projectId int64, pg *entity.PaginationInput) ([]entity.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range s.bids {
		if bid.ProjectId == projectId {
			bids = append(bids, bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].Id < bids[j].Id })

	if pg.Offset >= len(bids) {
		return make([]entity.Bid, 0), nil
	}
	end := min(pg.Offset+pg.Limit, len(bids))

	return bids[pg.Offset:end], nil
}

func (s *LedgerStore) UpdateBid(_ context.Context, update *entity.BidUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bid, ok := s.bids[update.BidId]
	if !ok {
		return repo_errors.ErrNotFound
	}

	bid.BidHash = update.UpdateHash
	bid.Amount = update.UpdateAmount
	bid.Timestamp = update.UpdateTimestamp
	s.bids[update.BidId] = bid
	s.bidUpdates[update.BidId] = *update

	return nil
}

func (s *LedgerStore) GetBidUpdate(_ context.Context, bidId int64) (*entity.BidUpdate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	update, ok := s.bidUpdates[bidId]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &update, nil
}
