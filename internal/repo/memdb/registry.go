package memdb

import (
	"context"
	"fmt"
	"sync"

	"bid-ledger-api/internal/entity"
	"bid-ledger-api/internal/repo/repo_errors"
)

// Registry is an in-process stand-in for the project and bidder registries.
type Registry struct {
	mu       sync.RWMutex
	projects map[int64]entity.Project
	verified map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		projects: make(map[int64]entity.Project),
		verified: make(map[string]bool),
	}
}

func (r *Registry) PutProject(project entity.Project) error {
	if project.BiddingStart >= project.BiddingDeadline {
		return fmt.Errorf("project %d: bidding start %d must be before deadline %d",
			project.Id, project.BiddingStart, project.BiddingDeadline)
	}
	if project.MinimumStake < 0 {
		return fmt.Errorf("project %d: minimum stake must not be negative", project.Id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.Id] = project

	return nil
}

func (r *Registry) SetVerified(bidder string, verified bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verified[bidder] = verified
}

func (r *Registry) GetProjectById(_ context.Context, id int64) (*entity.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &project, nil
}

func (r *Registry) IsVerifiedBidder(_ context.Context, bidder string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.verified[bidder], nil
}
