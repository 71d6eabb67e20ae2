package memdb

import (
	"context"
	"sync"

	"bid-ledger-api/internal/repo/repo_errors"
)

// Accounts is an in-memory transfer gateway. Debit and credit happen under one
// lock; a rejected transfer changes nothing.
type Accounts struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewAccounts() *Accounts {
	return &Accounts{balances: make(map[string]int64)}
}

func (a *Accounts) Deposit(owner string, amount int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balances[owner] += amount
}

func (a *Accounts) Balance(owner string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balances[owner]
}

func (a *Accounts) Transfer(_ context.Context, amount int64, from string, to string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount < 0 || a.balances[from] < amount {
		return repo_errors.ErrInsufficientFunds
	}
	a.balances[from] -= amount
	a.balances[to] += amount

	return nil
}
