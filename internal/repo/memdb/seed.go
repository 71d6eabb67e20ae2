package memdb

import (
	"errors"
	"fmt"
	"io"
	"os"

	"bid-ledger-api/internal/entity"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML document that populates the memory backend:
//
//	projects:
//	  - {id: 1, biddingStart: 0, biddingDeadline: 100, minimumStake: 10}
//	bidders:
//	  - {identity: ST1TEST, verified: true}
//	accounts:
//	  - {owner: ST1TEST, balance: 1000}
type Seed struct {
	Projects []entity.Project `yaml:"projects"`
	Bidders  []SeedBidder     `yaml:"bidders"`
	Accounts []SeedAccount    `yaml:"accounts"`
}

type SeedBidder struct {
	Identity string `yaml:"identity"`
	Verified bool   `yaml:"verified"`
}

type SeedAccount struct {
	Owner   string `yaml:"owner"`
	Balance int64  `yaml:"balance"`
}

func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return DecodeSeed(f)
}

func DecodeSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	return &seed, nil
}

// Apply loads the seed into a registry and an account book.
func (s *Seed) Apply(registry *Registry, accounts *Accounts) error {
	for _, project := range s.Projects {
		if err := registry.PutProject(project); err != nil {
			return err
		}
	}
	for _, bidder := range s.Bidders {
		if bidder.Identity == "" {
			return errors.New("seed bidder without identity")
		}
		registry.SetVerified(bidder.Identity, bidder.Verified)
	}
	for _, account := range s.Accounts {
		if account.Balance < 0 {
			return fmt.Errorf("account %s: negative balance", account.Owner)
		}
		accounts.Deposit(account.Owner, account.Balance)
	}

	return nil
}
