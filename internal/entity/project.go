package entity

// Project is owned by the registry; the ledger only reads it.
// Bidding is open in (BiddingStart, BiddingDeadline].
type Project struct {
	Id              int64 `json:"id" db:"id" yaml:"id"`
	BiddingStart    int64 `json:"biddingStart" db:"bidding_start" yaml:"biddingStart"`
	BiddingDeadline int64 `json:"biddingDeadline" db:"bidding_deadline" yaml:"biddingDeadline"`
	MinimumStake    int64 `json:"minimumStake" db:"minimum_stake" yaml:"minimumStake"`
}

// controller model
type ProjectBidsOutputModel struct {
	ProjectId string           `json:"projectId"`
	BidCount  int              `json:"bidCount"`
	Bids      []BidOutputModel `json:"bids"`
}
