package entity

// db model
type Bid struct {
	Id              int64  `json:"id" db:"id"`
	ProjectId       int64  `json:"projectId" db:"project_id"`
	Bidder          string `json:"bidder" db:"bidder"`
	BidHash         string `json:"bidHash" db:"bid_hash"`
	Amount          int64  `json:"amount" db:"amount"`
	Timestamp       int64  `json:"timestamp" db:"written_at"`
	StakeAmount     int64  `json:"stakeAmount" db:"stake_amount"`
	BidType         string `json:"bidType" db:"bid_type"`
	SupportDocsHash string `json:"supportDocsHash" db:"support_docs_hash"`
	TeamSize        int    `json:"teamSize" db:"team_size"`
	ExperienceLevel int    `json:"experienceLevel" db:"experience_level"`
	ReputationScore int    `json:"reputationScore" db:"reputation_score"`
	BidDuration     int64  `json:"bidDuration" db:"bid_duration"`
	PaymentTerms    string `json:"paymentTerms" db:"payment_terms"`
}

// Most recent amendment of a bid. Overwritten on every update.
type BidUpdate struct {
	BidId           int64  `json:"bidId" db:"bid_id"`
	UpdateHash      string `json:"updateHash" db:"update_hash"`
	UpdateAmount    int64  `json:"updateAmount" db:"update_amount"`
	UpdateTimestamp int64  `json:"updateTimestamp" db:"update_timestamp"`
	Updater         string `json:"updater" db:"updater"`
}

// service input model
type SubmitBidInput struct {
	ProjectId       int64
	BidHash         string
	Amount          int64
	StakeAmount     int64
	BidType         string
	SupportDocsHash string
	TeamSize        int
	ExperienceLevel int
	ReputationScore int
	BidDuration     int64
	PaymentTerms    string
	Caller          string // given by transport
	CurrentTime     int64  // given by transport clock
}

// service input model
type UpdateBidInput struct {
	BidId        int64
	UpdateHash   string
	UpdateAmount int64
	Caller       string
	CurrentTime  int64
}

// controller model
type BidOutputModel struct {
	Id              string `json:"id"`
	ProjectId       string `json:"projectId"`
	Bidder          string `json:"bidder"`
	BidHash         string `json:"bidHash"`
	Amount          int64  `json:"amount"`
	Timestamp       int64  `json:"timestamp"`
	StakeAmount     int64  `json:"stakeAmount"`
	BidType         string `json:"bidType"`
	SupportDocsHash string `json:"supportDocsHash"`
	TeamSize        int    `json:"teamSize"`
	ExperienceLevel int    `json:"experienceLevel"`
	ReputationScore int    `json:"reputationScore"`
	BidDuration     int64  `json:"bidDuration"`
	PaymentTerms    string `json:"paymentTerms"`
}

// controller model
type BidUpdateOutputModel struct {
	BidId           string `json:"bidId"`
	UpdateHash      string `json:"updateHash"`
	UpdateAmount    int64  `json:"updateAmount"`
	UpdateTimestamp int64  `json:"updateTimestamp"`
	Updater         string `json:"updater"`
}
