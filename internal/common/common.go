package common

// bid types
const (
	Fixed     = "fixed"
	Hourly    = "hourly"
	Milestone = "milestone"
)

const (
	DefaultMaxBidsPerProject = 100
	DefaultHoldingAccount    = "contract"

	DigestLength         = 64
	MaxPaymentTermsRunes = 100
)
