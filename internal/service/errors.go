package service

// Error is a ledger error kind. Code is stable and shared with API clients.
type Error struct {
	Code    uint32
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code uint32, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrNotAuthorized          = newError(100, "caller is not authorized")
	ErrInvalidProject         = newError(101, "invalid project")
	ErrBiddingClosed          = newError(102, "bidding is closed")
	ErrInvalidHash            = newError(103, "bid hash must be 64 hex characters")
	ErrInsufficientStake      = newError(104, "stake is below the project minimum")
	ErrInvalidAmount          = newError(105, "amount must be positive")
	ErrBidAlreadyExists       = newError(106, "bidder already has a bid on this project")
	ErrInvalidTimestamp       = newError(107, "invalid timestamp")
	ErrProjectNotFound        = newError(108, "project not found")
	ErrBidderNotRegistered    = newError(109, "bidder not registered")
	ErrStakeTransferFailed    = newError(110, "stake transfer failed")
	ErrInvalidStakeAmount     = newError(111, "invalid stake amount")
	ErrBiddingNotStarted      = newError(112, "bidding has not started")
	ErrMaxBidsExceeded        = newError(113, "project reached the maximum number of bids")
	ErrInvalidBidType         = newError(114, "bid type must be fixed, hourly or milestone")
	ErrInvalidSupportDocs     = newError(115, "support docs hash must be 64 hex characters")
	ErrInvalidTeamSize        = newError(116, "team size must be between 1 and 100")
	ErrInvalidExperienceLevel = newError(117, "experience level must be between 1 and 10")
	ErrInvalidReputationScore = newError(118, "reputation score must be between 0 and 100")
	ErrInvalidBidDuration     = newError(119, "bid duration must be positive")
	ErrInvalidPaymentTerms    = newError(120, "payment terms must be 1 to 100 characters")
	ErrUpdateNotAllowed       = newError(121, "bid can no longer be updated")
	ErrInvalidUpdateHash      = newError(122, "update hash must be 64 hex characters")
	ErrAuthorityNotVerified   = newError(123, "caller is not the ledger authority")
	ErrInvalidBidId           = newError(124, "invalid bid id")
	ErrBidNotFound            = newError(125, "bid not found")
)
