package clock

import "time"

// Clock supplies the ordinal the ledger compares against bidding windows.
type Clock interface {
	Now() int64
}

// Unix reports wall time in unix seconds.
type Unix struct{}

func (Unix) Now() int64 {
	return time.Now().Unix()
}

// Fixed always reports the same ordinal.
type Fixed int64

func (f Fixed) Now() int64 {
	return int64(f)
}
