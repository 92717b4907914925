package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LockRecord is a time-locked token deposit. It moves from active to withdrawn exactly once.
type LockRecord struct {
	LockID         string
	Owner          string
	TokenAddress   string
	Amount         decimal.Decimal
	Duration       time.Duration
	LockedAt       time.Time
	UnlockAt       time.Time
	Withdrawn      bool
	LockTxHash     string
	WithdrawTxHash string
	WithdrawBlock  uint64
	BlockNumber    uint64
}
