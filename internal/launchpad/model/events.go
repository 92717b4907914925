package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind names a ledger event family.
type EventKind string

var (
	EventLaunch EventKind = "launch"
	EventSwap   EventKind = "swap"
	EventLock   EventKind = "lock"
	EventUnlock EventKind = "unlock"
	EventBurn   EventKind = "burn"
)

// GlobalEventKinds are emitted by the launchpad contracts rather than by individual pools.
var GlobalEventKinds = []EventKind{EventLaunch, EventLock, EventUnlock, EventBurn}

// EventMeta is the ledger position shared by every decoded event.
type EventMeta struct {
	TxHash      string
	LogIndex    uint
	BlockNumber uint64
	BlockHash   string
	Timestamp   time.Time
}

// LaunchEvent is a decoded TokenLaunched log.
type LaunchEvent struct {
	EventMeta
	TokenAddress string
	PoolAddress  string
	Creator      string
	EthReserve   decimal.Decimal
	TokenReserve decimal.Decimal
}

// UnlockEvent is a decoded Withdrawn log of the locker contract.
type UnlockEvent struct {
	EventMeta
	LockID string
	Owner  string
}
