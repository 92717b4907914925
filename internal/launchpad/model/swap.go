package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SwapEvent is a single trade against a token pool. TxHash is unique.
type SwapEvent struct {
	TokenAddress string
	PoolAddress  string
	Trader       string
	IsBuy        bool
	AmountIn     decimal.Decimal
	AmountOut    decimal.Decimal
	EthReserve   decimal.Decimal
	TokenReserve decimal.Decimal
	TxHash       string
	LogIndex     uint
	BlockNumber  uint64
	BlockHash    string
	Timestamp    time.Time
}

// BurnEvent records tokens removed from supply. TxHash is unique.
type BurnEvent struct {
	TokenAddress string
	From         string
	Amount       decimal.Decimal
	TxHash       string
	LogIndex     uint
	BlockNumber  uint64
	BlockHash    string
	Timestamp    time.Time
}
