package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot is a point-in-time price observation; (TokenAddress, BlockNumber) is unique.
type PriceSnapshot struct {
	TokenAddress string
	PriceNative  float64
	EthReserve   decimal.Decimal
	TokenReserve decimal.Decimal
	DisplayRate  float64
	Interpolated bool
	BlockNumber  uint64
	Timestamp    time.Time
}

// DisplayPrice converts the native price with the rate recorded at observation time.
func (s PriceSnapshot) DisplayPrice() float64 {
	return s.PriceNative * s.DisplayRate
}

// SnapshotFromSwap derives the post-trade price observation of a swap.
func SnapshotFromSwap(sw SwapEvent, displayRate float64) (PriceSnapshot, error) {
	price, err := PriceFromReserves(sw.EthReserve, sw.TokenReserve)
	if err != nil {
		return PriceSnapshot{}, err
	}
	return PriceSnapshot{
		TokenAddress: sw.TokenAddress,
		PriceNative:  price,
		EthReserve:   sw.EthReserve,
		TokenReserve: sw.TokenReserve,
		DisplayRate:  displayRate,
		BlockNumber:  sw.BlockNumber,
		Timestamp:    sw.Timestamp,
	}, nil
}
