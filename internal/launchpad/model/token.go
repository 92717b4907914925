package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Token is a launched token tracked by the indexer.
type Token struct {
	Address           string
	PoolAddress       string
	Creator           string
	CreatedAt         time.Time
	CreatedBlock      uint64
	LaunchPriceNative float64
	LaunchDisplayRate float64
	LastSwapAt        *time.Time
	SwapCount24h      int64
	Tier              Tier
	TierUpdatedAt     time.Time
	LastCheckedBlock  uint64
}

// LastActivityAt is the later of the last swap and the launch; a launch counts as
// activity so a fresh token is polled at the hot cadence. It is nil when neither is known.
func (t Token) LastActivityAt() *time.Time {
	if t.LastSwapAt != nil && !t.LastSwapAt.Before(t.CreatedAt) {
		return t.LastSwapAt
	}
	if t.CreatedAt.IsZero() {
		return nil
	}
	created := t.CreatedAt
	return &created
}

// LaunchDisplayPrice is the launch price expressed in the display currency at creation time.
func (t Token) LaunchDisplayPrice() float64 {
	return t.LaunchPriceNative * t.LaunchDisplayRate
}

// NewToken builds a Token from its launch event. The launch price is derived from the
// initial reserves and pinned together with the display rate observed at the launch block.
func NewToken(ev LaunchEvent, displayRate float64) (Token, error) {
	price, err := PriceFromReserves(ev.EthReserve, ev.TokenReserve)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Address:           ev.TokenAddress,
		PoolAddress:       ev.PoolAddress,
		Creator:           ev.Creator,
		CreatedAt:         ev.Timestamp,
		CreatedBlock:      ev.BlockNumber,
		LaunchPriceNative: price,
		LaunchDisplayRate: displayRate,
		Tier:              TierHot,
		TierUpdatedAt:     ev.Timestamp,
		LastCheckedBlock:  ev.BlockNumber,
	}, nil
}

// ErrEmptyReserve is returned when a price is requested from an empty token reserve.
var ErrEmptyReserve = errors.New("token reserve is zero")

// PriceFromReserves returns ethReserve / tokenReserve in native units.
func PriceFromReserves(ethReserve, tokenReserve decimal.Decimal) (float64, error) {
	if tokenReserve.Sign() <= 0 {
		return 0, ErrEmptyReserve
	}
	price, _ := ethReserve.Div(tokenReserve).Float64()
	return price, nil
}
