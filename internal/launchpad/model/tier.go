// Package model defines domain models for launchpad event ingestion.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Tier is the activity class of a token; it decides how often the token is re-checked.
type Tier string

var (
	TierHot     Tier = "hot"
	TierWarm    Tier = "warm"
	TierCold    Tier = "cold"
	TierDormant Tier = "dormant"
)

// Tiers lists every tier from the most to the least active.
var Tiers = []Tier{TierHot, TierWarm, TierCold, TierDormant}

// ErrUnknownTier is returned for tier names outside Tiers.
var ErrUnknownTier = errors.New("unknown tier")

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTier, s)
}

// UnmarshalFlag lets go-flags parse tier values.
func (t *Tier) UnmarshalFlag(value string) error {
	parsed, err := ParseTier(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TierUpdate is the outcome of a tier recompute for one token.
type TierUpdate struct {
	Address      string
	Tier         Tier
	SwapCount24h int64
	UpdatedAt    time.Time
}
