// Package tier classifies tokens by trading activity.
package tier

import (
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

const (
	hotWindow  = time.Hour
	warmWindow = 24 * time.Hour
	coldWindow = 7 * 24 * time.Hour
)

// Classify maps the time of the last swap to an activity tier. A token that never
// traded is dormant.
func Classify(lastSwapAt *time.Time, now time.Time) model.Tier {
	if lastSwapAt == nil {
		return model.TierDormant
	}
	age := now.Sub(*lastSwapAt)
	switch {
	case age < hotWindow:
		return model.TierHot
	case age < warmWindow:
		return model.TierWarm
	case age < coldWindow:
		return model.TierCold
	default:
		return model.TierDormant
	}
}
