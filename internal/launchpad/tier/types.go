package tier

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TokenRepository interface {
		StaleTierTokens(ctx context.Context, updatedBefore time.Time, limit int) ([]model.Token, error)
		CountSwapsSince(ctx context.Context, addresses []string, since time.Time) (map[string]int64, error)
		UpdateTokenTiers(ctx context.Context, updates []model.TierUpdate) error
		PromoteToken(ctx context.Context, address string, swapAt time.Time, tier model.Tier, now time.Time) error
		TokensByTier(ctx context.Context, tier model.Tier, limit int) ([]model.Token, error)
	}
)
