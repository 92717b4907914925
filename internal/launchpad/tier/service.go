package tier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

const (
	staleAfter       = 5 * time.Minute
	recomputePage    = 500
	maxRecomputePage = 100
)

// Service keeps token tiers current and serves per-tier work batches.
type Service struct {
	repo   TokenRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a tier Service.
func NewService(repo TokenRepository, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("token repository is required")
	}
	return &Service{
		repo:   repo,
		logger: logger.Named("tier"),
		now:    time.Now,
	}, nil
}

// Recompute refreshes the 24h swap count and tier of every token whose tier is older
// than five minutes.
func (s *Service) Recompute(ctx context.Context) (int, error) {
	now := s.now()
	total := 0
	for page := 0; page < maxRecomputePage; page++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		tokens, err := s.repo.StaleTierTokens(ctx, now.Add(-staleAfter), recomputePage)
		if err != nil {
			return total, fmt.Errorf("load stale tokens: %w", err)
		}
		if len(tokens) == 0 {
			break
		}

		addresses := make([]string, 0, len(tokens))
		for _, t := range tokens {
			addresses = append(addresses, t.Address)
		}
		counts, err := s.repo.CountSwapsSince(ctx, addresses, now.Add(-24*time.Hour))
		if err != nil {
			return total, fmt.Errorf("count swaps: %w", err)
		}

		updates := make([]model.TierUpdate, 0, len(tokens))
		for _, t := range tokens {
			updates = append(updates, model.TierUpdate{
				Address:      t.Address,
				Tier:         Classify(t.LastActivityAt(), now),
				SwapCount24h: counts[t.Address],
				UpdatedAt:    now,
			})
		}
		if err := s.repo.UpdateTokenTiers(ctx, updates); err != nil {
			return total, fmt.Errorf("update tiers: %w", err)
		}
		total += len(updates)
		if len(tokens) < recomputePage {
			break
		}
	}

	if total > 0 {
		s.logger.Debug("tiers recomputed", zap.Int("tokens", total))
	}
	return total, nil
}

// Promote records a swap and reclassifies the token at once, so a fresh swap makes the
// token hot without waiting for the next recompute.
func (s *Service) Promote(ctx context.Context, address string, swapAt time.Time) error {
	now := s.now()
	tier := Classify(&swapAt, now)
	if err := s.repo.PromoteToken(ctx, address, swapAt, tier, now); err != nil {
		return fmt.Errorf("promote %s: %w", address, err)
	}
	return nil
}

// Batch returns up to limit tokens of the tier, most active first and, within equal
// activity, least recently checked first.
func (s *Service) Batch(ctx context.Context, tier model.Tier, limit int) ([]model.Token, error) {
	tokens, err := s.repo.TokensByTier(ctx, tier, limit)
	if err != nil {
		return nil, fmt.Errorf("tokens by tier %s: %w", tier, err)
	}
	return tokens, nil
}
