package ingester

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// carryForward writes an interpolated snapshot at the cursor for quiet tokens whose last
// observation is older than the carry-forward interval, so charts of idle tokens keep
// reaching the present.
func (s *Service) carryForward(ctx context.Context, quiet []model.Token, cursor uint64) (int, error) {
	if len(quiet) == 0 || cursor == 0 {
		return 0, nil
	}
	head, err := s.deps.Source.BlockAt(ctx, cursor)
	if err != nil {
		return 0, fmt.Errorf("cursor block %d: %w", cursor, err)
	}

	var (
		snapshots   []model.PriceSnapshot
		displayRate float64
		rateKnown   bool
	)
	for _, token := range quiet {
		latest, err := s.deps.Tokens.LatestSnapshot(ctx, token.Address)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("latest snapshot of %s: %w", token.Address, err)
		}
		if latest.BlockNumber >= cursor || head.Timestamp.Sub(latest.Timestamp) < s.cfg.CarryForwardInterval {
			continue
		}
		if !rateKnown {
			if displayRate, err = s.deps.Source.RateAt(ctx, cursor); err != nil {
				return 0, fmt.Errorf("display rate at %d: %w", cursor, err)
			}
			rateKnown = true
		}
		snapshots = append(snapshots, model.PriceSnapshot{
			TokenAddress: token.Address,
			PriceNative:  latest.PriceNative,
			EthReserve:   latest.EthReserve,
			TokenReserve: latest.TokenReserve,
			DisplayRate:  displayRate,
			Interpolated: true,
			BlockNumber:  cursor,
			Timestamp:    head.Timestamp,
		})
	}
	if len(snapshots) == 0 {
		return 0, nil
	}

	n, err := s.deps.Events.InsertSnapshots(ctx, snapshots)
	if err != nil {
		return 0, fmt.Errorf("insert carry-forward snapshots: %w", err)
	}
	archiveSnapshots(ctx, s.deps.Archive, snapshots, s.logger)
	s.logger.Debug("carried prices forward", zap.Int("tokens", len(snapshots)), zap.Uint64("block", cursor))
	return int(n), nil
}
