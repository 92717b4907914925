package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"go.uber.org/zap"
)

// Backfill re-ingests the full swap history of one token up to the current cursor.
// Rows already stored are absorbed by their natural keys.
func (s *Service) Backfill(ctx context.Context, address string) (Result, error) {
	start := time.Now()
	res := Result{Tokens: 1}
	logger := s.logger.With(zap.String("token", address))
	opts := coordinator.LockOptions{Wait: s.cfg.BackfillWait, RenewEvery: s.cfg.RenewEvery}

	err := s.deps.Locker.WithLock(ctx, coordinator.BackfillKey(address), opts, func(ctx context.Context) error {
		token, err := s.deps.Tokens.TokenByAddress(ctx, address)
		if err != nil {
			return fmt.Errorf("token %s: %w", address, err)
		}
		synced, err := s.deps.Guard.Sync(ctx)
		if err != nil {
			return fmt.Errorf("reorg sync: %w", err)
		}
		res.RolledBack, res.RollbackFrom = synced.RolledBack, synced.RollbackFrom
		res.Cursor = synced.State.LastBlock

		replay := *token
		replay.LastCheckedBlock = 0
		if token.CreatedBlock > 0 {
			replay.LastCheckedBlock = token.CreatedBlock - 1
		}
		n, bad, err := s.swaps.Process(ctx, replay, synced.State.Checkpoint())
		res.Processed, res.Errors = n, bad
		return err
	})
	if err != nil {
		logger.Warn("backfill failed", zap.Error(err), zap.Int("processed", res.Processed))
		return res, err
	}

	logger.Info("backfill finished",
		zap.Int("processed", res.Processed),
		zap.Int("errors", res.Errors),
		zap.Uint64("cursor", res.Cursor),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}
