package ingester

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ledger"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

func isMalformed(err error) bool {
	return errors.Is(err, ledger.ErrMalformedLog)
}

// archiveSnapshots hands persisted snapshots to the optional archive. Archive failures
// never fail ingestion.
func archiveSnapshots(ctx context.Context, archive SnapshotArchive, snapshots []model.PriceSnapshot, logger *zap.Logger) {
	if archive == nil {
		return
	}
	for _, s := range snapshots {
		if err := archive.Add(ctx, s); err != nil {
			logger.Warn("archive snapshot failed", zap.String("token", s.TokenAddress), zap.Uint64("block", s.BlockNumber), zap.Error(err))
			return
		}
	}
}
