package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// InsertSnapshots appends snapshot rows. Duplicates collapse on merge because the table
// is a ReplacingMergeTree keyed by token and block; observed rows carry a higher version
// than interpolated ones.
func (r *Repository) InsertSnapshots(ctx context.Context, snapshots []model.PriceSnapshot) error {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("insert_snapshots", err, start) }()

	if len(snapshots) == 0 {
		return nil
	}

	const query = `
INSERT INTO launchpad_price_snapshots (
	token_address,
	block_number,
	block_time,
	price_native,
	display_rate,
	display_price,
	eth_reserve,
	token_reserve,
	interpolated,
	version
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare snapshots batch: %w", err)
	}

	for _, s := range snapshots {
		if err = batch.Append(
			s.TokenAddress,
			s.BlockNumber,
			s.Timestamp,
			s.PriceNative,
			s.DisplayRate,
			s.DisplayPrice(),
			s.EthReserve.String(),
			s.TokenReserve.String(),
			s.Interpolated,
			snapshotVersion(s),
		); err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert snapshots: %w", err)
	}
	return nil
}

func snapshotVersion(s model.PriceSnapshot) uint8 {
	if s.Interpolated {
		return 0
	}
	return 1
}
