package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// OnRollback deletes archived snapshots at or above fromBlock after a reorg.
func (r *Repository) OnRollback(ctx context.Context, fromBlock uint64) error {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("rollback", err, start) }()

	if err = r.conn.Exec(ctx, `DELETE FROM launchpad_price_snapshots WHERE block_number >= ?`, fromBlock); err != nil {
		return fmt.Errorf("delete archived snapshots from %d: %w", fromBlock, err)
	}
	return nil
}
