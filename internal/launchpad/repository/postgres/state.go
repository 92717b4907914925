package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) IndexerState(ctx context.Context, partition string) (*model.IndexerState, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("indexer_state", err, start) }()

	var s model.IndexerState
	err = r.pool.QueryRow(ctx, `
SELECT partition, last_block, last_hash, confirmation_depth, updated_at
FROM indexer_state
WHERE partition = $1`, partition).Scan(&s.Partition, &s.LastBlock, &s.LastHash, &s.ConfirmationDepth, &s.UpdatedAt)
	if isNoRows(err) {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select indexer state: %w", err)
	}
	return &s, nil
}

// InitIndexerState creates the cursor and its first checkpoint. It reports false when
// another process created the cursor first.
func (r *Repository) InitIndexerState(ctx context.Context, state model.IndexerState) (bool, error) {
	start := time.Now()
	var (
		created bool
		err     error
	)
	defer func() { r.metrics.Observe("init_indexer_state", err, start) }()

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
INSERT INTO indexer_state (partition, last_block, last_hash, confirmation_depth, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (partition) DO NOTHING`, state.Partition, state.LastBlock, state.LastHash, state.ConfirmationDepth, state.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert indexer state: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		created = true
		return insertCheckpoint(ctx, tx, state)
	})
	return created, err
}

// AdvanceCursor moves the cursor only if it still points at expectedLastBlock, and
// records the new position as a checkpoint.
func (r *Repository) AdvanceCursor(ctx context.Context, expectedLastBlock uint64, state model.IndexerState) (bool, error) {
	start := time.Now()
	var (
		moved bool
		err   error
	)
	defer func() { r.metrics.Observe("advance_cursor", err, start) }()

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE indexer_state
SET last_block = $3, last_hash = $4, confirmation_depth = $5, updated_at = $6
WHERE partition = $1 AND last_block = $2`,
			state.Partition, expectedLastBlock, state.LastBlock, state.LastHash, state.ConfirmationDepth, state.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update indexer state: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		moved = true
		return insertCheckpoint(ctx, tx, state)
	})
	return moved, err
}

func insertCheckpoint(ctx context.Context, exec executor, state model.IndexerState) error {
	_, err := exec.Exec(ctx, `
INSERT INTO indexer_checkpoints (partition, block_number, block_hash)
VALUES ($1, $2, $3)
ON CONFLICT (partition, block_number) DO UPDATE SET block_hash = EXCLUDED.block_hash`,
		state.Partition, state.LastBlock, state.LastHash)
	if err != nil {
		return fmt.Errorf("insert checkpoint: %w", err)
	}
	return nil
}

// Checkpoints returns up to limit checkpoints at or below a block, newest first.
func (r *Repository) Checkpoints(ctx context.Context, partition string, atOrBelow uint64, limit int) ([]model.Checkpoint, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("checkpoints", err, start) }()

	rows, err := r.pool.Query(ctx, `
SELECT partition, block_number, block_hash
FROM indexer_checkpoints
WHERE partition = $1 AND block_number <= $2
ORDER BY block_number DESC
LIMIT $3`, partition, atOrBelow, limit)
	if err != nil {
		return nil, fmt.Errorf("select checkpoints: %w", err)
	}
	defer rows.Close()

	var out []model.Checkpoint
	for rows.Next() {
		var cp model.Checkpoint
		if err = rows.Scan(&cp.Partition, &cp.BlockNumber, &cp.BlockHash); err != nil {
			return nil, fmt.Errorf("scan checkpoint: %w", err)
		}
		out = append(out, cp)
	}
	err = rows.Err()
	return out, err
}

// Rollback removes every row derived from blocks above the agreement point and resets
// the cursor to it, all in one transaction. Re-running it is a no-op.
func (r *Repository) Rollback(ctx context.Context, partition string, agreement model.Checkpoint) (model.RollbackStats, error) {
	start := time.Now()
	var (
		stats model.RollbackStats
		err   error
	)
	defer func() { r.metrics.Observe("rollback", err, start) }()

	above := agreement.BlockNumber
	steps := []struct {
		name  string
		query string
		count *int64
	}{
		{"snapshots", `DELETE FROM price_snapshots WHERE block_number > $1`, &stats.Snapshots},
		{"swaps", `DELETE FROM swaps WHERE block_number > $1`, &stats.Swaps},
		{"burns", `DELETE FROM burns WHERE block_number > $1`, &stats.Burns},
		{"withdrawals", `
UPDATE locks SET withdrawn = FALSE, withdraw_tx_hash = NULL, withdraw_block = NULL
WHERE withdraw_block > $1`, &stats.Withdrawals},
		{"locks", `DELETE FROM locks WHERE block_number > $1`, &stats.Locks},
		{"tokens", `DELETE FROM tokens WHERE created_block > $1`, &stats.Tokens},
		{"bad ranges", `DELETE FROM bad_ranges WHERE from_block > $1`, &stats.BadRanges},
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
SELECT 1 FROM indexer_state WHERE partition = $1 FOR UPDATE`, partition); err != nil {
			return fmt.Errorf("lock indexer state: %w", err)
		}
		for _, step := range steps {
			tag, err := tx.Exec(ctx, step.query, above)
			if err != nil {
				return fmt.Errorf("rollback %s: %w", step.name, err)
			}
			*step.count = tag.RowsAffected()
		}
		if _, err := tx.Exec(ctx, `
UPDATE tokens t
SET last_checked_block = $1,
	last_swap_at = (SELECT max(s.block_time) FROM swaps s WHERE s.token_address = t.address)
WHERE t.last_checked_block > $1`, above); err != nil {
			return fmt.Errorf("rewind token checkpoints: %w", err)
		}
		tag, err := tx.Exec(ctx, `
DELETE FROM indexer_checkpoints WHERE partition = $1 AND block_number > $2`, partition, above)
		if err != nil {
			return fmt.Errorf("rollback checkpoints: %w", err)
		}
		stats.Checkpoints = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `
UPDATE indexer_state SET last_block = $2, last_hash = $3, updated_at = $4
WHERE partition = $1`, partition, agreement.BlockNumber, agreement.BlockHash, r.now()); err != nil {
			return fmt.Errorf("reset cursor: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.RollbackStats{}, err
	}
	return stats, nil
}
