package postgres

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/jackc/pgx/v5"
)

// InsertSwaps stores swaps keyed by transaction hash; replays are absorbed.
func (r *Repository) InsertSwaps(ctx context.Context, swaps []model.SwapEvent) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("insert_swaps", err, start) }()

	const query = `
INSERT INTO swaps (
	tx_hash,
	token_address,
	pool_address,
	trader,
	is_buy,
	amount_in,
	amount_out,
	eth_reserve,
	token_reserve,
	log_index,
	block_number,
	block_hash,
	block_time
) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10, $11, $12, $13)
ON CONFLICT (tx_hash) DO NOTHING`

	batch := &pgx.Batch{}
	for _, s := range swaps {
		batch.Queue(query,
			s.TxHash,
			s.TokenAddress,
			s.PoolAddress,
			s.Trader,
			s.IsBuy,
			s.AmountIn.String(),
			s.AmountOut.String(),
			s.EthReserve.String(),
			s.TokenReserve.String(),
			s.LogIndex,
			s.BlockNumber,
			s.BlockHash,
			s.Timestamp,
		)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}

func (r *Repository) InsertLocks(ctx context.Context, locks []model.LockRecord) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("insert_locks", err, start) }()

	const query = `
INSERT INTO locks (
	lock_id,
	owner,
	token_address,
	amount,
	duration_seconds,
	locked_at,
	unlock_at,
	lock_tx_hash,
	block_number
) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)
ON CONFLICT (lock_id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, l := range locks {
		batch.Queue(query,
			l.LockID,
			l.Owner,
			l.TokenAddress,
			l.Amount.String(),
			int64(l.Duration/time.Second),
			l.LockedAt,
			l.UnlockAt,
			l.LockTxHash,
			l.BlockNumber,
		)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}

// MarkLocksWithdrawn flips active locks to withdrawn. A lock is withdrawn at most once;
// repeated unlock events leave the first withdrawal in place.
func (r *Repository) MarkLocksWithdrawn(ctx context.Context, unlocks []model.UnlockEvent) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("mark_locks_withdrawn", err, start) }()

	const query = `
UPDATE locks
SET withdrawn = TRUE, withdraw_tx_hash = $2, withdraw_block = $3
WHERE lock_id = $1 AND NOT withdrawn`

	batch := &pgx.Batch{}
	for _, u := range unlocks {
		batch.Queue(query, u.LockID, u.TxHash, u.BlockNumber)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}

func (r *Repository) InsertBurns(ctx context.Context, burns []model.BurnEvent) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("insert_burns", err, start) }()

	const query = `
INSERT INTO burns (
	tx_hash,
	token_address,
	from_address,
	amount,
	log_index,
	block_number,
	block_hash,
	block_time
) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
ON CONFLICT (tx_hash) DO NOTHING`

	batch := &pgx.Batch{}
	for _, b := range burns {
		batch.Queue(query,
			b.TxHash,
			b.TokenAddress,
			b.From,
			b.Amount.String(),
			b.LogIndex,
			b.BlockNumber,
			b.BlockHash,
			b.Timestamp,
		)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}
