package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/jackc/pgx/v5"
)

const tokenColumns = `
	address,
	pool_address,
	creator,
	created_at,
	created_block,
	launch_price_native,
	launch_display_rate,
	last_swap_at,
	swap_count_24h,
	tier,
	tier_updated_at,
	last_checked_block`

func scanToken(row pgx.Row) (model.Token, error) {
	var (
		t    model.Token
		tier string
	)
	err := row.Scan(
		&t.Address,
		&t.PoolAddress,
		&t.Creator,
		&t.CreatedAt,
		&t.CreatedBlock,
		&t.LaunchPriceNative,
		&t.LaunchDisplayRate,
		&t.LastSwapAt,
		&t.SwapCount24h,
		&tier,
		&t.TierUpdatedAt,
		&t.LastCheckedBlock,
	)
	t.Tier = model.Tier(tier)
	return t, err
}

func collectTokens(rows pgx.Rows) ([]model.Token, error) {
	defer rows.Close()
	var tokens []model.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// InsertTokens stores launched tokens; an already known address is left untouched.
func (r *Repository) InsertTokens(ctx context.Context, tokens []model.Token) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("insert_tokens", err, start) }()

	const query = `
INSERT INTO tokens (` + tokenColumns + `
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (address) DO NOTHING`

	batch := &pgx.Batch{}
	for _, t := range tokens {
		batch.Queue(query,
			t.Address,
			t.PoolAddress,
			t.Creator,
			t.CreatedAt,
			t.CreatedBlock,
			t.LaunchPriceNative,
			t.LaunchDisplayRate,
			t.LastSwapAt,
			t.SwapCount24h,
			string(t.Tier),
			t.TierUpdatedAt,
			t.LastCheckedBlock,
		)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}

// TokenByAddress returns model.ErrNotFound for unknown addresses.
func (r *Repository) TokenByAddress(ctx context.Context, address string) (*model.Token, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("token_by_address", err, start) }()

	t, err := scanToken(r.pool.QueryRow(ctx, `SELECT`+tokenColumns+` FROM tokens WHERE address = $1`, address))
	if isNoRows(err) {
		err = nil
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select token: %w", err)
	}
	return &t, nil
}

// AdvanceTokenCheckpoint moves last_checked_block forward to block; it never moves it
// back. The move only happens while cursor is still a checkpoint of the partition at or
// below its current position. Otherwise a rollback has rewound the partition under the
// caller, so the token's rows above its checkpoint are discarded and false is returned.
func (r *Repository) AdvanceTokenCheckpoint(ctx context.Context, address string, block uint64, cursor model.Checkpoint) (bool, error) {
	start := time.Now()
	var (
		advanced bool
		err      error
	)
	defer func() { r.metrics.Observe("advance_token_checkpoint", err, start) }()

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// serializes with Rollback, which locks the same row for update
		var lastBlock uint64
		err := tx.QueryRow(ctx, `
SELECT last_block FROM indexer_state WHERE partition = $1 FOR SHARE`, cursor.Partition).Scan(&lastBlock)
		if isNoRows(err) {
			return fmt.Errorf("indexer state %q: %w", cursor.Partition, model.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock indexer state: %w", err)
		}

		var held bool
		if err := tx.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM indexer_checkpoints
	WHERE partition = $1 AND block_number = $2 AND block_hash = $3
)`, cursor.Partition, cursor.BlockNumber, cursor.BlockHash).Scan(&held); err != nil {
			return fmt.Errorf("select checkpoint: %w", err)
		}

		if held && lastBlock >= cursor.BlockNumber && block <= cursor.BlockNumber {
			if _, err := tx.Exec(ctx, `
UPDATE tokens SET last_checked_block = $2
WHERE address = $1 AND last_checked_block < $2`, address, block); err != nil {
				return fmt.Errorf("update token checkpoint: %w", err)
			}
			advanced = true
			return nil
		}

		for _, q := range []string{
			`DELETE FROM price_snapshots WHERE token_address = $1 AND block_number > (SELECT last_checked_block FROM tokens WHERE address = $1)`,
			`DELETE FROM swaps WHERE token_address = $1 AND block_number > (SELECT last_checked_block FROM tokens WHERE address = $1)`,
		} {
			if _, err := tx.Exec(ctx, q, address); err != nil {
				return fmt.Errorf("discard rows above token checkpoint: %w", err)
			}
		}
		return nil
	})
	return advanced, err
}

// TokensByTier orders by 24h swap count, then by the oldest checkpoint.
func (r *Repository) TokensByTier(ctx context.Context, tier model.Tier, limit int) ([]model.Token, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("tokens_by_tier", err, start) }()

	rows, err := r.pool.Query(ctx, `
SELECT`+tokenColumns+`
FROM tokens
WHERE tier = $1
ORDER BY swap_count_24h DESC, last_checked_block ASC
LIMIT $2`, string(tier), limit)
	if err != nil {
		return nil, fmt.Errorf("select tokens by tier: %w", err)
	}
	tokens, err := collectTokens(rows)
	return tokens, err
}

func (r *Repository) StaleTierTokens(ctx context.Context, updatedBefore time.Time, limit int) ([]model.Token, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("stale_tier_tokens", err, start) }()

	rows, err := r.pool.Query(ctx, `
SELECT`+tokenColumns+`
FROM tokens
WHERE tier_updated_at < $1
ORDER BY tier_updated_at ASC
LIMIT $2`, updatedBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("select stale tokens: %w", err)
	}
	tokens, err := collectTokens(rows)
	return tokens, err
}

// CountSwapsSince counts swaps per token at or after since. Tokens without swaps are
// absent from the result.
func (r *Repository) CountSwapsSince(ctx context.Context, addresses []string, since time.Time) (map[string]int64, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("count_swaps_since", err, start) }()

	counts := make(map[string]int64, len(addresses))
	if len(addresses) == 0 {
		return counts, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT token_address, count(*)
FROM swaps
WHERE token_address = ANY($1) AND block_time >= $2
GROUP BY token_address`, addresses, since)
	if err != nil {
		return nil, fmt.Errorf("count swaps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			address string
			count   int64
		)
		if err = rows.Scan(&address, &count); err != nil {
			return nil, fmt.Errorf("scan swap count: %w", err)
		}
		counts[address] = count
	}
	err = rows.Err()
	return counts, err
}

func (r *Repository) UpdateTokenTiers(ctx context.Context, updates []model.TierUpdate) error {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("update_token_tiers", err, start) }()

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
UPDATE tokens SET tier = $2, swap_count_24h = $3, tier_updated_at = $4
WHERE address = $1`, u.Address, string(u.Tier), u.SwapCount24h, u.UpdatedAt)
	}
	_, err = sendBatch(ctx, r.pool, batch)
	return err
}

// PromoteToken records a swap time. An older swap replayed by a backfill changes
// neither the last swap time nor the tier.
func (r *Repository) PromoteToken(ctx context.Context, address string, swapAt time.Time, tier model.Tier, now time.Time) error {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("promote_token", err, start) }()

	_, err = r.pool.Exec(ctx, `
UPDATE tokens
SET last_swap_at = $2, tier = $3, tier_updated_at = $4
WHERE address = $1 AND (last_swap_at IS NULL OR last_swap_at <= $2)`, address, swapAt, string(tier), now)
	return err
}
