package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/jackc/pgx/v5"
)

const snapshotColumns = `
	token_address,
	block_number,
	price_native,
	eth_reserve::text,
	token_reserve::text,
	display_rate,
	interpolated,
	block_time`

func scanSnapshot(row pgx.Row) (model.PriceSnapshot, error) {
	var (
		s                        model.PriceSnapshot
		ethReserve, tokenReserve string
	)
	if err := row.Scan(
		&s.TokenAddress,
		&s.BlockNumber,
		&s.PriceNative,
		&ethReserve,
		&tokenReserve,
		&s.DisplayRate,
		&s.Interpolated,
		&s.Timestamp,
	); err != nil {
		return s, err
	}
	var err error
	if s.EthReserve, err = parseDecimal("eth_reserve", ethReserve); err != nil {
		return s, err
	}
	s.TokenReserve, err = parseDecimal("token_reserve", tokenReserve)
	return s, err
}

// InsertSnapshots stores price observations keyed by (token, block). An observed price
// replaces an interpolated one at the same block; otherwise the first write wins.
func (r *Repository) InsertSnapshots(ctx context.Context, snapshots []model.PriceSnapshot) (int64, error) {
	start := time.Now()
	var (
		n   int64
		err error
	)
	defer func() { r.metrics.Observe("insert_snapshots", err, start) }()

	const query = `
INSERT INTO price_snapshots (
	token_address,
	block_number,
	price_native,
	eth_reserve,
	token_reserve,
	display_rate,
	interpolated,
	block_time
) VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8)
ON CONFLICT (token_address, block_number) DO UPDATE SET
	price_native = EXCLUDED.price_native,
	eth_reserve = EXCLUDED.eth_reserve,
	token_reserve = EXCLUDED.token_reserve,
	display_rate = EXCLUDED.display_rate,
	interpolated = FALSE
WHERE price_snapshots.interpolated AND NOT EXCLUDED.interpolated`

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		batch.Queue(query,
			s.TokenAddress,
			s.BlockNumber,
			s.PriceNative,
			s.EthReserve.String(),
			s.TokenReserve.String(),
			s.DisplayRate,
			s.Interpolated,
			s.Timestamp,
		)
	}
	n, err = sendBatch(ctx, r.pool, batch)
	return n, err
}

// LatestSnapshot returns the newest observation of a token or model.ErrNotFound.
func (r *Repository) LatestSnapshot(ctx context.Context, address string) (*model.PriceSnapshot, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("latest_snapshot", err, start) }()

	s, err := scanSnapshot(r.pool.QueryRow(ctx, `
SELECT`+snapshotColumns+`
FROM price_snapshots
WHERE token_address = $1
ORDER BY block_number DESC
LIMIT 1`, address))
	if isNoRows(err) {
		err = nil
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *Repository) CountSnapshots(ctx context.Context, address string, from, to time.Time) (int, error) {
	start := time.Now()
	var (
		count int
		err   error
	)
	defer func() { r.metrics.Observe("count_snapshots", err, start) }()

	err = r.pool.QueryRow(ctx, `
SELECT count(*)
FROM price_snapshots
WHERE token_address = $1 AND block_time >= $2 AND block_time <= $3`, address, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return count, nil
}

// SnapshotSeries returns every stride-th observation of the window in chronological
// order, always followed by the newest one. With stride = ceil(total/budget) that is at
// most budget+1 rows; callers trim the last strided row.
func (r *Repository) SnapshotSeries(ctx context.Context, address string, from, to time.Time, stride int) ([]model.PriceSnapshot, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("snapshot_series", err, start) }()

	if stride < 1 {
		stride = 1
	}
	rows, err := r.pool.Query(ctx, `
WITH windowed AS (
	SELECT`+snapshotColumns+`,
		row_number() OVER (ORDER BY block_number) - 1 AS rn,
		count(*) OVER () AS total
	FROM price_snapshots
	WHERE token_address = $1 AND block_time >= $2 AND block_time <= $3
)
SELECT
	token_address,
	block_number,
	price_native,
	eth_reserve,
	token_reserve,
	display_rate,
	interpolated,
	block_time
FROM windowed
WHERE rn % $4 = 0 OR rn = total - 1
ORDER BY block_number`, address, from, to, stride)
	if err != nil {
		return nil, fmt.Errorf("select snapshot series: %w", err)
	}
	defer rows.Close()

	var out []model.PriceSnapshot
	for rows.Next() {
		s, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			err = scanErr
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	err = rows.Err()
	return out, err
}
