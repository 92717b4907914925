package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/shopspring/decimal"
)

// Snapshots returns the deduplicated archived snapshots of a token in block order.
func (r *Repository) Snapshots(ctx context.Context, address string, fromBlock uint64) ([]model.PriceSnapshot, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("snapshots", err, start) }()

	const query = `
SELECT
	token_address,
	block_number,
	block_time,
	price_native,
	display_rate,
	eth_reserve,
	token_reserve,
	interpolated
FROM launchpad_price_snapshots FINAL
WHERE token_address = ? AND block_number >= ?
ORDER BY block_number`

	rows, err := r.conn.Query(ctx, query, address, fromBlock)
	if err != nil {
		return nil, fmt.Errorf("query archived snapshots: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var out []model.PriceSnapshot
	for rows.Next() {
		var (
			s                        model.PriceSnapshot
			ethReserve, tokenReserve string
		)
		if err = rows.Scan(
			&s.TokenAddress,
			&s.BlockNumber,
			&s.Timestamp,
			&s.PriceNative,
			&s.DisplayRate,
			&ethReserve,
			&tokenReserve,
			&s.Interpolated,
		); err != nil {
			return nil, fmt.Errorf("scan archived snapshot: %w", err)
		}
		if s.EthReserve, err = decimal.NewFromString(ethReserve); err != nil {
			return nil, fmt.Errorf("parse eth reserve: %w", err)
		}
		if s.TokenReserve, err = decimal.NewFromString(tokenReserve); err != nil {
			return nil, fmt.Errorf("parse token reserve: %w", err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived snapshots: %w", err)
	}
	return out, nil
}
