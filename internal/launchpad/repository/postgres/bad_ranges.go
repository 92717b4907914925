package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// RecordBadRange counts another failed attempt of a range and marks it skipped once
// maxAttempts is reached.
func (r *Repository) RecordBadRange(ctx context.Context, br model.BadRange, maxAttempts int) (model.BadRange, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("record_bad_range", err, start) }()

	var (
		out  model.BadRange
		kind string
	)
	err = r.pool.QueryRow(ctx, `
INSERT INTO bad_ranges (scope, kind, from_block, to_block, reason, attempts, skipped, updated_at)
VALUES ($1, $2, $3, $4, $5, 1, 1 >= $6, $7)
ON CONFLICT (scope, kind, from_block) DO UPDATE SET
	to_block = EXCLUDED.to_block,
	reason = EXCLUDED.reason,
	attempts = bad_ranges.attempts + 1,
	skipped = bad_ranges.skipped OR bad_ranges.attempts + 1 >= $6,
	updated_at = EXCLUDED.updated_at
RETURNING scope, kind, from_block, to_block, reason, attempts, skipped, updated_at`,
		br.Scope, string(br.Kind), br.FromBlock, br.ToBlock, br.Reason, maxAttempts, r.now(),
	).Scan(&out.Scope, &kind, &out.FromBlock, &out.ToBlock, &out.Reason, &out.Attempts, &out.Skipped, &out.UpdatedAt)
	if err != nil {
		return model.BadRange{}, fmt.Errorf("upsert bad range: %w", err)
	}
	out.Kind = model.EventKind(kind)
	return out, nil
}

// ClearBadRange forgets a range that was fetched successfully after failing before.
// Skipped ranges stay on record.
func (r *Repository) ClearBadRange(ctx context.Context, scope string, kind model.EventKind, fromBlock uint64) error {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("clear_bad_range", err, start) }()

	_, err = r.pool.Exec(ctx, `
DELETE FROM bad_ranges
WHERE scope = $1 AND kind = $2 AND from_block = $3 AND NOT skipped`, scope, string(kind), fromBlock)
	return err
}

// BadRanges lists recorded ranges, most recently updated first.
func (r *Repository) BadRanges(ctx context.Context, skippedOnly bool, limit int) ([]model.BadRange, error) {
	start := time.Now()
	var err error
	defer func() { r.metrics.Observe("bad_ranges", err, start) }()

	rows, err := r.pool.Query(ctx, `
SELECT scope, kind, from_block, to_block, reason, attempts, skipped, updated_at
FROM bad_ranges
WHERE skipped OR NOT $1
ORDER BY updated_at DESC
LIMIT $2`, skippedOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("select bad ranges: %w", err)
	}
	defer rows.Close()

	var out []model.BadRange
	for rows.Next() {
		var (
			br   model.BadRange
			kind string
		)
		if err = rows.Scan(&br.Scope, &kind, &br.FromBlock, &br.ToBlock, &br.Reason, &br.Attempts, &br.Skipped, &br.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bad range: %w", err)
		}
		br.Kind = model.EventKind(kind)
		out = append(out, br)
	}
	err = rows.Err()
	return out, err
}
