package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/jackc/pgx/v5"
)

// CoordinatorStore keeps lock bookkeeping in Postgres so every process shares it. A
// critical section is a transaction holding an advisory lock on the resource key.
type CoordinatorStore struct {
	repo *Repository
}

// CoordinatorStore returns the coordinator.Store backed by this database.
func (r *Repository) CoordinatorStore() *CoordinatorStore {
	return &CoordinatorStore{repo: r}
}

func (s *CoordinatorStore) InResource(ctx context.Context, resourceKey string, fn func(ctx context.Context, tx coordinator.Tx) error) error {
	start := time.Now()
	var err error
	defer func() { s.repo.metrics.Observe("lock_in_resource", err, start) }()

	err = pgx.BeginFunc(ctx, s.repo.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, resourceKey); err != nil {
			return fmt.Errorf("advisory lock %s: %w", resourceKey, err)
		}
		return fn(ctx, &coordinatorTx{tx: tx})
	})
	return err
}

func (s *CoordinatorStore) Lookup(ctx context.Context, requestID string) (*model.QueueEntry, error) {
	start := time.Now()
	var err error
	defer func() { s.repo.metrics.Observe("lock_lookup", err, start) }()

	e, err := lookupEntry(ctx, s.repo.pool, requestID)
	return e, err
}

func (s *CoordinatorStore) Reap(ctx context.Context, now, purgeBefore time.Time) (int64, int64, error) {
	start := time.Now()
	var (
		timedOut, purged int64
		err              error
	)
	defer func() { s.repo.metrics.Observe("lock_reap", err, start) }()

	err = pgx.BeginFunc(ctx, s.repo.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM lock_holders WHERE expires_at <= $1`, now); err != nil {
			return fmt.Errorf("drop lapsed leases: %w", err)
		}
		tag, err := tx.Exec(ctx, `
UPDATE lock_queue SET status = $2, updated_at = $1
WHERE status IN ($3, $4) AND expires_at <= $1`,
			now, string(model.QueueTimeout), string(model.QueueWaiting), string(model.QueueProcessing))
		if err != nil {
			return fmt.Errorf("time out entries: %w", err)
		}
		timedOut = tag.RowsAffected()
		tag, err = tx.Exec(ctx, `
DELETE FROM lock_queue
WHERE status IN ($2, $3) AND updated_at < $1`,
			purgeBefore, string(model.QueueCompleted), string(model.QueueTimeout))
		if err != nil {
			return fmt.Errorf("purge entries: %w", err)
		}
		purged = tag.RowsAffected()
		return nil
	})
	return timedOut, purged, err
}

type coordinatorTx struct {
	tx pgx.Tx
}

func (t *coordinatorTx) Holder(ctx context.Context, resourceKey string) (*model.LockEntry, error) {
	var h model.LockEntry
	err := t.tx.QueryRow(ctx, `
SELECT resource_key, holder_id, acquired_at, expires_at
FROM lock_holders
WHERE resource_key = $1`, resourceKey).Scan(&h.ResourceKey, &h.HolderID, &h.AcquiredAt, &h.ExpiresAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select holder: %w", err)
	}
	return &h, nil
}

func (t *coordinatorTx) PutHolder(ctx context.Context, entry model.LockEntry) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO lock_holders (resource_key, holder_id, acquired_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (resource_key) DO UPDATE SET
	holder_id = EXCLUDED.holder_id,
	acquired_at = EXCLUDED.acquired_at,
	expires_at = EXCLUDED.expires_at`,
		entry.ResourceKey, entry.HolderID, entry.AcquiredAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert holder: %w", err)
	}
	return nil
}

func (t *coordinatorTx) DeleteHolder(ctx context.Context, resourceKey string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM lock_holders WHERE resource_key = $1`, resourceKey); err != nil {
		return fmt.Errorf("delete holder: %w", err)
	}
	return nil
}

func (t *coordinatorTx) Entry(ctx context.Context, requestID string) (*model.QueueEntry, error) {
	return lookupEntry(ctx, t.tx, requestID)
}

func (t *coordinatorTx) PutEntry(ctx context.Context, entry model.QueueEntry) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO lock_queue (request_id, resource_key, requested_at, status, expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (request_id) DO UPDATE SET
	status = EXCLUDED.status,
	expires_at = EXCLUDED.expires_at,
	updated_at = EXCLUDED.updated_at`,
		entry.RequestID, entry.ResourceKey, entry.RequestedAt, string(entry.Status), entry.ExpiresAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert queue entry: %w", err)
	}
	return nil
}

func (t *coordinatorTx) Waiters(ctx context.Context, resourceKey string, now time.Time) ([]model.QueueEntry, error) {
	rows, err := t.tx.Query(ctx, `
SELECT request_id, resource_key, requested_at, status, expires_at, updated_at
FROM lock_queue
WHERE resource_key = $1 AND status = $2 AND expires_at > $3
ORDER BY requested_at, request_id`, resourceKey, string(model.QueueWaiting), now)
	if err != nil {
		return nil, fmt.Errorf("select waiters: %w", err)
	}
	defer rows.Close()

	var out []model.QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waiter: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func lookupEntry(ctx context.Context, exec executor, requestID string) (*model.QueueEntry, error) {
	e, err := scanEntry(exec.QueryRow(ctx, `
SELECT request_id, resource_key, requested_at, status, expires_at, updated_at
FROM lock_queue
WHERE request_id = $1`, requestID))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select queue entry: %w", err)
	}
	return &e, nil
}

func scanEntry(row pgx.Row) (model.QueueEntry, error) {
	var (
		e      model.QueueEntry
		status string
	)
	err := row.Scan(&e.RequestID, &e.ResourceKey, &e.RequestedAt, &status, &e.ExpiresAt, &e.UpdatedAt)
	e.Status = model.QueueStatus(status)
	return e, err
}
