package coordinator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// Tx is the view of a single resource key inside a serialized critical section.
type Tx interface {
	// Holder returns the current lease on the key, or nil when the key is free.
	Holder(ctx context.Context, resourceKey string) (*model.LockEntry, error)
	PutHolder(ctx context.Context, entry model.LockEntry) error
	DeleteHolder(ctx context.Context, resourceKey string) error
	// Entry returns a queue entry, or nil when it does not exist.
	Entry(ctx context.Context, requestID string) (*model.QueueEntry, error)
	PutEntry(ctx context.Context, entry model.QueueEntry) error
	// Waiters returns waiting entries of the key not yet expired at now, ordered by
	// (RequestedAt, RequestID).
	Waiters(ctx context.Context, resourceKey string, now time.Time) ([]model.QueueEntry, error)
}

// Store persists coordinator bookkeeping.
type Store interface {
	// InResource runs fn with exclusive access to resourceKey. Writes made through the
	// Tx become visible only if fn returns nil.
	InResource(ctx context.Context, resourceKey string, fn func(ctx context.Context, tx Tx) error) error
	// Lookup finds a queue entry by id outside any critical section.
	Lookup(ctx context.Context, requestID string) (*model.QueueEntry, error)
	// Reap times out live entries expired at now, drops lapsed leases and evicts
	// terminal entries last updated before purgeBefore.
	Reap(ctx context.Context, now, purgeBefore time.Time) (timedOut, purged int64, err error)
}
