// Package coordinator implements leased resource locks with a FIFO wait queue.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/goodnatureofminers/launchpad-indexer/internal/clock"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// Ticket is the outcome of an Acquire call.
type Ticket struct {
	RequestID     string
	Acquired      bool
	QueuePosition int
}

// Readiness is the outcome of a CheckReady call.
type Readiness struct {
	Acquired      bool
	TimedOut      bool
	QueuePosition int
	Status        model.QueueStatus
}

// Config holds lease and retention settings.
type Config struct {
	LeaseTTL     time.Duration
	PollInterval time.Duration
	Retention    time.Duration
}

// Coordinator grants leases on resource keys. At most one request holds a key; the
// others wait in request order.
type Coordinator struct {
	store   Store
	metrics Metrics
	logger  *zap.Logger
	cfg     Config
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
	newID   func() string
}

// New constructs a Coordinator.
func New(store Store, metrics Metrics, cfg Config, logger *zap.Logger) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("coordinator store is required")
	}
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = defaultLeaseTTL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Retention <= 0 {
		cfg.Retention = defaultRetention
	}
	return &Coordinator{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("coordinator"),
		cfg:     cfg,
		now:     time.Now,
		sleep:   clock.SleepWithContext,
		newID:   newRequestID,
	}, nil
}

func newRequestID() string {
	// v7 ids sort by creation time, which keeps ties on RequestedAt in request order.
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Acquire grants the lease immediately when the key has no live holder and nobody is
// waiting; otherwise it enqueues a waiting entry valid for timeout.
func (c *Coordinator) Acquire(ctx context.Context, resourceKey string, timeout time.Duration) (Ticket, error) {
	start := time.Now()
	var (
		ticket Ticket
		err    error
	)
	defer func() { c.metrics.Observe("acquire", err, start) }()

	ticket.RequestID = c.newID()
	err = c.store.InResource(ctx, resourceKey, func(ctx context.Context, tx Tx) error {
		now := c.now()
		holder, err := c.liveHolder(ctx, tx, resourceKey, now)
		if err != nil {
			return err
		}
		waiters, err := tx.Waiters(ctx, resourceKey, now)
		if err != nil {
			return fmt.Errorf("list waiters: %w", err)
		}

		if holder == nil && len(waiters) == 0 {
			ticket.Acquired = true
			return c.grant(ctx, tx, model.QueueEntry{
				RequestID:   ticket.RequestID,
				ResourceKey: resourceKey,
				RequestedAt: now,
			}, now)
		}

		ticket.QueuePosition = len(waiters) + 1
		return tx.PutEntry(ctx, model.QueueEntry{
			RequestID:   ticket.RequestID,
			ResourceKey: resourceKey,
			RequestedAt: now,
			Status:      model.QueueWaiting,
			ExpiresAt:   now.Add(timeout),
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return Ticket{}, fmt.Errorf("acquire %s: %w", resourceKey, err)
	}
	if !ticket.Acquired {
		c.metrics.ObserveContention(resourceKey, ticket.QueuePosition)
	}
	return ticket, nil
}

// CheckReady reports whether a queued request has been granted the lease. The head
// waiter takes a free key; a waiter past its expiry is moved to timeout.
func (c *Coordinator) CheckReady(ctx context.Context, requestID string) (Readiness, error) {
	start := time.Now()
	var (
		out Readiness
		err error
	)
	defer func() { c.metrics.Observe("check_ready", err, start) }()

	var entry *model.QueueEntry
	entry, err = c.lookup(ctx, requestID)
	if err != nil {
		return Readiness{}, err
	}

	err = c.store.InResource(ctx, entry.ResourceKey, func(ctx context.Context, tx Tx) error {
		now := c.now()
		current, err := tx.Entry(ctx, requestID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrUnknownRequest
		}
		out.Status = current.Status

		switch current.Status {
		case model.QueueCompleted, model.QueueTimeout:
			out.TimedOut = current.Status == model.QueueTimeout
			return nil
		case model.QueueProcessing:
			holder, err := c.liveHolder(ctx, tx, current.ResourceKey, now)
			if err != nil {
				return err
			}
			if holder != nil && holder.HolderID == requestID {
				out.Acquired = true
				return nil
			}
			out.TimedOut = true
			out.Status = model.QueueTimeout
			return c.finish(ctx, tx, *current, model.QueueTimeout, now)
		}

		if !now.Before(current.ExpiresAt) {
			out.TimedOut = true
			out.Status = model.QueueTimeout
			return c.finish(ctx, tx, *current, model.QueueTimeout, now)
		}

		holder, err := c.liveHolder(ctx, tx, current.ResourceKey, now)
		if err != nil {
			return err
		}
		waiters, err := tx.Waiters(ctx, current.ResourceKey, now)
		if err != nil {
			return fmt.Errorf("list waiters: %w", err)
		}
		out.QueuePosition = position(waiters, requestID)
		if holder != nil || out.QueuePosition != 1 {
			return nil
		}

		out.Acquired = true
		out.QueuePosition = 0
		out.Status = model.QueueProcessing
		return c.grant(ctx, tx, *current, now)
	})
	if err != nil {
		return Readiness{}, fmt.Errorf("check ready %s: %w", requestID, err)
	}
	return out, nil
}

// Renew extends the lease held by requestID to now+extension.
func (c *Coordinator) Renew(ctx context.Context, requestID string, extension time.Duration) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("renew", err, start) }()

	var entry *model.QueueEntry
	entry, err = c.lookup(ctx, requestID)
	if err != nil {
		return err
	}

	err = c.store.InResource(ctx, entry.ResourceKey, func(ctx context.Context, tx Tx) error {
		now := c.now()
		holder, err := c.liveHolder(ctx, tx, entry.ResourceKey, now)
		if err != nil {
			return err
		}
		if holder == nil || holder.HolderID != requestID {
			return ErrNotHolder
		}
		current, err := tx.Entry(ctx, requestID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrUnknownRequest
		}

		holder.ExpiresAt = now.Add(extension)
		if err := tx.PutHolder(ctx, *holder); err != nil {
			return err
		}
		current.ExpiresAt = holder.ExpiresAt
		current.UpdatedAt = now
		return tx.PutEntry(ctx, *current)
	})
	if err != nil {
		return fmt.Errorf("renew %s: %w", requestID, err)
	}
	return nil
}

// Release ends a request: a held lease is cleared and a waiting entry leaves the queue.
// Releasing a finished request is a no-op.
func (c *Coordinator) Release(ctx context.Context, requestID string) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("release", err, start) }()

	var entry *model.QueueEntry
	entry, err = c.lookup(ctx, requestID)
	if err != nil {
		return err
	}

	err = c.store.InResource(ctx, entry.ResourceKey, func(ctx context.Context, tx Tx) error {
		now := c.now()
		current, err := tx.Entry(ctx, requestID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrUnknownRequest
		}
		holder, err := tx.Holder(ctx, current.ResourceKey)
		if err != nil {
			return err
		}
		if holder != nil && holder.HolderID == requestID {
			if err := tx.DeleteHolder(ctx, current.ResourceKey); err != nil {
				return err
			}
		}
		if current.Status.Terminal() {
			return nil
		}
		return c.finish(ctx, tx, *current, model.QueueCompleted, now)
	})
	if err != nil {
		return fmt.Errorf("release %s: %w", requestID, err)
	}
	return nil
}

// ReleaseResource clears whatever lease exists on resourceKey.
func (c *Coordinator) ReleaseResource(ctx context.Context, resourceKey string) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("release_resource", err, start) }()

	err = c.store.InResource(ctx, resourceKey, func(ctx context.Context, tx Tx) error {
		holder, err := tx.Holder(ctx, resourceKey)
		if err != nil || holder == nil {
			return err
		}
		if err := tx.DeleteHolder(ctx, resourceKey); err != nil {
			return err
		}
		entry, err := tx.Entry(ctx, holder.HolderID)
		if err != nil || entry == nil || entry.Status.Terminal() {
			return err
		}
		return c.finish(ctx, tx, *entry, model.QueueCompleted, c.now())
	})
	if err != nil {
		return fmt.Errorf("release resource %s: %w", resourceKey, err)
	}
	return nil
}

// Reap times out expired entries and evicts terminal entries older than the retention window.
func (c *Coordinator) Reap(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("reap", err, start) }()

	now := c.now()
	var timedOut, purged int64
	timedOut, purged, err = c.store.Reap(ctx, now, now.Add(-c.cfg.Retention))
	if err != nil {
		return fmt.Errorf("reap: %w", err)
	}
	if timedOut > 0 || purged > 0 {
		c.logger.Info("reaped queue entries", zap.Int64("timed_out", timedOut), zap.Int64("purged", purged))
	}
	return nil
}

func (c *Coordinator) lookup(ctx context.Context, requestID string) (*model.QueueEntry, error) {
	entry, err := c.store.Lookup(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", requestID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("lookup %s: %w", requestID, ErrUnknownRequest)
	}
	return entry, nil
}

// liveHolder returns the holder of key, clearing a lapsed lease on the way.
func (c *Coordinator) liveHolder(ctx context.Context, tx Tx, resourceKey string, now time.Time) (*model.LockEntry, error) {
	holder, err := tx.Holder(ctx, resourceKey)
	if err != nil {
		return nil, fmt.Errorf("load holder: %w", err)
	}
	if holder == nil || !holder.Expired(now) {
		return holder, nil
	}

	c.logger.Warn("lease expired, recovering lock",
		zap.String("resource_key", resourceKey),
		zap.String("holder_id", holder.HolderID),
		zap.Time("expired_at", holder.ExpiresAt),
	)
	if err := tx.DeleteHolder(ctx, resourceKey); err != nil {
		return nil, err
	}
	entry, err := tx.Entry(ctx, holder.HolderID)
	if err != nil {
		return nil, err
	}
	if entry != nil && !entry.Status.Terminal() {
		if err := c.finish(ctx, tx, *entry, model.QueueTimeout, now); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (c *Coordinator) grant(ctx context.Context, tx Tx, entry model.QueueEntry, now time.Time) error {
	expires := now.Add(c.cfg.LeaseTTL)
	if err := tx.PutHolder(ctx, model.LockEntry{
		ResourceKey: entry.ResourceKey,
		HolderID:    entry.RequestID,
		AcquiredAt:  now,
		ExpiresAt:   expires,
	}); err != nil {
		return err
	}
	entry.Status = model.QueueProcessing
	entry.ExpiresAt = expires
	entry.UpdatedAt = now
	return tx.PutEntry(ctx, entry)
}

func (c *Coordinator) finish(ctx context.Context, tx Tx, entry model.QueueEntry, status model.QueueStatus, now time.Time) error {
	entry.Status = status
	entry.UpdatedAt = now
	return tx.PutEntry(ctx, entry)
}

func position(waiters []model.QueueEntry, requestID string) int {
	for i, w := range waiters {
		if w.RequestID == requestID {
			return i + 1
		}
	}
	return 0
}
