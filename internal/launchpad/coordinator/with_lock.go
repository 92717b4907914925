package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/clock"
	"go.uber.org/zap"
)

// LockOptions controls a scoped acquisition.
type LockOptions struct {
	// Wait bounds how long the caller queues for the lease. Zero fails fast with a BusyError.
	Wait time.Duration
	// RenewEvery enables background renewal of the lease while fn runs.
	RenewEvery time.Duration
}

// WithLock runs fn while holding resourceKey. The lease is released when fn returns,
// including on error or panic, and renewed in the background if requested. If renewal
// finds the lease taken over, fn's context is cancelled and WithLock returns ErrLeaseLost.
func (c *Coordinator) WithLock(ctx context.Context, resourceKey string, opts LockOptions, fn func(ctx context.Context) error) error {
	ticket, err := c.Acquire(ctx, resourceKey, opts.Wait)
	if err != nil {
		return err
	}
	logger := c.logger.With(zap.String("resource_key", resourceKey), zap.String("request_id", ticket.RequestID))

	defer func() {
		if err := c.Release(context.WithoutCancel(ctx), ticket.RequestID); err != nil {
			logger.Error("release lock failed", zap.Error(err))
		}
	}()

	if !ticket.Acquired {
		if err := c.wait(ctx, resourceKey, ticket, opts.Wait); err != nil {
			return err
		}
	}

	if opts.RenewEvery <= 0 {
		return fn(ctx)
	}

	fnCtx, lose := context.WithCancelCause(ctx)
	defer lose(nil)
	renewCtx, stopRenew := context.WithCancel(fnCtx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.renewLoop(renewCtx, ticket.RequestID, opts.RenewEvery, lose, logger)
	}()
	defer func() {
		stopRenew()
		<-done
	}()

	err = fn(fnCtx)
	if cause := context.Cause(fnCtx); errors.Is(cause, ErrLeaseLost) {
		if err == nil {
			return cause
		}
		return errors.Join(cause, err)
	}
	return err
}

func (c *Coordinator) wait(ctx context.Context, resourceKey string, ticket Ticket, wait time.Duration) error {
	if wait <= 0 {
		return &BusyError{ResourceKey: resourceKey, QueuePosition: ticket.QueuePosition}
	}

	position := ticket.QueuePosition
	deadline := c.now().Add(wait)
	for c.now().Before(deadline) {
		if err := c.sleep(ctx, clock.Jitter(c.cfg.PollInterval, pollJitter)); err != nil {
			return err
		}
		ready, err := c.CheckReady(ctx, ticket.RequestID)
		if err != nil {
			return err
		}
		if ready.Acquired {
			return nil
		}
		if ready.TimedOut {
			return ErrTimedOut
		}
		position = ready.QueuePosition
	}
	return &BusyError{ResourceKey: resourceKey, QueuePosition: position}
}

// renewLoop extends the lease until ctx ends. A lease taken over by another request
// cancels the holder's context through lose.
func (c *Coordinator) renewLoop(ctx context.Context, requestID string, every time.Duration, lose context.CancelCauseFunc, logger *zap.Logger) {
	for {
		if err := c.sleep(ctx, every); err != nil {
			return
		}
		err := c.Renew(ctx, requestID, c.cfg.LeaseTTL)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return
		case errors.Is(err, ErrNotHolder):
			logger.Error("lease lost while held, cancelling", zap.Error(err))
			lose(ErrLeaseLost)
			return
		default:
			logger.Warn("renew lease failed", zap.Error(err))
		}
	}
}
