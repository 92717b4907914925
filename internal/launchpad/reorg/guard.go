// Package reorg keeps the ingestion cursor on the canonical chain.
package reorg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

var (
	// ErrNoAgreementPoint means no stored checkpoint matches the canonical chain within
	// the allowed reorg depth. Retrying cannot fix it; an operator has to intervene.
	ErrNoAgreementPoint = errors.New("no agreement point between stored and canonical chain")
	// ErrCursorMoved means another run moved the cursor while this run was ingesting.
	ErrCursorMoved = errors.New("indexer cursor moved concurrently")
)

const checkpointPage = 64

// Config controls the guard of one partition.
type Config struct {
	Partition         string
	ConfirmationDepth uint64
	StartBlock        uint64
	MaxReorgDepth     int
	LockWait          time.Duration
}

// SyncResult describes the cursor after a Sync.
type SyncResult struct {
	State        model.IndexerState
	Head         uint64
	SafeHead     uint64
	RolledBack   bool
	RollbackFrom uint64
	Stats        model.RollbackStats
}

// Guard compares the stored cursor with the canonical chain and rolls back rows of an
// abandoned fork.
type Guard struct {
	source    ChainSource
	repo      StateRepository
	locker    Locker
	observers []RollbackObserver
	metrics   Metrics
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewGuard constructs a Guard.
func NewGuard(
	source ChainSource,
	repo StateRepository,
	locker Locker,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
	observers ...RollbackObserver,
) (*Guard, error) {
	if source == nil || repo == nil || locker == nil {
		return nil, errors.New("reorg guard requires source, repository and locker")
	}
	if metrics == nil {
		return nil, errors.New("reorg guard metrics is required")
	}
	if cfg.Partition == "" {
		return nil, errors.New("reorg guard partition is required")
	}
	if cfg.MaxReorgDepth <= 0 {
		cfg.MaxReorgDepth = defaultMaxReorgDepth
	}
	if cfg.LockWait <= 0 {
		cfg.LockWait = defaultLockWait
	}
	return &Guard{
		source:    source,
		repo:      repo,
		locker:    locker,
		observers: observers,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger.Named("reorg").With(zap.String("partition", cfg.Partition)),
		now:       time.Now,
	}, nil
}

// Sync brings the cursor in line with the canonical chain. On divergence every row
// above the agreement point is rolled back in one store transaction.
func (g *Guard) Sync(ctx context.Context) (SyncResult, error) {
	start := time.Now()
	var (
		res SyncResult
		err error
	)
	defer func() { g.metrics.ObserveSync(err, start) }()

	err = g.locker.WithLock(ctx, coordinator.ReorgKey(g.cfg.Partition), g.lockOptions(), func(ctx context.Context) error {
		var syncErr error
		res, syncErr = g.sync(ctx)
		return syncErr
	})
	if err != nil {
		if errors.Is(err, ErrNoAgreementPoint) {
			g.logger.Error("rollback cannot find an agreement point", zap.Error(err), zap.Bool("operator", true))
		}
		return SyncResult{}, err
	}
	return res, nil
}

// Advance moves the cursor from expectedLastBlock to `to` after the blocks in between
// were ingested. The hash of `to` must be read before its range is fetched; if the
// ledger reorganized since, the next Sync sees the stale hash and rolls the range back.
func (g *Guard) Advance(ctx context.Context, expectedLastBlock uint64, to model.BlockRef) (model.IndexerState, error) {
	if to.Number <= expectedLastBlock || to.Hash == "" {
		return model.IndexerState{}, fmt.Errorf("invalid cursor target %d (%q) from %d", to.Number, to.Hash, expectedLastBlock)
	}
	state := model.IndexerState{
		Partition:         g.cfg.Partition,
		LastBlock:         to.Number,
		LastHash:          to.Hash,
		ConfirmationDepth: g.cfg.ConfirmationDepth,
	}
	err := g.locker.WithLock(ctx, coordinator.ReorgKey(g.cfg.Partition), g.lockOptions(), func(ctx context.Context) error {
		state.UpdatedAt = g.now()
		ok, err := g.repo.AdvanceCursor(ctx, expectedLastBlock, state)
		if err != nil {
			return fmt.Errorf("advance cursor: %w", err)
		}
		if !ok {
			return ErrCursorMoved
		}
		return nil
	})
	if err != nil {
		return model.IndexerState{}, err
	}
	return state, nil
}

func (g *Guard) lockOptions() coordinator.LockOptions {
	return coordinator.LockOptions{Wait: g.cfg.LockWait, RenewEvery: defaultRenewEvery}
}

func (g *Guard) sync(ctx context.Context) (SyncResult, error) {
	head, err := g.source.Head(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("chain head: %w", err)
	}
	res := SyncResult{Head: head.Number, SafeHead: SafeHead(head.Number, g.cfg.ConfirmationDepth)}

	state, err := g.repo.IndexerState(ctx, g.cfg.Partition)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load cursor: %w", err)
	}
	if state == nil {
		res.State, err = g.initialize(ctx, res.SafeHead)
		return res, err
	}

	canonical, err := g.source.BlockAt(ctx, state.LastBlock)
	switch {
	case err == nil && canonical.Hash == state.LastHash:
		res.State = *state
		return res, nil
	case err != nil && !errors.Is(err, model.ErrNotFound):
		return SyncResult{}, fmt.Errorf("block %d: %w", state.LastBlock, err)
	}

	g.logger.Warn("chain diverged from stored cursor",
		zap.Uint64("last_block", state.LastBlock),
		zap.String("stored_hash", state.LastHash),
		zap.String("canonical_hash", canonical.Hash),
	)
	agreement, err := g.agreementPoint(ctx, state.LastBlock)
	if err != nil {
		return SyncResult{}, err
	}

	stats, err := g.repo.Rollback(ctx, g.cfg.Partition, agreement)
	if err != nil {
		return SyncResult{}, fmt.Errorf("rollback to %d: %w", agreement.BlockNumber, err)
	}
	g.metrics.ObserveRollback(state.LastBlock-agreement.BlockNumber, stats.Total())
	g.logger.Warn("rolled back abandoned fork",
		zap.Uint64("agreement_block", agreement.BlockNumber),
		zap.Uint64("depth", state.LastBlock-agreement.BlockNumber),
		zap.Int64("rows", stats.Total()),
	)
	for _, o := range g.observers {
		if err := o.OnRollback(ctx, agreement.BlockNumber+1); err != nil {
			g.logger.Error("rollback observer failed", zap.Error(err))
		}
	}

	res.State = model.IndexerState{
		Partition:         g.cfg.Partition,
		LastBlock:         agreement.BlockNumber,
		LastHash:          agreement.BlockHash,
		ConfirmationDepth: g.cfg.ConfirmationDepth,
		UpdatedAt:         g.now(),
	}
	res.RolledBack = true
	res.RollbackFrom = agreement.BlockNumber + 1
	res.Stats = stats
	return res, nil
}

func (g *Guard) initialize(ctx context.Context, safeHead uint64) (model.IndexerState, error) {
	startBlock := g.cfg.StartBlock
	if startBlock == 0 || startBlock > safeHead {
		startBlock = safeHead
	}
	ref, err := g.source.BlockAt(ctx, startBlock)
	if err != nil {
		return model.IndexerState{}, fmt.Errorf("block %d: %w", startBlock, err)
	}
	state := model.IndexerState{
		Partition:         g.cfg.Partition,
		LastBlock:         startBlock,
		LastHash:          ref.Hash,
		ConfirmationDepth: g.cfg.ConfirmationDepth,
		UpdatedAt:         g.now(),
	}
	created, err := g.repo.InitIndexerState(ctx, state)
	if err != nil {
		return model.IndexerState{}, fmt.Errorf("init cursor: %w", err)
	}
	if !created {
		existing, err := g.repo.IndexerState(ctx, g.cfg.Partition)
		if err != nil {
			return model.IndexerState{}, fmt.Errorf("load cursor: %w", err)
		}
		if existing != nil {
			return *existing, nil
		}
	}
	g.logger.Info("cursor initialized", zap.Uint64("block", startBlock))
	return state, nil
}

// agreementPoint walks stored checkpoints below lastBlock from the newest down and
// returns the first one whose hash the canonical chain still has.
func (g *Guard) agreementPoint(ctx context.Context, lastBlock uint64) (model.Checkpoint, error) {
	if lastBlock == 0 {
		return model.Checkpoint{}, ErrNoAgreementPoint
	}
	below := lastBlock - 1
	walked := 0
	for {
		cps, err := g.repo.Checkpoints(ctx, g.cfg.Partition, below, checkpointPage)
		if err != nil {
			return model.Checkpoint{}, fmt.Errorf("load checkpoints: %w", err)
		}
		for _, cp := range cps {
			walked++
			if walked > g.cfg.MaxReorgDepth {
				return model.Checkpoint{}, fmt.Errorf("%w: walked %d checkpoints below block %d", ErrNoAgreementPoint, g.cfg.MaxReorgDepth, lastBlock)
			}
			ref, err := g.source.BlockAt(ctx, cp.BlockNumber)
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			if err != nil {
				return model.Checkpoint{}, fmt.Errorf("block %d: %w", cp.BlockNumber, err)
			}
			if ref.Hash == cp.BlockHash {
				return cp, nil
			}
		}
		if len(cps) < checkpointPage || cps[len(cps)-1].BlockNumber == 0 {
			return model.Checkpoint{}, fmt.Errorf("%w: checkpoints exhausted below block %d", ErrNoAgreementPoint, lastBlock)
		}
		below = cps[len(cps)-1].BlockNumber - 1
	}
}

// SafeHead is the highest block treated as final.
func SafeHead(head, confirmationDepth uint64) uint64 {
	if head < confirmationDepth {
		return 0
	}
	return head - confirmationDepth
}
