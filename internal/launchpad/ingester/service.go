// Package ingester pulls launchpad events from the ledger into the store.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/reorg"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

var (
	// ErrBranchChanged means a fetched log belongs to a block that left the canonical chain.
	ErrBranchChanged = errors.New("log block is no longer canonical")
	// ErrCursorRewound means a rollback moved the cursor below the range a run was ingesting.
	ErrCursorRewound = errors.New("cursor rewound by a rollback")
)

// Request parameterizes one ingestion run.
type Request struct {
	Tier          model.Tier `json:"tier"`
	IndexLaunches bool       `json:"index_launches"`
	IndexSwaps    bool       `json:"index_swaps"`
}

// Result summarizes one ingestion run.
type Result struct {
	Tier            model.Tier `json:"tier"`
	Processed       int        `json:"processed"`
	Errors          int        `json:"errors"`
	Tokens          int        `json:"tokens"`
	Cursor          uint64     `json:"cursor"`
	Busy            bool       `json:"busy,omitempty"`
	QueuePosition   int        `json:"queue_position,omitempty"`
	RolledBack      bool       `json:"rolled_back,omitempty"`
	RollbackFrom    uint64     `json:"rollback_from,omitempty"`
	BudgetExhausted bool       `json:"budget_exhausted,omitempty"`
	Fatal           bool       `json:"fatal,omitempty"`
}

// Config tunes ingestion runs.
type Config struct {
	WorkerCount          int
	BatchLimit           int
	MaxBlockRange        uint64
	MaxRangeAttempts     int
	RunBudget            time.Duration
	RenewEvery           time.Duration
	BackfillWait         time.Duration
	CarryForwardInterval time.Duration
}

// Dependencies groups the collaborators of the Service.
type Dependencies struct {
	Source    LedgerSource
	Guard     ReorgGuard
	Tiers     TierService
	Locker    Locker
	Events    EventRepository
	Tokens    TokenRepository
	BadRanges BadRangeRepository
	Archive   SnapshotArchive
	Metrics   Metrics
}

// Service runs ingestion for one ledger partition.
type Service struct {
	deps   Dependencies
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	global *globalProcessor
	swaps  *swapProcessor
}

// NewService constructs an ingestion Service.
func NewService(deps Dependencies, cfg Config, logger *zap.Logger) (*Service, error) {
	if deps.Source == nil || deps.Guard == nil || deps.Tiers == nil || deps.Locker == nil {
		return nil, errors.New("ingester requires source, guard, tiers and locker")
	}
	if deps.Events == nil || deps.Tokens == nil || deps.BadRanges == nil {
		return nil, errors.New("ingester requires event, token and bad range repositories")
	}
	if deps.Metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	cfg = withDefaults(cfg)
	logger = logger.Named("ingester")
	skip := newSkipList(deps.BadRanges, cfg.MaxRangeAttempts, logger)

	return &Service{
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		global: &globalProcessor{
			source:  deps.Source,
			repo:    deps.Events,
			archive: deps.Archive,
			skip:    skip,
			metrics: deps.Metrics,
			logger:  logger.Named("global"),
		},
		swaps: &swapProcessor{
			source:        deps.Source,
			repo:          deps.Events,
			tokens:        deps.Tokens,
			tiers:         deps.Tiers,
			archive:       deps.Archive,
			skip:          skip,
			metrics:       deps.Metrics,
			maxBlockRange: cfg.MaxBlockRange,
			logger:        logger.Named("swaps"),
		},
	}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = defaultBatchLimit
	}
	if cfg.MaxBlockRange == 0 {
		cfg.MaxBlockRange = defaultMaxBlockRange
	}
	if cfg.MaxRangeAttempts <= 0 {
		cfg.MaxRangeAttempts = defaultMaxRangeAttempts
	}
	if cfg.RunBudget <= 0 {
		cfg.RunBudget = defaultRunBudget
	}
	if cfg.RenewEvery <= 0 {
		cfg.RenewEvery = defaultRenewEvery
	}
	if cfg.BackfillWait <= 0 {
		cfg.BackfillWait = defaultBackfillWait
	}
	if cfg.CarryForwardInterval <= 0 {
		cfg.CarryForwardInterval = defaultCarryForward
	}
	return cfg
}

// RunIngestion performs one bounded ingestion run for a tier. A run that finds the tier
// already being ingested returns Busy with its queue position instead of waiting.
func (s *Service) RunIngestion(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	var err error
	res := Result{Tier: req.Tier}
	defer func() { s.deps.Metrics.ObserveRun(req.Tier, err, start) }()

	if _, err = model.ParseTier(string(req.Tier)); err != nil {
		return res, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunBudget)
	defer cancel()
	logger := s.logger.With(zap.String("tier", string(req.Tier)))

	err = s.deps.Locker.WithLock(runCtx, coordinator.IngestKey(req.Tier), coordinator.LockOptions{RenewEvery: s.cfg.RenewEvery}, func(ctx context.Context) error {
		return s.run(ctx, req, &res, logger)
	})

	var busy *coordinator.BusyError
	switch {
	case errors.As(err, &busy):
		err = nil
		res.Busy, res.QueuePosition = true, busy.QueuePosition
		s.deps.Metrics.ObserveBusy(req.Tier, busy.QueuePosition)
		logger.Debug("tier busy, run skipped", zap.Int("queue_position", busy.QueuePosition))
		return res, nil
	case err != nil && runCtx.Err() != nil && ctx.Err() == nil:
		// the budget ran out; cursors stay where the run left them
		err = nil
		res.BudgetExhausted = true
		logger.Info("run budget exhausted", zap.Int("processed", res.Processed))
		return res, nil
	case errors.Is(err, reorg.ErrNoAgreementPoint):
		res.Fatal = true
		return res, err
	case err != nil:
		logger.Warn("ingestion run failed", zap.Error(err), zap.Int("processed", res.Processed))
		return res, err
	}

	logger.Debug("ingestion run finished",
		zap.Int("processed", res.Processed),
		zap.Int("errors", res.Errors),
		zap.Int("tokens", res.Tokens),
		zap.Uint64("cursor", res.Cursor),
	)
	return res, nil
}

func (s *Service) run(ctx context.Context, req Request, res *Result, logger *zap.Logger) error {
	synced, err := s.deps.Guard.Sync(ctx)
	if err != nil {
		return fmt.Errorf("reorg sync: %w", err)
	}
	res.RolledBack, res.RollbackFrom = synced.RolledBack, synced.RollbackFrom
	cursor := synced.State

	if req.IndexLaunches {
		cursor, err = s.ingestGlobal(ctx, synced, res, logger)
		if err != nil {
			return err
		}
	}
	res.Cursor = cursor.LastBlock

	if req.IndexSwaps {
		return s.ingestSwaps(ctx, req.Tier, cursor.Checkpoint(), res, logger)
	}
	return nil
}

func (s *Service) ingestGlobal(ctx context.Context, synced reorg.SyncResult, res *Result, logger *zap.Logger) (model.IndexerState, error) {
	current := synced.State
	from := current.LastBlock
	to := synced.SafeHead
	if limit := from + s.cfg.MaxBlockRange; to > limit {
		to = limit
	}
	if to <= from {
		return current, nil
	}

	// the hash of `to` is pinned before any log is fetched
	target, err := s.deps.Source.BlockAt(ctx, to)
	if err != nil {
		return current, fmt.Errorf("block %d: %w", to, err)
	}

	processed, failed, err := s.global.Process(ctx, model.BlockRange{From: from + 1, To: to})
	res.Processed += processed
	res.Errors += failed
	if errors.Is(err, ErrBranchChanged) {
		logger.Info("ledger reorganized during the run", zap.Uint64("from", from), zap.Uint64("to", to), zap.Error(err))
		return current, nil
	}
	if err != nil {
		return current, fmt.Errorf("global events %d-%d: %w", from+1, to, err)
	}

	next, err := s.deps.Guard.Advance(ctx, from, target)
	if err != nil {
		if errors.Is(err, reorg.ErrCursorMoved) {
			logger.Info("cursor moved by a concurrent run", zap.Uint64("from", from), zap.Uint64("to", to))
			return current, nil
		}
		return current, fmt.Errorf("advance cursor: %w", err)
	}
	return next, nil
}

func (s *Service) ingestSwaps(ctx context.Context, tier model.Tier, cursor model.Checkpoint, res *Result, logger *zap.Logger) error {
	tokens, err := s.deps.Tiers.Batch(ctx, tier, s.cfg.BatchLimit)
	if err != nil {
		return err
	}
	res.Tokens = len(tokens)
	if len(tokens) == 0 {
		return nil
	}

	var (
		processed, failed atomic.Int64
		rewound           atomic.Bool
		mu                sync.Mutex
		quiet             []model.Token
	)
	_, err = workerpool.Process(ctx, s.cfg.WorkerCount, tokens, func(ctx context.Context, token model.Token) error {
		n, bad, err := s.swaps.Process(ctx, token, cursor)
		processed.Add(int64(n))
		failed.Add(int64(bad))
		if err != nil {
			return err
		}
		if n == 0 {
			mu.Lock()
			quiet = append(quiet, token)
			mu.Unlock()
		}
		return nil
	}, func(token model.Token, err error) {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ErrCursorRewound) || errors.Is(err, ErrBranchChanged) {
			rewound.Store(true)
			logger.Info("token swaps left to the next run", zap.String("token", token.Address), zap.Error(err))
			return
		}
		failed.Add(1)
		logger.Warn("token swaps not ingested", zap.String("token", token.Address), zap.Error(err))
	})
	res.Processed += int(processed.Load())
	res.Errors += int(failed.Load())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if rewound.Load() {
		// quiet tokens would be carried forward to a block that may be gone
		return nil
	}

	written, err := s.carryForward(ctx, quiet, cursor.BlockNumber)
	res.Processed += written
	return err
}
