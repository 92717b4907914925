// Package scheduler drives ingestion ticks per activity tier plus the lock reaper and the
// tier recompute job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ingester"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Config holds cron specs (seconds field enabled, descriptors such as "@every 10s" accepted)
// and per-job budgets.
type Config struct {
	Cadence       map[model.Tier]string
	ReapSpec      string
	RecomputeSpec string
	// LaunchTier also indexes the global event kinds; it should be the most frequent tier.
	LaunchTier model.Tier
	RunBudget  time.Duration
	JobTimeout time.Duration
}

// DefaultCadence is the poll interval per tier.
func DefaultCadence() map[model.Tier]string {
	return map[model.Tier]string{
		model.TierHot:     "@every 10s",
		model.TierWarm:    "@every 2m",
		model.TierCold:    "@every 10m",
		model.TierDormant: "@every 1h",
	}
}

func (c Config) withDefaults() Config {
	cadence := DefaultCadence()
	for tier, spec := range c.Cadence {
		if spec != "" {
			cadence[tier] = spec
		}
	}
	c.Cadence = cadence
	if c.ReapSpec == "" {
		c.ReapSpec = "@every 30s"
	}
	if c.RecomputeSpec == "" {
		c.RecomputeSpec = "@every 1m"
	}
	if c.LaunchTier == "" {
		c.LaunchTier = model.TierHot
	}
	if c.RunBudget <= 0 {
		c.RunBudget = 25 * time.Second
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = 30 * time.Second
	}
	return c
}

type Scheduler struct {
	cron     *cron.Cron
	ingester Ingester
	tiers    TierRecomputer
	reaper   Reaper
	cfg      Config
	logger   *zap.Logger
}

// New registers every job. Nothing runs until Start.
func New(ing Ingester, tiers TierRecomputer, reaper Reaper, cfg Config, logger *zap.Logger) (*Scheduler, error) {
	if ing == nil || tiers == nil || reaper == nil {
		return nil, errors.New("scheduler requires ingester, tier service and reaper")
	}
	cfg = cfg.withDefaults()
	logger = logger.Named("scheduler")

	s := &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger{logger})),
		),
		ingester: ing,
		tiers:    tiers,
		reaper:   reaper,
		cfg:      cfg,
		logger:   logger,
	}

	for _, tier := range model.Tiers {
		spec := cfg.Cadence[tier]
		tier := tier
		if _, err := s.cron.AddFunc(spec, func() { s.runTier(context.Background(), tier) }); err != nil {
			return nil, fmt.Errorf("schedule %s tier %q: %w", tier, spec, err)
		}
	}
	if _, err := s.cron.AddFunc(cfg.ReapSpec, func() { s.reap(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule reaper %q: %w", cfg.ReapSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.RecomputeSpec, func() { s.recompute(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule tier recompute %q: %w", cfg.RecomputeSpec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new ticks and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) runTier(ctx context.Context, tier model.Tier) {
	// The ingester enforces RunBudget itself; the outer timeout covers lock handover.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunBudget+5*time.Second)
	defer cancel()

	logger := s.logger.With(zap.String("tier", string(tier)))
	res, err := s.ingester.RunIngestion(ctx, ingester.Request{
		Tier:          tier,
		IndexLaunches: tier == s.cfg.LaunchTier,
		IndexSwaps:    true,
	})
	switch {
	case err != nil && res.Fatal:
		logger.Error("ingestion halted until the cursor is repaired", zap.Bool("operator", true), zap.Error(err))
	case err != nil, res.Busy:
		// already logged by the ingester
	case res.Processed > 0 || res.RolledBack:
		logger.Info("ingestion run finished",
			zap.Int("processed", res.Processed),
			zap.Int("errors", res.Errors),
			zap.Int("tokens", res.Tokens),
			zap.Uint64("cursor", res.Cursor),
			zap.Bool("rolled_back", res.RolledBack),
			zap.Bool("budget_exhausted", res.BudgetExhausted),
		)
	}
}

func (s *Scheduler) reap(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()
	if err := s.reaper.Reap(ctx); err != nil {
		s.logger.Warn("lock reaper failed", zap.Error(err))
	}
}

func (s *Scheduler) recompute(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()
	n, err := s.tiers.Recompute(ctx)
	if err != nil {
		s.logger.Warn("tier recompute failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Debug("tiers recomputed", zap.Int("tokens", n))
	}
}

// cronLogger adapts zap to cron.Logger for the Recover wrapper.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
