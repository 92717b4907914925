package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/app"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/scheduler"
	"github.com/goodnatureofminers/launchpad-indexer/internal/logging"
	"go.uber.org/zap"
)

type config struct {
	app.Common
	app.Indexing

	HotCadence     string     `long:"cadence-hot" env:"CADENCE_HOT" default:"@every 10s" description:"cron spec for hot tokens"`
	WarmCadence    string     `long:"cadence-warm" env:"CADENCE_WARM" default:"@every 2m" description:"cron spec for warm tokens"`
	ColdCadence    string     `long:"cadence-cold" env:"CADENCE_COLD" default:"@every 10m" description:"cron spec for cold tokens"`
	DormantCadence string     `long:"cadence-dormant" env:"CADENCE_DORMANT" default:"@every 1h" description:"cron spec for dormant tokens"`
	LaunchTier     model.Tier `long:"launch-tier" env:"LAUNCH_TIER" default:"hot" description:"tier whose runs also index launches, locks and burns"`
	ReapSpec       string     `long:"reap-schedule" env:"REAP_SCHEDULE" default:"@every 30s" description:"cron spec for lock queue maintenance"`
	RecomputeSpec  string     `long:"recompute-schedule" env:"RECOMPUTE_SCHEDULE" default:"@every 1m" description:"cron spec for tier recomputation"`
}

func main() {
	cfg := config{}
	ok, err := app.ParseFlags(&cfg)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}
	if !ok {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("launchpad indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	app.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	core, err := app.NewCore(ctx, cfg.Common, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	indexer, err := core.NewIndexer(ctx, cfg.Indexing, logger)
	if err != nil {
		return err
	}
	defer indexer.Close()
	indexer.Start(ctx)

	sched, err := scheduler.New(indexer.Service, core.Tiers, core.Coordinator, scheduler.Config{
		Cadence: map[model.Tier]string{
			model.TierHot:     cfg.HotCadence,
			model.TierWarm:    cfg.WarmCadence,
			model.TierCold:    cfg.ColdCadence,
			model.TierDormant: cfg.DormantCadence,
		},
		LaunchTier:    cfg.LaunchTier,
		ReapSpec:      cfg.ReapSpec,
		RecomputeSpec: cfg.RecomputeSpec,
		RunBudget:     cfg.Ingester.RunBudget,
	}, logger)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	sched.Start()
	logger.Info("launchpad indexer started")

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Ingester.RunBudget+10*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
	return nil
}
