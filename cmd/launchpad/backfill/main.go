package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/launchpad-indexer/internal/app"
	"github.com/goodnatureofminers/launchpad-indexer/internal/logging"
	"go.uber.org/zap"
)

type config struct {
	app.Common
	app.Indexing

	Address string `long:"address" env:"BACKFILL_ADDRESS" description:"token address to backfill" required:"true"`
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
		logger.Fatal("launchpad backfill failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
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

	res, err := indexer.Service.Backfill(ctx, cfg.Address)
	if err != nil {
		return err
	}
	logger.Info("backfill finished",
		zap.String("address", cfg.Address),
		zap.Int("processed", res.Processed),
		zap.Int("errors", res.Errors),
		zap.Uint64("cursor", res.Cursor),
	)
	if res.Fatal {
		return errors.New("backfill stopped on a fatal error")
	}
	return nil
}
