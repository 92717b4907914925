package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/app"
	"github.com/goodnatureofminers/launchpad-indexer/internal/logging"
	"github.com/goodnatureofminers/launchpad-indexer/internal/metrics"
	"github.com/goodnatureofminers/launchpad-indexer/internal/transport"
	"go.uber.org/zap"
)

type config struct {
	app.Common
	app.Indexing

	HTTPAddr       string        `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"address for the HTTP API"`
	RequestTimeout time.Duration `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"60s" description:"per-request timeout"`
	AllowedOrigins []string      `long:"allowed-origin" env:"ALLOWED_ORIGINS" env-delim:"," description:"CORS origins; empty allows all"`
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
		logger.Fatal("launchpad api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	app.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	core, err := app.NewCore(ctx, cfg.Common, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	deps := transport.Dependencies{
		Charts:    core.Charts,
		Locks:     core.Coordinator,
		BadRanges: core.Repo,
		Health:    core.Repo,
		Metrics:   metrics.NewHTTPServer(),
	}
	if cfg.Ledger.Enabled() {
		indexer, err := core.NewIndexer(ctx, cfg.Indexing, logger)
		if err != nil {
			return err
		}
		defer indexer.Close()
		indexer.Start(ctx)
		deps.Ingester = indexer.Service
	} else {
		logger.Warn("no ledger rpc url configured, ingestion endpoints are disabled")
	}

	handler, err := transport.NewHandler(deps, transport.Config{
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)
	if err != nil {
		return err
	}

	return app.ListenAndServe(ctx, "http", &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}, logger)
}
