package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/chart"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ingester"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ledger"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/reorg"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/repository/clickhouse"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/repository/postgres"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/repository/redis"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/tier"
	"github.com/goodnatureofminers/launchpad-indexer/internal/metrics"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/batcher"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/retry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Core holds the components shared by every binary.
type Core struct {
	Repo        *postgres.Repository
	Coordinator *coordinator.Coordinator
	Tiers       *tier.Service
	Charts      *chart.Service
	// Cache is nil when no Redis URL is configured.
	Cache *redis.ChartCache

	logger *zap.Logger
}

// NewCore connects Postgres and the optional chart cache.
func NewCore(ctx context.Context, cfg Common, logger *zap.Logger) (*Core, error) {
	repo, err := postgres.NewRepository(ctx, cfg.Postgres.DSN, postgres.PoolConfig{
		MinConns:        cfg.Postgres.MinConns,
		MaxConns:        cfg.Postgres.MaxConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, metrics.NewPostgresRepository())
	if err != nil {
		return nil, fmt.Errorf("init postgres repository: %w", err)
	}
	core := &Core{Repo: repo, logger: logger}

	core.Coordinator, err = coordinator.New(repo.CoordinatorStore(), metrics.NewCoordinator(), coordinator.Config{
		LeaseTTL:     cfg.Coordinator.LeaseTTL,
		PollInterval: cfg.Coordinator.PollInterval,
		Retention:    cfg.Coordinator.Retention,
	}, logger)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("init coordinator: %w", err)
	}

	core.Tiers, err = tier.NewService(repo, logger)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("init tier service: %w", err)
	}

	var cache chart.Cache
	if cfg.Redis.URL != "" {
		core.Cache, err = redis.NewChartCache(ctx, redis.Options{URL: cfg.Redis.URL}, metrics.NewRedisCache(), logger)
		if err != nil {
			core.Close()
			return nil, fmt.Errorf("init chart cache: %w", err)
		}
		cache = core.Cache
	}

	core.Charts, err = chart.NewService(repo, cache, metrics.NewChart(), chart.Config{}, logger)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("init chart service: %w", err)
	}
	return core, nil
}

// Close releases connections held by the core.
func (c *Core) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.logger.Warn("close chart cache", zap.Error(err))
		}
	}
	c.Repo.Close()
}

// Indexer holds the ledger-facing components.
type Indexer struct {
	Service *ingester.Service
	// Archive is nil when no ClickHouse DSN is configured.
	Archive *clickhouse.Archive

	client *ethclient.Client
	chRepo *clickhouse.Repository
	logger *zap.Logger
}

// NewIndexer dials the ledger and builds the ingestion service on top of core.
func (c *Core) NewIndexer(ctx context.Context, cfg Indexing, logger *zap.Logger) (*Indexer, error) {
	if !cfg.Ledger.Enabled() {
		return nil, errors.New("ledger rpc url is required")
	}
	contracts, err := cfg.Ledger.Contracts()
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Ledger.DialTimeout)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, cfg.Ledger.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger rpc: %w", err)
	}
	idx := &Indexer{client: client, logger: logger}

	source, err := ledger.NewSource(client, metrics.NewRPCClient(cfg.Ledger.Chain), ledger.Config{
		Contracts:    contracts,
		RPS:          cfg.Ledger.RPS,
		Burst:        cfg.Ledger.Burst,
		Retry:        retry.DefaultConfig(),
		FeedDecimals: cfg.Ledger.FeedDecimals,
		FallbackRate: cfg.Ledger.FallbackRate,
	}, logger)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("init ledger source: %w", err)
	}

	var (
		observers []reorg.RollbackObserver
		archive   ingester.SnapshotArchive
	)
	if cfg.Clickhouse.DSN != "" {
		idx.chRepo, err = clickhouse.NewRepository(cfg.Clickhouse.DSN, metrics.NewClickhouseRepository())
		if err != nil {
			idx.Close()
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		idx.Archive = clickhouse.NewArchive(idx.chRepo, metrics.NewSnapshotArchive(), batcher.Config{
			Size:             cfg.Clickhouse.BatchSize,
			Interval:         cfg.Clickhouse.FlushInterval,
			FlushesPerSecond: cfg.Clickhouse.FlushesPerSecond,
		}, logger)
		observers = append(observers, idx.Archive)
		archive = idx.Archive
	}
	if c.Cache != nil {
		observers = append(observers, c.Cache)
	}

	guard, err := reorg.NewGuard(source, c.Repo, c.Coordinator, metrics.NewReorgGuard(), reorg.Config{
		Partition:         cfg.Reorg.Partition,
		ConfirmationDepth: cfg.Reorg.ConfirmationDepth,
		StartBlock:        cfg.Reorg.StartBlock,
		MaxReorgDepth:     cfg.Reorg.MaxReorgDepth,
		LockWait:          cfg.Reorg.LockWait,
	}, logger, observers...)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("init reorg guard: %w", err)
	}

	idx.Service, err = ingester.NewService(ingester.Dependencies{
		Source:    source,
		Guard:     guard,
		Tiers:     c.Tiers,
		Locker:    c.Coordinator,
		Events:    c.Repo,
		Tokens:    c.Repo,
		BadRanges: c.Repo,
		Archive:   archive,
		Metrics:   metrics.NewIngestionRun(),
	}, ingester.Config{
		WorkerCount:          cfg.Ingester.WorkerCount,
		BatchLimit:           cfg.Ingester.BatchLimit,
		MaxBlockRange:        cfg.Ingester.MaxBlockRange,
		MaxRangeAttempts:     cfg.Ingester.MaxRangeAttempts,
		RunBudget:            cfg.Ingester.RunBudget,
		RenewEvery:           cfg.Ingester.RenewEvery,
		BackfillWait:         cfg.Ingester.BackfillWait,
		CarryForwardInterval: cfg.Ingester.CarryForwardInterval,
	}, logger)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("init ingester: %w", err)
	}
	return idx, nil
}

// Start begins background archive flushing.
func (i *Indexer) Start(ctx context.Context) {
	if i.Archive != nil {
		i.Archive.Start(ctx)
	}
}

// Close drains the archive and closes ledger and ClickHouse connections.
func (i *Indexer) Close() {
	if i.Archive != nil {
		i.Archive.Stop()
	}
	if i.chRepo != nil {
		if err := i.chRepo.Close(); err != nil {
			i.logger.Warn("close clickhouse repository", zap.Error(err))
		}
	}
	i.client.Close()
}

// StartMetricsServer serves /metrics on addr until ctx is done.
func StartMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	Serve(ctx, "metrics", &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, logger)
}

// Serve runs srv in the background and shuts it down once ctx is done.
func Serve(ctx context.Context, name string, srv *http.Server, logger *zap.Logger) {
	go func() {
		logger.Info("starting "+name+" server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(name+" server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown "+name+" server", zap.Error(err))
		}
	}()
}

// ListenAndServe runs srv until ctx is done or the server fails.
func ListenAndServe(ctx context.Context, name string, srv *http.Server, logger *zap.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting "+name+" server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
