// Package redis caches rendered chart series. Keys embed a generation counter; bumping it
// after a rollback orphans every cached series at once and lets TTLs reclaim them.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/chart"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const generationKey = "chart:generation"

// Options configures the Redis connection.
type Options struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type ChartCache struct {
	client  *goredis.Client
	metrics Metrics
	logger  *zap.Logger
}

// NewChartCache connects to Redis and verifies the connection.
func NewChartCache(ctx context.Context, opts Options, metrics Metrics, logger *zap.Logger) (*ChartCache, error) {
	if opts.URL == "" {
		return nil, errors.New("redis url is required")
	}
	if metrics == nil {
		return nil, errors.New("redis metrics is required")
	}

	parsed, err := goredis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		parsed.PoolSize = opts.PoolSize
	}
	if opts.DialTimeout > 0 {
		parsed.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		parsed.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		parsed.WriteTimeout = opts.WriteTimeout
	}
	client := goredis.NewClient(parsed)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", parsed.Addr, err)
	}

	logger = logger.Named("chart_cache")
	logger.Info("connected to redis", zap.String("addr", parsed.Addr), zap.Int("db", parsed.DB))
	return &ChartCache{client: client, metrics: metrics, logger: logger}, nil
}

func (c *ChartCache) Close() error {
	return c.client.Close()
}

// Get returns the cached series or nil on a miss.
func (c *ChartCache) Get(ctx context.Context, key string) (*chart.Series, error) {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("get", err, start) }()

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var series chart.Series
	if err = json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("decode cached series %s: %w", key, err)
	}
	return &series, nil
}

func (c *ChartCache) Set(ctx context.Context, key string, series chart.Series, ttl time.Duration) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("set", err, start) }()

	raw, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	if err = c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Generation returns the current cache generation; zero before the first invalidation.
func (c *ChartCache) Generation(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("generation", err, start) }()

	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, goredis.Nil) {
		err = nil
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read generation: %w", err)
	}
	return gen, nil
}

func (c *ChartCache) Invalidate(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { c.metrics.Observe("invalidate", err, start) }()

	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("bump generation: %w", err)
	}
	c.logger.Info("chart cache invalidated", zap.Int64("generation", gen))
	return nil
}

// OnRollback invalidates every cached series; rolled back snapshots may appear in any of them.
func (c *ChartCache) OnRollback(ctx context.Context, _ uint64) error {
	return c.Invalidate(ctx)
}
