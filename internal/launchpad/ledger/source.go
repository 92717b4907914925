// Package ledger reads launchpad events and block data from an EVM node.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/retry"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/safe"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config tunes the node boundary.
type Config struct {
	Contracts    Contracts
	RPS          float64
	Burst        int
	Retry        retry.Config
	FeedDecimals int32
	FallbackRate float64
}

// Source wraps an EthClient with throttling, bounded retries and metrics.
type Source struct {
	client  EthClient
	metrics Metrics
	limiter *rate.Limiter
	cfg     Config
	logger  *zap.Logger

	rateMu    sync.Mutex
	rateCache map[uint64]float64
}

// NewSource constructs a Source.
func NewSource(client EthClient, metrics Metrics, cfg Config, logger *zap.Logger) (*Source, error) {
	if client == nil {
		return nil, errors.New("eth client is required")
	}
	if metrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	if cfg.FeedDecimals <= 0 {
		cfg.FeedDecimals = defaultFeedDecimals
	}
	return &Source{
		client:    client,
		metrics:   metrics,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cfg:       cfg,
		logger:    logger.Named("ledger"),
		rateCache: make(map[uint64]float64),
	}, nil
}

func (s *Source) call(ctx context.Context, operation string, fn func() error) error {
	return retry.WithBackoff(ctx, s.cfg.Retry, s.logger, operation, func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return retry.Permanent(err)
		}
		start := time.Now()
		err := fn()
		s.metrics.Observe(operation, err, start)
		if errors.Is(err, ethereum.NotFound) {
			return retry.Permanent(model.ErrNotFound)
		}
		return err
	})
}

// Head returns the latest block.
func (s *Source) Head(ctx context.Context) (model.BlockRef, error) {
	return s.header(ctx, "head", nil)
}

// BlockAt returns the canonical block at number; model.ErrNotFound when the chain is shorter.
func (s *Source) BlockAt(ctx context.Context, number uint64) (model.BlockRef, error) {
	return s.header(ctx, "block_at", new(big.Int).SetUint64(number))
}

func (s *Source) header(ctx context.Context, operation string, number *big.Int) (model.BlockRef, error) {
	var h *types.Header
	err := s.call(ctx, operation, func() error {
		var err error
		h, err = s.client.HeaderByNumber(ctx, number)
		return err
	})
	if err != nil {
		return model.BlockRef{}, err
	}
	if h == nil {
		return model.BlockRef{}, model.ErrNotFound
	}
	ts, err := safe.Int64(h.Time)
	if err != nil {
		return model.BlockRef{}, fmt.Errorf("block %s timestamp: %w", h.Number, err)
	}
	return model.BlockRef{
		Number:    h.Number.Uint64(),
		Hash:      h.Hash().Hex(),
		Timestamp: time.Unix(ts, 0).UTC(),
	}, nil
}

// Logs returns the logs of one event kind in the inclusive range. Global kinds are read
// from the configured contracts; swaps are read from the given pool addresses.
func (s *Source) Logs(ctx context.Context, kind model.EventKind, addresses []string, r model.BlockRange) ([]types.Log, error) {
	q := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(r.From),
		ToBlock:   new(big.Int).SetUint64(r.To),
	}
	switch kind {
	case model.EventLaunch:
		q.Addresses, q.Topics = []common.Address{s.cfg.Contracts.Launchpad}, [][]common.Hash{{topicTokenLaunched}}
	case model.EventBurn:
		q.Addresses, q.Topics = []common.Address{s.cfg.Contracts.Launchpad}, [][]common.Hash{{topicTokensBurned}}
	case model.EventLock:
		q.Addresses, q.Topics = []common.Address{s.cfg.Contracts.Locker}, [][]common.Hash{{topicLocked}}
	case model.EventUnlock:
		q.Addresses, q.Topics = []common.Address{s.cfg.Contracts.Locker}, [][]common.Hash{{topicWithdrawn}}
	case model.EventSwap:
		if len(addresses) == 0 {
			return nil, errors.New("swap logs need pool addresses")
		}
		for _, a := range addresses {
			q.Addresses = append(q.Addresses, common.HexToAddress(a))
		}
		q.Topics = [][]common.Hash{{topicSwap}}
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}

	var logs []types.Log
	err := s.call(ctx, "filter_logs_"+string(kind), func() error {
		var err error
		logs, err = s.client.FilterLogs(ctx, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s logs %d-%d: %w", kind, r.From, r.To, err)
	}
	return logs, nil
}

// RateAt returns the display-currency rate of the native asset as of block. Without a
// price feed, or when the feed cannot be read, the configured fallback rate is used.
func (s *Source) RateAt(ctx context.Context, block uint64) (float64, error) {
	if s.cfg.Contracts.PriceFeed == (common.Address{}) {
		return s.fallbackRate()
	}

	s.rateMu.Lock()
	cached, ok := s.rateCache[block]
	s.rateMu.Unlock()
	if ok {
		return cached, nil
	}

	r, err := s.feedRate(ctx, block)
	if err != nil {
		if ctx.Err() != nil {
			return 0, err
		}
		s.logger.Warn("price feed unavailable, using fallback rate", zap.Uint64("block", block), zap.Error(err))
		return s.fallbackRate()
	}

	s.rateMu.Lock()
	if len(s.rateCache) >= rateCacheSize {
		s.rateCache = make(map[uint64]float64)
	}
	s.rateCache[block] = r
	s.rateMu.Unlock()
	return r, nil
}

func (s *Source) fallbackRate() (float64, error) {
	if s.cfg.FallbackRate <= 0 {
		return 0, errors.New("no price feed and no fallback rate configured")
	}
	return s.cfg.FallbackRate, nil
}

func (s *Source) feedRate(ctx context.Context, block uint64) (float64, error) {
	data, err := aggregatorABI.Pack("latestRoundData")
	if err != nil {
		return 0, err
	}
	feed := s.cfg.Contracts.PriceFeed
	var out []byte
	err = s.call(ctx, "latest_round_data", func() error {
		var err error
		out, err = s.client.CallContract(ctx, ethereum.CallMsg{To: &feed, Data: data}, new(big.Int).SetUint64(block))
		return err
	})
	if err != nil {
		return 0, err
	}
	return ParseRoundAnswer(out, s.cfg.FeedDecimals)
}
