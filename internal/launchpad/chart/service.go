package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// ErrInvalidRequest is returned for window or budget values outside the allowed range.
var ErrInvalidRequest = errors.New("invalid chart request")

const baselineAge = 24 * time.Hour

// Series is a bounded price history with its since-launch comparison.
type Series struct {
	Token         string    `json:"token"`
	Points        []Point   `json:"points"`
	Baseline      float64   `json:"baseline"`
	BaselineAt    time.Time `json:"baseline_at"`
	Last          float64   `json:"last"`
	ChangePercent float64   `json:"change_percent"`
}

// Config bounds chart requests.
type Config struct {
	NoiseThreshold float64
	MaxPoints      int
	MaxHours       int
	CacheTTL       time.Duration
}

// Service answers chart queries from persisted price snapshots.
type Service struct {
	repo    SnapshotRepository
	cache   Cache
	metrics Metrics
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewService constructs a chart Service. cache may be nil.
func NewService(repo SnapshotRepository, cache Cache, metrics Metrics, cfg Config, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("snapshot repository is required")
	}
	if metrics == nil {
		return nil, errors.New("chart metrics is required")
	}
	if cfg.NoiseThreshold <= 0 {
		cfg.NoiseThreshold = defaultNoiseThreshold
	}
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = defaultMaxPoints
	}
	if cfg.MaxHours <= 0 {
		cfg.MaxHours = defaultMaxHours
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger.Named("chart"),
		now:     time.Now,
	}, nil
}

// Sample returns at most maxPoints points of the token's price over the last hoursBack
// hours, including the launch anchor when the token was created inside the window.
func (s *Service) Sample(ctx context.Context, address string, hoursBack, maxPoints int) (Series, error) {
	start := time.Now()
	var (
		series Series
		cached bool
		err    error
	)
	defer func() { s.metrics.ObserveSample(err, len(series.Points), cached, start) }()

	if hoursBack <= 0 || hoursBack > s.cfg.MaxHours || maxPoints < 2 || maxPoints > s.cfg.MaxPoints {
		err = fmt.Errorf("%w: hours=%d points=%d", ErrInvalidRequest, hoursBack, maxPoints)
		return Series{}, err
	}
	address = strings.ToLower(address)

	key := s.cacheKey(ctx, address, hoursBack, maxPoints)
	if key != "" {
		hit, cacheErr := s.cache.Get(ctx, key)
		if cacheErr != nil {
			s.logger.Warn("chart cache read failed", zap.Error(cacheErr))
		} else if hit != nil {
			series, cached = *hit, true
			return series, nil
		}
	}

	series, err = s.sample(ctx, address, hoursBack, maxPoints)
	if err != nil {
		return Series{}, err
	}

	if key != "" {
		if cacheErr := s.cache.Set(ctx, key, series, s.cfg.CacheTTL); cacheErr != nil {
			s.logger.Warn("chart cache write failed", zap.Error(cacheErr))
		}
	}
	return series, nil
}

// Invalidate drops every cached series; called after a rollback rewrites history.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

func (s *Service) sample(ctx context.Context, address string, hoursBack, maxPoints int) (Series, error) {
	token, err := s.repo.TokenByAddress(ctx, address)
	if err != nil {
		return Series{}, fmt.Errorf("load token %s: %w", address, err)
	}

	now := s.now()
	from := now.Add(-time.Duration(hoursBack) * time.Hour)
	withAnchor := !token.CreatedAt.Before(from)
	budget := maxPoints
	if withAnchor {
		budget--
	}

	count, err := s.repo.CountSnapshots(ctx, address, from, now)
	if err != nil {
		return Series{}, fmt.Errorf("count snapshots: %w", err)
	}
	var points []Point
	if count > 0 {
		rows, err := s.repo.SnapshotSeries(ctx, address, from, now, Stride(count, budget))
		if err != nil {
			return Series{}, fmt.Errorf("load snapshots: %w", err)
		}
		points = make([]Point, 0, len(rows))
		for _, r := range rows {
			points = append(points, Point{Time: r.Timestamp, Price: r.DisplayPrice(), Interpolated: r.Interpolated})
		}
	}
	points = FilterNoise(Downsample(fitStrided(points, budget), budget), s.cfg.NoiseThreshold)

	anchor := Point{Time: token.CreatedAt, Price: token.LaunchDisplayPrice(), Anchor: true}
	series := Series{Token: address}
	if withAnchor {
		series.Points = append([]Point{anchor}, points...)
	} else {
		series.Points = points
	}

	baseline := Baseline(anchor, points, now)
	series.Baseline, series.BaselineAt = baseline.Price, baseline.Time
	if len(series.Points) > 0 {
		series.Last = series.Points[len(series.Points)-1].Price
	}
	if series.Baseline != 0 {
		series.ChangePercent = (series.Last - series.Baseline) / series.Baseline * 100
	}
	return series, nil
}

// Baseline selects the reference point of the change figure: the launch anchor while
// the token is younger than a day, afterwards the earliest point at least a day old.
func Baseline(anchor Point, points []Point, now time.Time) Point {
	if now.Sub(anchor.Time) < baselineAge || len(points) == 0 {
		return anchor
	}
	cutoff := now.Add(-baselineAge)
	for _, p := range points {
		if !p.Time.After(cutoff) {
			return p
		}
	}
	return points[0]
}

func (s *Service) cacheKey(ctx context.Context, address string, hoursBack, maxPoints int) string {
	if s.cache == nil {
		return ""
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("chart cache generation unavailable", zap.Error(err))
		return ""
	}
	return fmt.Sprintf("chart:%d:%s:%d:%d", gen, address, hoursBack, maxPoints)
}

// IsNotFound reports whether err means the token is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
