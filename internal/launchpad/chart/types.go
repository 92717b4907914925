package chart

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	SnapshotRepository interface {
		TokenByAddress(ctx context.Context, address string) (*model.Token, error)
		CountSnapshots(ctx context.Context, address string, from, to time.Time) (int, error)
		SnapshotSeries(ctx context.Context, address string, from, to time.Time, stride int) ([]model.PriceSnapshot, error)
	}
	Cache interface {
		Get(ctx context.Context, key string) (*Series, error)
		Set(ctx context.Context, key string, series Series, ttl time.Duration) error
		Generation(ctx context.Context) (int64, error)
		Invalidate(ctx context.Context) error
	}
	Metrics interface {
		ObserveSample(err error, points int, cached bool, started time.Time)
	}
)
