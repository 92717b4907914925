package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/chart"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ingester"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ingester interface {
		RunIngestion(ctx context.Context, req ingester.Request) (ingester.Result, error)
		Backfill(ctx context.Context, address string) (ingester.Result, error)
	}
	ChartSampler interface {
		Sample(ctx context.Context, address string, hoursBack, maxPoints int) (chart.Series, error)
	}
	LockService interface {
		Acquire(ctx context.Context, resourceKey string, timeout time.Duration) (coordinator.Ticket, error)
		CheckReady(ctx context.Context, requestID string) (coordinator.Readiness, error)
		Renew(ctx context.Context, requestID string, extension time.Duration) error
		Release(ctx context.Context, requestID string) error
		ReleaseResource(ctx context.Context, resourceKey string) error
	}
	BadRangeLister interface {
		BadRanges(ctx context.Context, skippedOnly bool, limit int) ([]model.BadRange, error)
	}
	HealthChecker interface {
		Ping(ctx context.Context) error
	}
	Metrics interface {
		ObserveRequest(route, method string, status int, started time.Time)
	}
)
