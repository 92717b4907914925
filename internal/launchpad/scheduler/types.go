package scheduler

import (
	"context"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ingester"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ingester interface {
		RunIngestion(ctx context.Context, req ingester.Request) (ingester.Result, error)
	}
	TierRecomputer interface {
		Recompute(ctx context.Context) (int, error)
	}
	Reaper interface {
		Reap(ctx context.Context) error
	}
)
