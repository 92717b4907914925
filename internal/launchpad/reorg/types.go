package reorg

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainSource interface {
		Head(ctx context.Context) (model.BlockRef, error)
		BlockAt(ctx context.Context, number uint64) (model.BlockRef, error)
	}
	StateRepository interface {
		IndexerState(ctx context.Context, partition string) (*model.IndexerState, error)
		InitIndexerState(ctx context.Context, state model.IndexerState) (bool, error)
		Checkpoints(ctx context.Context, partition string, atOrBelow uint64, limit int) ([]model.Checkpoint, error)
		AdvanceCursor(ctx context.Context, expectedLastBlock uint64, state model.IndexerState) (bool, error)
		Rollback(ctx context.Context, partition string, agreement model.Checkpoint) (model.RollbackStats, error)
	}
	Locker interface {
		WithLock(ctx context.Context, resourceKey string, opts coordinator.LockOptions, fn func(context.Context) error) error
	}
	RollbackObserver interface {
		OnRollback(ctx context.Context, fromBlock uint64) error
	}
	Metrics interface {
		ObserveSync(err error, started time.Time)
		ObserveRollback(depth uint64, rows int64)
	}
)
