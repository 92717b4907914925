package ingester

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/reorg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	LedgerSource interface {
		BlockAt(ctx context.Context, number uint64) (model.BlockRef, error)
		Logs(ctx context.Context, kind model.EventKind, addresses []string, r model.BlockRange) ([]types.Log, error)
		RateAt(ctx context.Context, block uint64) (float64, error)
	}
	ReorgGuard interface {
		Sync(ctx context.Context) (reorg.SyncResult, error)
		Advance(ctx context.Context, expectedLastBlock uint64, to model.BlockRef) (model.IndexerState, error)
	}
	TierService interface {
		Batch(ctx context.Context, tier model.Tier, limit int) ([]model.Token, error)
		Promote(ctx context.Context, address string, swapAt time.Time) error
	}
	Locker interface {
		WithLock(ctx context.Context, resourceKey string, opts coordinator.LockOptions, fn func(context.Context) error) error
	}
	EventRepository interface {
		InsertTokens(ctx context.Context, tokens []model.Token) (int64, error)
		InsertSwaps(ctx context.Context, swaps []model.SwapEvent) (int64, error)
		InsertLocks(ctx context.Context, locks []model.LockRecord) (int64, error)
		MarkLocksWithdrawn(ctx context.Context, unlocks []model.UnlockEvent) (int64, error)
		InsertBurns(ctx context.Context, burns []model.BurnEvent) (int64, error)
		InsertSnapshots(ctx context.Context, snapshots []model.PriceSnapshot) (int64, error)
	}
	TokenRepository interface {
		TokenByAddress(ctx context.Context, address string) (*model.Token, error)
		AdvanceTokenCheckpoint(ctx context.Context, address string, block uint64, cursor model.Checkpoint) (bool, error)
		LatestSnapshot(ctx context.Context, address string) (*model.PriceSnapshot, error)
	}
	BadRangeRepository interface {
		RecordBadRange(ctx context.Context, r model.BadRange, maxAttempts int) (model.BadRange, error)
		ClearBadRange(ctx context.Context, scope string, kind model.EventKind, fromBlock uint64) error
	}
	SnapshotArchive interface {
		Add(ctx context.Context, snapshot model.PriceSnapshot) error
	}
	Metrics interface {
		ObserveRun(tier model.Tier, err error, started time.Time)
		ObserveEvents(kind model.EventKind, count int)
		ObserveMalformed(kind model.EventKind)
		ObserveBusy(tier model.Tier, queuePosition int)
	}
)
