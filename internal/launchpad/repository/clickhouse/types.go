package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
	SnapshotWriter interface {
		InsertSnapshots(ctx context.Context, snapshots []model.PriceSnapshot) error
		OnRollback(ctx context.Context, fromBlock uint64) error
	}
	ArchiveMetrics interface {
		ObserveArchived(count int)
		ObserveDropped(count int, reason string)
	}
)
