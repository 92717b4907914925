package clickhouse

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/goodnatureofminers/launchpad-indexer/pkg/batcher"
	"go.uber.org/zap"
)

type queuedSnapshot struct {
	snapshot model.PriceSnapshot
	epoch    uint64
}

type fence struct {
	epoch     uint64
	fromBlock uint64
}

// Archive buffers snapshots and writes them to ClickHouse in batches. A rollback fences
// off snapshots that were queued before it and sit at or above the fork, so a late flush
// cannot resurrect orphaned rows.
type Archive struct {
	writer  SnapshotWriter
	metrics ArchiveMetrics
	logger  *zap.Logger
	batcher *batcher.Batcher[queuedSnapshot]

	mu     sync.Mutex
	epoch  uint64
	fences []fence
}

// NewArchive constructs an Archive. Start must be called before Add.
func NewArchive(writer SnapshotWriter, metrics ArchiveMetrics, cfg batcher.Config, logger *zap.Logger) *Archive {
	a := &Archive{
		writer:  writer,
		metrics: metrics,
		logger:  logger.Named("snapshot_archive"),
	}
	a.batcher = batcher.New[queuedSnapshot](a.logger, a.flush, cfg)
	a.batcher.OnError(func(batch []queuedSnapshot, _ error) {
		a.metrics.ObserveDropped(len(batch), "write_failed")
	})
	return a
}

func (a *Archive) Start(ctx context.Context) {
	a.batcher.Start(ctx)
}

// Stop flushes queued snapshots and stops the background loop.
func (a *Archive) Stop() {
	a.batcher.Stop()
}

// Add queues one snapshot for archiving.
func (a *Archive) Add(ctx context.Context, snapshot model.PriceSnapshot) error {
	a.mu.Lock()
	epoch := a.epoch
	a.mu.Unlock()
	return a.batcher.Add(ctx, queuedSnapshot{snapshot: snapshot, epoch: epoch})
}

// OnRollback deletes archived rows at or above fromBlock and fences queued ones.
func (a *Archive) OnRollback(ctx context.Context, fromBlock uint64) error {
	a.mu.Lock()
	a.epoch++
	a.fences = append(a.fences, fence{epoch: a.epoch, fromBlock: fromBlock})
	a.mu.Unlock()
	return a.writer.OnRollback(ctx, fromBlock)
}

func (a *Archive) flush(ctx context.Context, batch []queuedSnapshot) error {
	a.mu.Lock()
	fences := append([]fence(nil), a.fences...)
	a.mu.Unlock()

	live := make([]model.PriceSnapshot, 0, len(batch))
	for _, q := range batch {
		if fenced(fences, q) {
			continue
		}
		live = append(live, q.snapshot)
	}
	if dropped := len(batch) - len(live); dropped > 0 {
		a.logger.Info("dropped snapshots orphaned by rollback", zap.Int("count", dropped))
		a.metrics.ObserveDropped(dropped, "rolled_back")
	}
	if len(live) == 0 {
		return nil
	}
	if err := a.writer.InsertSnapshots(ctx, live); err != nil {
		return err
	}
	a.metrics.ObserveArchived(len(live))
	return nil
}

func fenced(fences []fence, q queuedSnapshot) bool {
	for _, f := range fences {
		if f.epoch > q.epoch && q.snapshot.BlockNumber >= f.fromBlock {
			return true
		}
	}
	return false
}
