package ingester

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ledger"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// globalProcessor ingests the contract-wide event kinds of a block range.
type globalProcessor struct {
	source  LedgerSource
	repo    EventRepository
	archive SnapshotArchive
	skip    *skipList
	metrics Metrics
	logger  *zap.Logger
}

type globalLog struct {
	kind model.EventKind
	log  types.Log
}

// Process fetches launches, locks, unlocks and burns of r and writes them in block order.
// A range that cannot be fetched fails the call unless the skip list gave up on it. Logs
// from a block that left the canonical chain fail the call with ErrBranchChanged before
// anything is written.
func (p *globalProcessor) Process(ctx context.Context, r model.BlockRange) (processed, failed int, err error) {
	var pending []globalLog
	for _, kind := range model.GlobalEventKinds {
		logs, err := p.source.Logs(ctx, kind, nil, r)
		if err != nil {
			if ctx.Err() != nil {
				return processed, failed, ctx.Err()
			}
			skipped, skipErr := p.skip.Fail(ctx, globalScope, kind, r, err)
			if skipErr != nil {
				return processed, failed, skipErr
			}
			if !skipped {
				return processed, failed, err
			}
			failed++
			continue
		}
		p.skip.Succeed(ctx, globalScope, kind, r)
		for _, lg := range logs {
			pending = append(pending, globalLog{kind: kind, log: lg})
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].log, pending[j].log
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		return a.Index < b.Index
	})

	// nothing is written unless every log is on the canonical chain
	clock := newBlockClock(p.source)
	for _, pl := range pending {
		if err := clock.Verify(ctx, pl.log); err != nil {
			return processed, failed, err
		}
	}

	w := &globalWriter{p: p}
	for _, pl := range pending {
		ts, err := clock.At(ctx, pl.log.BlockNumber)
		if err != nil {
			return processed, failed, err
		}
		if err := w.add(ctx, pl, ts); err != nil {
			if ctx.Err() != nil || !isMalformed(err) {
				return processed, failed, err
			}
			failed++
			p.metrics.ObserveMalformed(pl.kind)
			p.logger.Warn("skipping malformed log",
				zap.String("kind", string(pl.kind)),
				zap.String("tx", pl.log.TxHash.Hex()),
				zap.Uint("index", pl.log.Index),
				zap.Error(err))
		}
	}
	n, err := w.flush(ctx)
	processed = w.written + n
	return processed, failed, err
}

// globalWriter groups consecutive events of one kind so rows are written in the order
// they happened.
type globalWriter struct {
	p       *globalProcessor
	kind    model.EventKind
	written int

	tokens    []model.Token
	snapshots []model.PriceSnapshot
	locks     []model.LockRecord
	unlocks   []model.UnlockEvent
	burns     []model.BurnEvent
}

func (w *globalWriter) add(ctx context.Context, pl globalLog, ts time.Time) error {
	if w.kind != "" && w.kind != pl.kind {
		n, err := w.flush(ctx)
		if err != nil {
			return err
		}
		w.written += n
	}
	w.kind = pl.kind

	switch pl.kind {
	case model.EventLaunch:
		ev, err := ledger.DecodeLaunch(pl.log, ts)
		if err != nil {
			return err
		}
		displayRate, err := w.p.source.RateAt(ctx, ev.BlockNumber)
		if err != nil {
			return fmt.Errorf("display rate at %d: %w", ev.BlockNumber, err)
		}
		token, err := model.NewToken(ev, displayRate)
		if err != nil {
			return fmt.Errorf("%w: %v", ledger.ErrMalformedLog, err)
		}
		w.tokens = append(w.tokens, token)
		w.snapshots = append(w.snapshots, model.PriceSnapshot{
			TokenAddress: token.Address,
			PriceNative:  token.LaunchPriceNative,
			EthReserve:   ev.EthReserve,
			TokenReserve: ev.TokenReserve,
			DisplayRate:  displayRate,
			BlockNumber:  ev.BlockNumber,
			Timestamp:    ev.Timestamp,
		})
	case model.EventLock:
		rec, err := ledger.DecodeLock(pl.log, ts)
		if err != nil {
			return err
		}
		w.locks = append(w.locks, rec)
	case model.EventUnlock:
		ev, err := ledger.DecodeUnlock(pl.log, ts)
		if err != nil {
			return err
		}
		w.unlocks = append(w.unlocks, ev)
	case model.EventBurn:
		ev, err := ledger.DecodeBurn(pl.log, ts)
		if err != nil {
			return err
		}
		w.burns = append(w.burns, ev)
	}
	return nil
}

func (w *globalWriter) flush(ctx context.Context) (int, error) {
	var (
		written int
		err     error
	)
	switch w.kind {
	case model.EventLaunch:
		if len(w.tokens) == 0 {
			break
		}
		if _, err = w.p.repo.InsertTokens(ctx, w.tokens); err != nil {
			return 0, fmt.Errorf("insert tokens: %w", err)
		}
		if _, err = w.p.repo.InsertSnapshots(ctx, w.snapshots); err != nil {
			return 0, fmt.Errorf("insert launch snapshots: %w", err)
		}
		archiveSnapshots(ctx, w.p.archive, w.snapshots, w.p.logger)
		written = len(w.tokens)
		w.tokens, w.snapshots = nil, nil
	case model.EventLock:
		if len(w.locks) == 0 {
			break
		}
		if _, err = w.p.repo.InsertLocks(ctx, w.locks); err != nil {
			return 0, fmt.Errorf("insert locks: %w", err)
		}
		written = len(w.locks)
		w.locks = nil
	case model.EventUnlock:
		if len(w.unlocks) == 0 {
			break
		}
		if _, err = w.p.repo.MarkLocksWithdrawn(ctx, w.unlocks); err != nil {
			return 0, fmt.Errorf("mark withdrawn: %w", err)
		}
		written = len(w.unlocks)
		w.unlocks = nil
	case model.EventBurn:
		if len(w.burns) == 0 {
			break
		}
		if _, err = w.p.repo.InsertBurns(ctx, w.burns); err != nil {
			return 0, fmt.Errorf("insert burns: %w", err)
		}
		written = len(w.burns)
		w.burns = nil
	}
	if written > 0 {
		w.p.metrics.ObserveEvents(w.kind, written)
	}
	return written, nil
}
