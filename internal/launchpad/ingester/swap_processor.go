package ingester

import (
	"context"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ledger"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// swapProcessor ingests the swaps of one token's pool and derives its price snapshots.
type swapProcessor struct {
	source        LedgerSource
	repo          EventRepository
	tokens        TokenRepository
	tiers         TierService
	archive       SnapshotArchive
	skip          *skipList
	metrics       Metrics
	maxBlockRange uint64
	logger        *zap.Logger
}

// Process ingests swaps in (token.LastCheckedBlock, cursor] chunk by chunk and moves the
// token checkpoint after every chunk, so an interrupted run resumes where it stopped.
// A checkpoint only moves while cursor is still on the canonical chain; once a rollback
// rewinds it, Process stops with ErrCursorRewound.
func (p *swapProcessor) Process(ctx context.Context, token model.Token, cursor model.Checkpoint) (processed, failed int, err error) {
	if token.LastCheckedBlock >= cursor.BlockNumber {
		return 0, 0, nil
	}
	r := model.BlockRange{From: token.LastCheckedBlock + 1, To: cursor.BlockNumber}
	logger := p.logger.With(zap.String("token", token.Address))
	clock := newBlockClock(p.source)

	for _, chunk := range r.Chunks(p.maxBlockRange) {
		if err := ctx.Err(); err != nil {
			return processed, failed, err
		}

		n, bad, err := p.processChunk(ctx, token, chunk, clock, logger)
		processed += n
		failed += bad
		if err != nil {
			return processed, failed, err
		}
		advanced, err := p.tokens.AdvanceTokenCheckpoint(ctx, token.Address, chunk.To, cursor)
		if err != nil {
			return processed, failed, fmt.Errorf("advance checkpoint of %s: %w", token.Address, err)
		}
		if !advanced {
			logger.Info("cursor rewound during the run", zap.Uint64("cursor", cursor.BlockNumber), zap.Uint64("chunk_to", chunk.To))
			return processed, failed, ErrCursorRewound
		}
	}
	return processed, failed, nil
}

func (p *swapProcessor) processChunk(ctx context.Context, token model.Token, chunk model.BlockRange, clock *blockClock, logger *zap.Logger) (int, int, error) {
	logs, err := p.source.Logs(ctx, model.EventSwap, []string{token.PoolAddress}, chunk)
	if err != nil {
		if ctx.Err() != nil {
			return 0, 0, ctx.Err()
		}
		skipped, skipErr := p.skip.Fail(ctx, token.Address, model.EventSwap, chunk, err)
		if skipErr != nil {
			return 0, 0, skipErr
		}
		if skipped {
			return 0, 1, nil
		}
		return 0, 0, err
	}
	p.skip.Succeed(ctx, token.Address, model.EventSwap, chunk)
	if len(logs) == 0 {
		return 0, 0, nil
	}

	for _, lg := range logs {
		if err := clock.Verify(ctx, lg); err != nil {
			return 0, 0, err
		}
	}

	failed := 0
	swaps := make([]model.SwapEvent, 0, len(logs))
	for _, lg := range logs {
		ts, err := clock.At(ctx, lg.BlockNumber)
		if err != nil {
			return 0, failed, err
		}
		sw, err := ledger.DecodeSwap(lg, ts, token)
		if err != nil {
			failed++
			p.metrics.ObserveMalformed(model.EventSwap)
			logger.Warn("skipping malformed swap", zap.String("tx", lg.TxHash.Hex()), zap.Error(err))
			continue
		}
		swaps = append(swaps, sw)
	}
	if len(swaps) == 0 {
		return 0, failed, nil
	}
	sortSwaps(swaps)

	if _, err := p.repo.InsertSwaps(ctx, swaps); err != nil {
		return 0, failed, fmt.Errorf("insert swaps: %w", err)
	}
	p.metrics.ObserveEvents(model.EventSwap, len(swaps))

	snapshots, bad, err := p.snapshots(ctx, swaps)
	failed += bad
	if err != nil {
		return len(swaps), failed, err
	}
	if _, err := p.repo.InsertSnapshots(ctx, snapshots); err != nil {
		return len(swaps), failed, fmt.Errorf("insert snapshots: %w", err)
	}
	archiveSnapshots(ctx, p.archive, snapshots, logger)

	if err := p.tiers.Promote(ctx, token.Address, swaps[len(swaps)-1].Timestamp); err != nil {
		return len(swaps), failed, err
	}
	return len(swaps), failed, nil
}

// snapshots derives one observation per block from the last swap of that block.
func (p *swapProcessor) snapshots(ctx context.Context, swaps []model.SwapEvent) ([]model.PriceSnapshot, int, error) {
	last := LastSwapPerBlock(swaps)
	out := make([]model.PriceSnapshot, 0, len(last))
	failed := 0
	for _, sw := range last {
		displayRate, err := p.source.RateAt(ctx, sw.BlockNumber)
		if err != nil {
			return nil, failed, fmt.Errorf("display rate at %d: %w", sw.BlockNumber, err)
		}
		snap, err := model.SnapshotFromSwap(sw, displayRate)
		if err != nil {
			failed++
			p.metrics.ObserveMalformed(model.EventSwap)
			continue
		}
		out = append(out, snap)
	}
	return out, failed, nil
}

func sortSwaps(swaps []model.SwapEvent) {
	sort.SliceStable(swaps, func(i, j int) bool {
		if swaps[i].BlockNumber != swaps[j].BlockNumber {
			return swaps[i].BlockNumber < swaps[j].BlockNumber
		}
		return swaps[i].LogIndex < swaps[j].LogIndex
	})
}

// LastSwapPerBlock keeps, for every block, the swap with the highest log index. The
// input must be sorted by block and log index.
func LastSwapPerBlock(swaps []model.SwapEvent) []model.SwapEvent {
	out := make([]model.SwapEvent, 0, len(swaps))
	for _, sw := range swaps {
		if n := len(out); n > 0 && out[n-1].BlockNumber == sw.BlockNumber {
			out[n-1] = sw
			continue
		}
		out = append(out, sw)
	}
	return out
}
