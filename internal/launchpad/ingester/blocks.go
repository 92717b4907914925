package ingester

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// blockClock resolves canonical block headers once per run.
type blockClock struct {
	source LedgerSource

	mu   sync.Mutex
	refs map[uint64]model.BlockRef
}

func newBlockClock(source LedgerSource) *blockClock {
	return &blockClock{source: source, refs: make(map[uint64]model.BlockRef)}
}

func (c *blockClock) Ref(ctx context.Context, block uint64) (model.BlockRef, error) {
	c.mu.Lock()
	ref, ok := c.refs[block]
	c.mu.Unlock()
	if ok {
		return ref, nil
	}

	ref, err := c.source.BlockAt(ctx, block)
	if err != nil {
		return model.BlockRef{}, fmt.Errorf("block %d: %w", block, err)
	}
	c.mu.Lock()
	c.refs[block] = ref
	c.mu.Unlock()
	return ref, nil
}

func (c *blockClock) At(ctx context.Context, block uint64) (time.Time, error) {
	ref, err := c.Ref(ctx, block)
	if err != nil {
		return time.Time{}, err
	}
	return ref.Timestamp, nil
}

// Verify fails with ErrBranchChanged when lg was emitted in a block the ledger no longer
// considers canonical.
func (c *blockClock) Verify(ctx context.Context, lg types.Log) error {
	ref, err := c.Ref(ctx, lg.BlockNumber)
	if err != nil {
		return err
	}
	if got := lg.BlockHash.Hex(); got != ref.Hash {
		return fmt.Errorf("%w: block %d log hash %s, canonical %s", ErrBranchChanged, lg.BlockNumber, got, ref.Hash)
	}
	return nil
}
