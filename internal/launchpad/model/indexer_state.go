package model

import "time"

// IndexerState is the confirmed cursor of one ingestion partition.
type IndexerState struct {
	Partition         string
	LastBlock         uint64
	LastHash          string
	ConfirmationDepth uint64
	UpdatedAt         time.Time
}

// Checkpoint is the position the cursor holds now.
func (s IndexerState) Checkpoint() Checkpoint {
	return Checkpoint{Partition: s.Partition, BlockNumber: s.LastBlock, BlockHash: s.LastHash}
}

// Checkpoint is a past cursor position kept to locate the fork point after a reorg.
type Checkpoint struct {
	Partition   string
	BlockNumber uint64
	BlockHash   string
}

// BlockRef identifies a block on the canonical chain.
type BlockRef struct {
	Number    uint64
	Hash      string
	Timestamp time.Time
}

// BlockRange is an inclusive block interval.
type BlockRange struct {
	From uint64
	To   uint64
}

// Empty reports whether the range contains no blocks.
func (r BlockRange) Empty() bool {
	return r.From > r.To
}

// Chunks splits the range into consecutive sub-ranges of at most size blocks.
func (r BlockRange) Chunks(size uint64) []BlockRange {
	if r.Empty() || size == 0 {
		return nil
	}
	var out []BlockRange
	for from := r.From; from <= r.To; from += size {
		to := from + size - 1
		if to > r.To || to < from {
			to = r.To
		}
		out = append(out, BlockRange{From: from, To: to})
		if to == r.To {
			break
		}
	}
	return out
}

// BadRange is an entry of the known-bad ledger range list.
type BadRange struct {
	Scope     string
	Kind      EventKind
	FromBlock uint64
	ToBlock   uint64
	Reason    string
	Attempts  int
	Skipped   bool
	UpdatedAt time.Time
}

// RollbackStats counts rows removed or reverted by a rollback.
type RollbackStats struct {
	Tokens      int64
	Swaps       int64
	Locks       int64
	Withdrawals int64
	Burns       int64
	Snapshots   int64
	Checkpoints int64
	BadRanges   int64
}

// Total is the number of affected rows.
func (s RollbackStats) Total() int64 {
	return s.Tokens + s.Swaps + s.Locks + s.Withdrawals + s.Burns + s.Snapshots + s.Checkpoints + s.BadRanges
}
