package postgres

import (
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/shopspring/decimal"
)

func (s *RepositorySuite) TestOverlappingSwapBatchesStoreEachHashOnce() {
	token := newToken("0xaa", 90)
	first := []model.SwapEvent{newSwap(token, "0xabc", 100), newSwap(token, "0xdef", 105)}
	second := []model.SwapEvent{newSwap(token, "0xabc", 100), newSwap(token, "0x123", 110)}

	n, err := s.repo.InsertSwaps(s.testCtx, first)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.repo.InsertSwaps(s.testCtx, second)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	var count int64
	s.Require().NoError(s.repo.pool.QueryRow(s.testCtx, `SELECT count(*) FROM swaps WHERE tx_hash = $1`, "0xabc").Scan(&count))
	s.Equal(int64(1), count)
	s.Equal(int64(3), s.countRows("swaps"))

	var amountOut string
	s.Require().NoError(s.repo.pool.QueryRow(s.testCtx, `SELECT amount_out::text FROM swaps WHERE tx_hash = $1`, "0xabc").Scan(&amountOut))
	s.Equal("123456789012345678901234567890", amountOut)
}

func (s *RepositorySuite) TestLocksAreWithdrawnOnce() {
	lock := model.LockRecord{
		LockID:       "7",
		Owner:        "0xowner",
		TokenAddress: "0xaa",
		Amount:       decimal.NewFromInt(1_000),
		Duration:     24 * time.Hour,
		LockedAt:     suiteTime,
		UnlockAt:     suiteTime.Add(24 * time.Hour),
		LockTxHash:   "0xlock",
		BlockNumber:  100,
	}
	n, err := s.repo.InsertLocks(s.testCtx, []model.LockRecord{lock, lock})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	unlock := model.UnlockEvent{EventMeta: model.EventMeta{TxHash: "0xunlock", BlockNumber: 200}, LockID: "7", Owner: "0xowner"}
	n, err = s.repo.MarkLocksWithdrawn(s.testCtx, []model.UnlockEvent{unlock})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	replay := unlock
	replay.TxHash, replay.BlockNumber = "0xother", 300
	n, err = s.repo.MarkLocksWithdrawn(s.testCtx, []model.UnlockEvent{replay})
	s.Require().NoError(err)
	s.Equal(int64(0), n)

	var (
		withdrawn bool
		tx        string
	)
	s.Require().NoError(s.repo.pool.QueryRow(s.testCtx, `SELECT withdrawn, withdraw_tx_hash FROM locks WHERE lock_id = '7'`).Scan(&withdrawn, &tx))
	s.True(withdrawn)
	s.Equal("0xunlock", tx)
}

func (s *RepositorySuite) TestBurnsAreUniqueByTxHash() {
	burn := model.BurnEvent{
		TokenAddress: "0xaa",
		From:         "0xholder",
		Amount:       decimal.NewFromInt(5),
		TxHash:       "0xburn",
		BlockNumber:  120,
		BlockHash:    "0xblock120",
		Timestamp:    suiteTime,
	}
	n, err := s.repo.InsertBurns(s.testCtx, []model.BurnEvent{burn, burn})
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *RepositorySuite) TestTokensInsertAndTierQueries() {
	hot, quiet := newToken("0xhot", 100), newToken("0xquiet", 101)
	n, err := s.repo.InsertTokens(s.testCtx, []model.Token{hot, quiet, hot})
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	got, err := s.repo.TokenByAddress(s.testCtx, "0xhot")
	s.Require().NoError(err)
	s.Equal(hot.PoolAddress, got.PoolAddress)
	s.Equal(model.TierDormant, got.Tier)
	s.Nil(got.LastSwapAt)

	_, err = s.repo.TokenByAddress(s.testCtx, "0xmissing")
	s.ErrorIs(err, model.ErrNotFound)

	swapAt := suiteTime.Add(time.Hour)
	s.Require().NoError(s.repo.PromoteToken(s.testCtx, "0xhot", swapAt, model.TierHot, swapAt))
	s.Require().NoError(s.repo.PromoteToken(s.testCtx, "0xhot", suiteTime, model.TierCold, swapAt))
	got, err = s.repo.TokenByAddress(s.testCtx, "0xhot")
	s.Require().NoError(err)
	s.Equal(model.TierHot, got.Tier)
	s.True(got.LastSwapAt.Equal(swapAt))

	state := model.IndexerState{Partition: "launchpad", LastBlock: 200, LastHash: "0xh200", ConfirmationDepth: 12, UpdatedAt: suiteTime}
	_, err = s.repo.InitIndexerState(s.testCtx, state)
	s.Require().NoError(err)
	for _, block := range []uint64{150, 120} {
		advanced, err := s.repo.AdvanceTokenCheckpoint(s.testCtx, "0xhot", block, state.Checkpoint())
		s.Require().NoError(err)
		s.True(advanced)
	}
	got, err = s.repo.TokenByAddress(s.testCtx, "0xhot")
	s.Require().NoError(err)
	s.Equal(uint64(150), got.LastCheckedBlock)

	_, err = s.repo.InsertSwaps(s.testCtx, []model.SwapEvent{newSwap(hot, "0x01", 120), newSwap(hot, "0x02", 121)})
	s.Require().NoError(err)
	counts, err := s.repo.CountSwapsSince(s.testCtx, []string{"0xhot", "0xquiet"}, suiteTime)
	s.Require().NoError(err)
	s.Equal(map[string]int64{"0xhot": 2}, counts)

	s.Require().NoError(s.repo.UpdateTokenTiers(s.testCtx, []model.TierUpdate{
		{Address: "0xquiet", Tier: model.TierHot, SwapCount24h: 0, UpdatedAt: swapAt},
		{Address: "0xhot", Tier: model.TierHot, SwapCount24h: 2, UpdatedAt: swapAt},
	}))
	batch, err := s.repo.TokensByTier(s.testCtx, model.TierHot, 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 2)
	s.Equal("0xhot", batch[0].Address)

	stale, err := s.repo.StaleTierTokens(s.testCtx, swapAt.Add(time.Minute), 10)
	s.Require().NoError(err)
	s.Len(stale, 2)
}
