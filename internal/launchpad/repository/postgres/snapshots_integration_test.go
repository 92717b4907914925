package postgres

import (
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

func (s *RepositorySuite) TestObservedSnapshotReplacesInterpolated() {
	token := newToken("0xaa", 90)
	carried := newSnapshot(token, 100, 1)
	carried.Interpolated = true
	_, err := s.repo.InsertSnapshots(s.testCtx, []model.PriceSnapshot{carried})
	s.Require().NoError(err)

	observed := newSnapshot(token, 100, 2)
	n, err := s.repo.InsertSnapshots(s.testCtx, []model.PriceSnapshot{observed})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	n, err = s.repo.InsertSnapshots(s.testCtx, []model.PriceSnapshot{carried})
	s.Require().NoError(err)
	s.Equal(int64(0), n)

	latest, err := s.repo.LatestSnapshot(s.testCtx, "0xaa")
	s.Require().NoError(err)
	s.False(latest.Interpolated)
	s.Equal(2.0, latest.PriceNative)
	s.Equal("2000", latest.EthReserve.String())

	_, err = s.repo.LatestSnapshot(s.testCtx, "0xmissing")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RepositorySuite) TestSnapshotSeriesIsStridedAndKeepsTheLast() {
	token := newToken("0xaa", 0)
	var snaps []model.PriceSnapshot
	for block := uint64(1); block <= 10; block++ {
		snaps = append(snaps, newSnapshot(token, block, float64(block)))
	}
	_, err := s.repo.InsertSnapshots(s.testCtx, snaps)
	s.Require().NoError(err)

	from, to := suiteTime, suiteTime.Add(time.Hour)
	count, err := s.repo.CountSnapshots(s.testCtx, "0xaa", from, to)
	s.Require().NoError(err)
	s.Equal(10, count)

	series, err := s.repo.SnapshotSeries(s.testCtx, "0xaa", from, to, 4)
	s.Require().NoError(err)
	var blocks []uint64
	for _, p := range series {
		blocks = append(blocks, p.BlockNumber)
	}
	s.Equal([]uint64{1, 5, 9, 10}, blocks)
}
