package ingester

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"go.uber.org/zap"
)

// skipList bounds how often an unfetchable range is retried. A range that keeps failing
// is marked skipped so the cursor can move past it; the record stays for operators.
type skipList struct {
	repo        BadRangeRepository
	maxAttempts int
	logger      *zap.Logger

	mu      sync.Mutex
	suspect map[string]struct{}
}

func newSkipList(repo BadRangeRepository, maxAttempts int, logger *zap.Logger) *skipList {
	return &skipList{
		repo:        repo,
		maxAttempts: maxAttempts,
		logger:      logger.Named("skiplist"),
		suspect:     make(map[string]struct{}),
	}
}

func skipKey(scope string, kind model.EventKind, from uint64) string {
	return fmt.Sprintf("%s/%s/%d", scope, kind, from)
}

// Fail records a failed fetch and reports whether the range is now skipped.
func (s *skipList) Fail(ctx context.Context, scope string, kind model.EventKind, r model.BlockRange, cause error) (bool, error) {
	rec, err := s.repo.RecordBadRange(ctx, model.BadRange{
		Scope:     scope,
		Kind:      kind,
		FromBlock: r.From,
		ToBlock:   r.To,
		Reason:    cause.Error(),
	}, s.maxAttempts)
	if err != nil {
		return false, fmt.Errorf("record bad range: %w", err)
	}

	s.mu.Lock()
	s.suspect[skipKey(scope, kind, r.From)] = struct{}{}
	s.mu.Unlock()

	if rec.Skipped {
		s.logger.Error("skipping unfetchable range",
			zap.String("scope", scope),
			zap.String("kind", string(kind)),
			zap.Uint64("from", r.From),
			zap.Uint64("to", r.To),
			zap.Int("attempts", rec.Attempts),
			zap.String("reason", rec.Reason),
			zap.Bool("operator", true),
		)
	}
	return rec.Skipped, nil
}

// Succeed clears a pending failure record of the range, if this process saw one.
func (s *skipList) Succeed(ctx context.Context, scope string, kind model.EventKind, r model.BlockRange) {
	key := skipKey(scope, kind, r.From)
	s.mu.Lock()
	_, ok := s.suspect[key]
	delete(s.suspect, key)
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.repo.ClearBadRange(ctx, scope, kind, r.From); err != nil {
		s.logger.Warn("clear bad range failed", zap.String("key", key), zap.Error(err))
	}
}
