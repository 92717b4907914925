package coordinator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// MemoryStore keeps coordinator state in process memory. It serializes callers of one
// process only and suits single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	keys    map[string]*keyLock
	holders map[string]model.LockEntry
	entries map[string]model.QueueEntry
}

// keyLock serializes one resource key; it lives only while callers use or wait for it.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys:    make(map[string]*keyLock),
		holders: make(map[string]model.LockEntry),
		entries: make(map[string]model.QueueEntry),
	}
}

func (s *MemoryStore) lockKey(resourceKey string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.keys[resourceKey]
	if !ok {
		l = &keyLock{}
		s.keys[resourceKey] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
		if l.refs--; l.refs == 0 {
			delete(s.keys, resourceKey)
		}
	}
}

func (s *MemoryStore) InResource(ctx context.Context, resourceKey string, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := s.lockKey(resourceKey)
	defer unlock()

	tx := &memoryTx{
		store:   s,
		holders: make(map[string]*model.LockEntry),
		entries: make(map[string]model.QueueEntry),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, h := range tx.holders {
		if h == nil {
			delete(s.holders, key)
			continue
		}
		s.holders[key] = *h
	}
	for id, e := range tx.entries {
		s.entries[id] = e
	}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, requestID string) (*model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[requestID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) Reap(_ context.Context, now, purgeBefore time.Time) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var timedOut, purged int64
	for key, h := range s.holders {
		if h.Expired(now) {
			delete(s.holders, key)
		}
	}
	for id, e := range s.entries {
		switch {
		case !e.Status.Terminal() && !now.Before(e.ExpiresAt):
			e.Status = model.QueueTimeout
			e.UpdatedAt = now
			s.entries[id] = e
			timedOut++
		case e.Status.Terminal() && e.UpdatedAt.Before(purgeBefore):
			delete(s.entries, id)
			purged++
		}
	}
	return timedOut, purged, nil
}

// memoryTx buffers writes until the critical section succeeds.
type memoryTx struct {
	store   *MemoryStore
	holders map[string]*model.LockEntry
	entries map[string]model.QueueEntry
}

func (t *memoryTx) Holder(_ context.Context, resourceKey string) (*model.LockEntry, error) {
	if h, ok := t.holders[resourceKey]; ok {
		if h == nil {
			return nil, nil
		}
		out := *h
		return &out, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	h, ok := t.store.holders[resourceKey]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (t *memoryTx) PutHolder(_ context.Context, entry model.LockEntry) error {
	t.holders[entry.ResourceKey] = &entry
	return nil
}

func (t *memoryTx) DeleteHolder(_ context.Context, resourceKey string) error {
	t.holders[resourceKey] = nil
	return nil
}

func (t *memoryTx) Entry(_ context.Context, requestID string) (*model.QueueEntry, error) {
	if e, ok := t.entries[requestID]; ok {
		return &e, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	e, ok := t.store.entries[requestID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (t *memoryTx) PutEntry(_ context.Context, entry model.QueueEntry) error {
	t.entries[entry.RequestID] = entry
	return nil
}

func (t *memoryTx) Waiters(_ context.Context, resourceKey string, now time.Time) ([]model.QueueEntry, error) {
	merged := make(map[string]model.QueueEntry)
	t.store.mu.Lock()
	for id, e := range t.store.entries {
		if e.ResourceKey == resourceKey {
			merged[id] = e
		}
	}
	t.store.mu.Unlock()
	for id, e := range t.entries {
		if e.ResourceKey == resourceKey {
			merged[id] = e
		}
	}

	var out []model.QueueEntry
	for _, e := range merged {
		if e.Live(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		return out[i].RequestID < out[j].RequestID
	})
	return out, nil
}
