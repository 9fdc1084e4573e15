package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/pkg/metrics"
)

// Mutex-guarded, in-memory Store implementation.
//
// The guarded value is never handed out directly: every read clones on the
// way out and every write commits a clone, so callers can hold a snapshot
// across an evaluation without racing concurrent mutations.
type MemoryStore struct {
	mu   sync.RWMutex
	snap model.Snapshot
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialSnapshot seeds the store with snap instead of an empty draft.
func WithInitialSnapshot(snap model.Snapshot) Option {
	return func(s *MemoryStore) {
		s.snap = snap.Clone()
	}
}

// NewMemoryStore creates an in-memory snapshot store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{snap: model.Snapshot{NextPick: 1}}
	for _, opt := range opts {
		opt(s)
	}
	s.publishGauges()
	return s
}

func (s *MemoryStore) Snapshot(_ context.Context) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

func (s *MemoryStore) Replace(_ context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
	s.publishGauges()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, fn func(snap *model.Snapshot) error) error {
	if fn == nil {
		return ErrNilMutator
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.snap = next
	s.publishGauges()
	return nil
}

func (s *MemoryStore) ExportJSON(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.snap, "", "  ")
}

func (s *MemoryStore) ImportJSON(_ context.Context, data []byte) error {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ErrBadSnapshot
	}
	if snap.NextPick < 1 {
		snap.NextPick = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.publishGauges()
	metrics.RecordSnapshotImport()
	return nil
}

// publishGauges refreshes the board gauges. Callers hold at least the write
// lock.
func (s *MemoryStore) publishGauges() {
	metrics.UpdateBoardSize(len(s.snap.Candidates))
	metrics.UpdateCandidatePool(len(s.snap.Available()))
	metrics.UpdateCurrentPick(s.snap.NextPick)
}
