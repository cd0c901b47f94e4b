package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]store.Snapshot
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{snapshots: make(map[string]store.Snapshot)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot stores a deep copy of the snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = copySnapshot(snap)
	return nil
}

// GetSnapshot returns a snapshot by ID.
func (s *Store) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return store.Snapshot{}, false, nil
	}
	return copySnapshot(snap), true, nil
}

// ListSnapshots returns snapshot summaries, newest ULID first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]store.Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := make([]store.Meta, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		metas = append(metas, store.Meta{
			ID:        snap.ID,
			CreatedAt: snap.CreatedAt,
			RuleCount: len(snap.Rules),
			FactCount: len(snap.Facts),
			Goal:      snap.Goal,
		})
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].ID > metas[j].ID })
	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}

func copySnapshot(snap store.Snapshot) store.Snapshot {
	out := snap
	out.Rules = make([]kb.Rule, len(snap.Rules))
	for i, r := range snap.Rules {
		r.Antecedent.Conditions = append([]kb.Fact(nil), r.Antecedent.Conditions...)
		out.Rules[i] = r
	}
	out.Facts = append([]kb.Fact(nil), snap.Facts...)
	return out
}
