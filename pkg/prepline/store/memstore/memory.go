// Package memstore is an in-memory store.Store implementation for tests.
package memstore

import (
	"context"
	"sync"

	"github.com/textkit/prepline/pkg/prepline/store"
)

// Store holds at most one snapshot in memory.
type Store struct {
	mu   sync.RWMutex
	snap *store.Snapshot
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot replaces the stored snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := snap
	copied.Vocab = make(map[string]int64, len(snap.Vocab))
	for token, count := range snap.Vocab {
		copied.Vocab[token] = count
	}
	s.snap = &copied
	return nil
}

// LoadSnapshot returns a copy of the stored snapshot, if any.
func (s *Store) LoadSnapshot(ctx context.Context) (store.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return store.Snapshot{}, false, nil
	}

	copied := *s.snap
	copied.Vocab = make(map[string]int64, len(s.snap.Vocab))
	for token, count := range s.snap.Vocab {
		copied.Vocab[token] = count
	}
	return copied, true, nil
}
