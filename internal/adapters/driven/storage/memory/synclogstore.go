package memory

import (
	"context"
	"sync"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
)

// Ensure SyncLogStore implements the interface.
var _ driven.SyncLogStore = (*SyncLogStore)(nil)

// SyncLogStore is an in-memory implementation of driven.SyncLogStore.
type SyncLogStore struct {
	mu      sync.RWMutex
	entries []domain.SyncLogEntry
}

// NewSyncLogStore creates a new in-memory sync log store.
func NewSyncLogStore() *SyncLogStore {
	return &SyncLogStore{}
}

// Record appends an accepted push.
func (s *SyncLogStore) Record(_ context.Context, entry domain.SyncLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Last returns the most recent entry, or domain.ErrNotFound.
func (s *SyncLogStore) Last(_ context.Context) (*domain.SyncLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil, domain.ErrNotFound
	}
	entry := s.entries[len(s.entries)-1]
	return &entry, nil
}

// List returns entries newest first, at most limit (0 = all).
func (s *SyncLogStore) List(_ context.Context, limit int) ([]domain.SyncLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SyncLogEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}
