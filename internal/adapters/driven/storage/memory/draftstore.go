// Package memory provides in-memory implementations of the storage ports,
// used by tests and as reference implementations of store semantics.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
)

// Ensure DraftStore implements the interface.
var _ driven.DraftStore = (*DraftStore)(nil)

// DraftStore is an in-memory implementation of driven.DraftStore. The
// draft is stored serialised, mirroring the durable adapters: a loaded
// draft is always a complete, independent copy.
type DraftStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewDraftStore creates a new in-memory draft store with an empty slot.
func NewDraftStore() *DraftStore {
	return &DraftStore{}
}

// Save persists the entire draft, replacing any prior content.
func (s *DraftStore) Save(_ context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load returns the stored draft, or domain.ErrNoDraft.
func (s *DraftStore) Load(_ context.Context) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, domain.ErrNoDraft
	}
	var draft domain.Draft
	if err := json.Unmarshal(s.data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Clear empties the slot. Idempotent.
func (s *DraftStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
