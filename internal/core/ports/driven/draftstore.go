package driven

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// DraftStore is durable single-slot persistence for the one in-progress
// draft. Save overwrites atomically: a reader observes either the previous
// complete draft or the new one, never an interleaving. The slot survives
// process restarts.
type DraftStore interface {
	// Save persists the entire draft, replacing any prior content.
	Save(ctx context.Context, draft *domain.Draft) error

	// Load returns the stored draft, or domain.ErrNoDraft if the slot
	// is empty.
	Load(ctx context.Context) (*domain.Draft, error)

	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}
