package driven

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// SessionStore persists the bearer session across process restarts.
type SessionStore interface {
	// Save stores or replaces the session.
	Save(ctx context.Context, session domain.Session) error

	// Get retrieves the stored session, or domain.ErrNotFound.
	Get(ctx context.Context) (*domain.Session, error)

	// Clear removes the stored session. Idempotent.
	Clear(ctx context.Context) error
}
