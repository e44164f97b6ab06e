package driving

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// AuthService manages the device's session. Token issuance lives on the
// server; this only stores the result and exposes validity.
type AuthService interface {
	// Login authenticates against the household API, stores the session
	// and triggers a push of any pending draft.
	Login(ctx context.Context, username, password string) (domain.SyncState, error)

	// Logout discards the stored session. The draft, if any, stays.
	Logout(ctx context.Context) error

	// Session returns the stored session, or domain.ErrNotFound.
	Session(ctx context.Context) (*domain.Session, error)

	// Authenticated reports whether a valid session is held.
	Authenticated(ctx context.Context) bool
}
