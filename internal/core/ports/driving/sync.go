package driving

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// SyncCoordinator decides when and how the working draft reaches the
// server. Both triggers, an explicit save and a successful login, run
// the same path: persist locally first, then push if a session is held.
type SyncCoordinator interface {
	// Save persists the working draft durably and attempts a push.
	// The returned state is the outcome of this trigger; the draft is
	// never lost on failure.
	Save(ctx context.Context) (domain.SyncState, error)

	// SyncPending re-attempts whatever draft is currently stored, as
	// after a login. With an empty slot it is a no-op reporting the
	// current state.
	SyncPending(ctx context.Context) (domain.SyncState, error)

	// State returns the current status snapshot.
	State(ctx context.Context) domain.SyncState
}
