package driven

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// SyncLogStore records accepted pushes so the UI can show when this device
// last synced and which server record each draft became.
type SyncLogStore interface {
	// Record appends an accepted push.
	Record(ctx context.Context, entry domain.SyncLogEntry) error

	// Last returns the most recent entry, or domain.ErrNotFound if this
	// device has never synced.
	Last(ctx context.Context) (*domain.SyncLogEntry, error)

	// List returns entries newest first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.SyncLogEntry, error)
}
