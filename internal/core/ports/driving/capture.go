package driving

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// CaptureService is the single mutation contract shared by every capture
// surface. All field writes funnel through it so the engine and the UI
// agree on one draft shape.
type CaptureService interface {
	// Current returns the working draft, loading the stored one or
	// starting fresh on first call.
	Current(ctx context.Context) (*domain.Draft, error)

	// SetField sets one identity or singular-section field.
	SetField(ctx context.Context, section, field string, value any) error

	// AppendItem appends an empty record to a repeatable section and
	// returns its index.
	AppendItem(ctx context.Context, section string) (int, error)

	// SetItemField sets one field of a repeatable-section record.
	SetItemField(ctx context.Context, section string, index int, field string, value any) error

	// Replace swaps in a complete draft (e.g. ingested from a form
	// export) as the working draft.
	Replace(ctx context.Context, draft *domain.Draft) error

	// Reset discards the working draft and its stored copy.
	Reset(ctx context.Context) error
}
