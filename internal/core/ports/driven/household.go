package driven

import (
	"context"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// CreateResult is the server's acknowledgement of an accepted record.
type CreateResult struct {
	// HouseholdID is the identifier the server assigned.
	HouseholdID string
}

// HouseholdService is the remote boundary. Implementations classify
// failures into the domain taxonomy: domain.ErrUnreachable for transport
// failures, domain.ErrServerRejected (wrapping the server's message) for
// non-2xx responses, domain.ErrMalformedResponse for bodies that fail to
// parse.
type HouseholdService interface {
	// Create submits a transformed record. idempotencyKey dedupes
	// retried submissions server-side.
	Create(ctx context.Context, record domain.Record, idempotencyKey string) (*CreateResult, error)

	// Login exchanges credentials for a bearer session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Health probes the API's health endpoint.
	Health(ctx context.Context) error
}
