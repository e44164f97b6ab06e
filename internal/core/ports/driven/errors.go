package driven

import (
	"fmt"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// RejectionError is a well-formed HTTP error from the household API.
// Message holds the server's `error` string, surfaced verbatim to the
// operator; it is empty when the body carried none or failed to parse.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected record (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server rejected record (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap ties rejections into the domain error taxonomy.
func (e *RejectionError) Unwrap() error {
	return domain.ErrServerRejected
}
