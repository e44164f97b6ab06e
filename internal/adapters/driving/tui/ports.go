// Package tui provides an interactive terminal user interface for gramasurvey.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/opengrama/gramasurvey/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Capture provides access to the working draft.
	Capture driving.CaptureService

	// Sync coordinates pushes to the household API.
	Sync driving.SyncCoordinator

	// Auth reports the sign-in state.
	Auth driving.AuthService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Capture == nil {
		return ErrMissingCaptureService
	}
	if p.Sync == nil {
		return ErrMissingSyncCoordinator
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	return nil
}
