package tui

import "errors"

// Port validation errors.
var (
	ErrMissingCaptureService  = errors.New("tui: capture service is required")
	ErrMissingSyncCoordinator = errors.New("tui: sync coordinator is required")
	ErrMissingAuthService     = errors.New("tui: auth service is required")
)
