package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/core/ports/driving"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// Ensure Auth implements the interface.
var _ driving.AuthService = (*Auth)(nil)

// Auth manages the device's bearer session and retriggers the sync path
// after a successful login, so a draft left over from an offline session
// is pushed as soon as the operator signs in.
type Auth struct {
	sessions    driven.SessionStore
	remote      driven.HouseholdService
	coordinator driving.SyncCoordinator
}

// NewAuth creates an auth service.
func NewAuth(sessions driven.SessionStore, remote driven.HouseholdService, coordinator driving.SyncCoordinator) *Auth {
	return &Auth{sessions: sessions, remote: remote, coordinator: coordinator}
}

// Login authenticates against the household API, stores the session and
// pushes any pending draft. The returned state reflects that push; with no
// pending draft it is the coordinator's current state.
func (a *Auth) Login(ctx context.Context, username, password string) (domain.SyncState, error) {
	session, err := a.remote.Login(ctx, username, password)
	if err != nil {
		return domain.SyncState{}, fmt.Errorf("login: %w", err)
	}
	if err := a.sessions.Save(ctx, *session); err != nil {
		return domain.SyncState{}, fmt.Errorf("store session: %w", err)
	}
	logger.Info("logged in as %s", session.Username)

	state, err := a.coordinator.SyncPending(ctx)
	if err != nil {
		// The session is stored; a failed post-login push is not a
		// failed login.
		logger.Warn("post-login sync: %v", err)
		return state, nil
	}
	return state, nil
}

// Logout discards the stored session. Any pending draft stays stored.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Session returns the stored session, or domain.ErrNotFound.
func (a *Auth) Session(ctx context.Context) (*domain.Session, error) {
	return a.sessions.Get(ctx)
}

// Authenticated reports whether a valid session is held.
func (a *Auth) Authenticated(ctx context.Context) bool {
	session, err := a.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("session read: %v", err)
		}
		return false
	}
	return session.Valid()
}
