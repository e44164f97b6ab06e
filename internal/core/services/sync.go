package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/core/ports/driving"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.SyncCoordinator = (*Coordinator)(nil)

// User-facing status messages. The server's own error text, when present,
// replaces msgGenericFailure verbatim.
const (
	msgSavedLocally   = "saved locally; sign in to sync"
	msgUnreachable    = "could not reach the server; saved locally"
	msgGenericFailure = "sync failed; saved locally"
)

// Coordinator decides when and how the working draft reaches the server.
// It owns the sync status. Exactly one push is ever in flight: every
// trigger holds the coordinator's mutex for its full duration, including
// the network round trip.
type Coordinator struct {
	capture  *Capture
	drafts   driven.DraftStore
	sessions driven.SessionStore
	syncLog  driven.SyncLogStore
	remote   driven.HouseholdService
	monitor  driven.ConnectivityMonitor

	// now is stubbed in tests.
	now func() time.Time

	opMu sync.Mutex // serialises triggers

	stateMu sync.RWMutex
	state   domain.SyncState
}

// NewCoordinator creates a sync coordinator. monitor may be nil; when set,
// WatchConnectivity can re-trigger the pending draft as soon as the server
// becomes reachable again.
func NewCoordinator(
	capture *Capture,
	drafts driven.DraftStore,
	sessions driven.SessionStore,
	syncLog driven.SyncLogStore,
	remote driven.HouseholdService,
	monitor driven.ConnectivityMonitor,
) *Coordinator {
	c := &Coordinator{
		capture:  capture,
		drafts:   drafts,
		sessions: sessions,
		syncLog:  syncLog,
		remote:   remote,
		monitor:  monitor,
		now:      time.Now,
		state:    domain.SyncState{Status: domain.SyncIdle},
	}
	c.restoreLastSynced()
	return c
}

// Save persists the working draft durably and attempts a push. The draft
// is written to the store before anything else, so no later failure can
// lose it.
func (c *Coordinator) Save(ctx context.Context) (domain.SyncState, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	// 1. Get the working draft.
	draft, err := c.capture.Current(ctx)
	if err != nil {
		return c.fail(msgGenericFailure), fmt.Errorf("current draft: %w", err)
	}

	// Nothing captured: do not occupy the slot, and never re-push stale
	// data after a successful sync.
	if draft.IsEmpty() {
		logger.Debug("save skipped: draft is empty")
		return c.snapshot(ctx), nil
	}

	// 2. Durable local write, unconditionally first.
	if err := c.drafts.Save(ctx, draft); err != nil {
		return c.fail(msgGenericFailure), fmt.Errorf("save draft: %w", err)
	}

	return c.push(ctx, draft)
}

// SyncPending re-attempts whatever draft is currently stored, as after a
// login. With an empty slot it is a no-op reporting the current state.
func (c *Coordinator) SyncPending(ctx context.Context) (domain.SyncState, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	draft, err := c.drafts.Load(ctx)
	if errors.Is(err, domain.ErrNoDraft) {
		logger.Debug("no pending draft to sync")
		return c.snapshot(ctx), nil
	}
	if err != nil {
		return c.fail(msgGenericFailure), fmt.Errorf("load draft: %w", err)
	}

	return c.push(ctx, draft)
}

// State returns the current status snapshot.
func (c *Coordinator) State(ctx context.Context) domain.SyncState {
	return c.snapshot(ctx)
}

// WatchConnectivity re-attempts the pending draft whenever the monitor
// reports the server reachable again, until ctx is cancelled. Reachability
// stays advisory: triggers still push unconditionally, this only adds one
// more trigger. No-op without a monitor.
func (c *Coordinator) WatchConnectivity(ctx context.Context) {
	if c.monitor == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case online, ok := <-c.monitor.Events():
				if !ok {
					return
				}
				if !online {
					continue
				}
				logger.Debug("server reachable, retrying pending draft")
				if _, err := c.SyncPending(ctx); err != nil {
					logger.Warn("auto sync: %v", err)
				}
			}
		}
	}()
}

// push runs the shared push path for an already-persisted draft. Callers
// hold opMu.
func (c *Coordinator) push(ctx context.Context, draft *domain.Draft) (domain.SyncState, error) {
	// No valid session: deliberate skip, not an error. The draft stays
	// stored for the next login.
	session, err := c.sessions.Get(ctx)
	if err != nil || !session.Valid() {
		logger.Info("push skipped: no valid session")
		return c.transition(domain.SyncOffline, msgSavedLocally, true), nil
	}

	c.transition(domain.SyncSyncing, "", true)

	record := domain.Transform(draft, c.now())
	result, err := c.remote.Create(ctx, record, draft.ID)
	if err != nil {
		return c.pushFailed(err), nil
	}

	// Accepted: clear the slot, then record the sync. A failure past this
	// point must not resurrect the draft.
	if err := c.drafts.Clear(ctx); err != nil {
		logger.Warn("clear draft after accept: %v", err)
	}
	c.capture.forget()

	syncedAt := c.now()
	entry := domain.SyncLogEntry{
		DraftID:     draft.ID,
		HouseholdID: result.HouseholdID,
		SyncedAt:    syncedAt,
	}
	if err := c.syncLog.Record(ctx, entry); err != nil {
		logger.Warn("record sync log: %v", err)
	}

	logger.Info("draft %s accepted as household %s", draft.ID, result.HouseholdID)
	c.stateMu.Lock()
	c.state = domain.SyncState{
		Status:       domain.SyncSynced,
		LastSynced:   syncedAt,
		PendingDraft: false,
	}
	snap := c.state
	c.stateMu.Unlock()
	return snap, nil
}

// pushFailed maps a remote failure onto the status surface. The draft
// remains stored in every branch.
func (c *Coordinator) pushFailed(err error) domain.SyncState {
	switch {
	case errors.Is(err, domain.ErrUnreachable):
		logger.Warn("push failed, server unreachable: %v", err)
		return c.transition(domain.SyncError, msgUnreachable, true)
	case errors.Is(err, domain.ErrServerRejected):
		// Surface the server's message verbatim.
		logger.Warn("push rejected: %v", err)
		return c.transition(domain.SyncError, rejectionMessage(err), true)
	default:
		logger.Warn("push failed: %v", err)
		return c.transition(domain.SyncError, msgGenericFailure, true)
	}
}

// rejectionMessage extracts the server-provided text from a rejection,
// falling back to the generic message when the body carried none.
func rejectionMessage(err error) string {
	var rej *driven.RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return msgGenericFailure
}

func (c *Coordinator) transition(status domain.SyncStatus, message string, pending bool) domain.SyncState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.state.Status = status
	c.state.Message = message
	c.state.PendingDraft = pending
	return c.state
}

func (c *Coordinator) fail(message string) domain.SyncState {
	return c.transition(domain.SyncError, message, true)
}

// snapshot returns the state with PendingDraft recomputed from the store,
// so a fresh process reports a leftover draft correctly.
func (c *Coordinator) snapshot(ctx context.Context) domain.SyncState {
	pending := false
	if _, err := c.drafts.Load(ctx); err == nil {
		pending = true
	}
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.state.PendingDraft = pending
	return c.state
}

// restoreLastSynced seeds LastSynced from the sync log so status survives
// restarts.
func (c *Coordinator) restoreLastSynced() {
	last, err := c.syncLog.Last(context.Background())
	if err != nil {
		return
	}
	c.stateMu.Lock()
	c.state.LastSynced = last.SyncedAt
	c.stateMu.Unlock()
}
