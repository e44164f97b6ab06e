package services

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/opengrama/gramasurvey/internal/adapters/driven/storage/memory"
	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
)

// --- Mock remote for coordinator testing ---

type mockRemote struct {
	mu          stdsync.Mutex
	createCalls int
	lastRecord  domain.Record
	lastKey     string
	createErr   error
	result      driven.CreateResult

	loginSession *domain.Session
	loginErr     error
}

func (m *mockRemote) Create(_ context.Context, record domain.Record, key string) (*driven.CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.lastRecord = record
	m.lastKey = key
	if m.createErr != nil {
		return nil, m.createErr
	}
	res := m.result
	return &res, nil
}

func (m *mockRemote) Login(_ context.Context, username, _ string) (*domain.Session, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	if m.loginSession != nil {
		return m.loginSession, nil
	}
	return &domain.Session{
		Username: username,
		Token:    oauth2.Token{AccessToken: "tok"},
	}, nil
}

func (m *mockRemote) Health(_ context.Context) error { return nil }

func (m *mockRemote) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// --- Fixture ---

type syncFixture struct {
	capture     *Capture
	coordinator *Coordinator
	drafts      *memory.DraftStore
	sessions    *memory.SessionStore
	syncLog     *memory.SyncLogStore
	remote      *mockRemote
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		drafts:   memory.NewDraftStore(),
		sessions: memory.NewSessionStore(),
		syncLog:  memory.NewSyncLogStore(),
		remote:   &mockRemote{result: driven.CreateResult{HouseholdID: "hh-1"}},
	}
	f.capture = NewCapture(f.drafts)
	f.coordinator = NewCoordinator(f.capture, f.drafts, f.sessions, f.syncLog, f.remote, nil)
	return f
}

func (f *syncFixture) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, f.sessions.Save(context.Background(), domain.Session{
		Username: "enumerator1",
		Token:    oauth2.Token{AccessToken: "tok"},
	}))
}

func (f *syncFixture) fillDraft(t *testing.T) *domain.Draft {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.capture.SetField(ctx, "", "headName", "Chomi"))
	require.NoError(t, f.capture.SetField(ctx, "housingDetails", "roofType", "tile"))
	d, err := f.capture.Current(ctx)
	require.NoError(t, err)
	return d
}

// --- Tests ---

func TestCoordinator_Save_Durability_RemoteFails(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	d := f.fillDraft(t)

	f.remote.createErr = domain.ErrUnreachable

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, state.Status)
	assert.True(t, state.PendingDraft)

	// The draft survives the failed push, byte for byte.
	stored, err := f.drafts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.ID, stored.ID)
	assert.Equal(t, "Chomi", stored.Identity["headName"])
	assert.Equal(t, "tile", stored.Object("housingDetails")["roofType"])
}

func TestCoordinator_Save_Success_ClearsDraft(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	d := f.fillDraft(t)

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSynced, state.Status)
	assert.False(t, state.PendingDraft)
	assert.False(t, state.LastSynced.IsZero())

	_, err = f.drafts.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoDraft)

	// The idempotency key is the draft id.
	assert.Equal(t, d.ID, f.remote.lastKey)

	// Accepted push lands in the sync log.
	last, err := f.syncLog.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hh-1", last.HouseholdID)
	assert.Equal(t, d.ID, last.DraftID)

	// Clearing again is a no-op.
	require.NoError(t, f.drafts.Clear(ctx))
}

func TestCoordinator_Save_NoDoubleSubmission(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	f.fillDraft(t)

	_, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.remote.calls())

	// Second save with the now-empty draft must not push stale data.
	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.remote.calls(), "no second create call")
	assert.Equal(t, domain.SyncSynced, state.Status)
}

func TestCoordinator_Save_NoSession_Offline(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.fillDraft(t)

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncOffline, state.Status)
	assert.Equal(t, msgSavedLocally, state.Message)
	assert.True(t, state.PendingDraft)
	assert.Equal(t, 0, f.remote.calls(), "push never attempted without a session")

	stored, err := f.drafts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Chomi", stored.Identity["headName"])
}

func TestCoordinator_Save_ExpiredSession_Offline(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	require.NoError(t, f.sessions.Save(ctx, domain.Session{
		Token: oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(-time.Hour)},
	}))
	f.fillDraft(t)

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncOffline, state.Status)
	assert.Equal(t, 0, f.remote.calls())
}

func TestCoordinator_Save_ServerRejection_SurfacesMessage(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	f.fillDraft(t)

	f.remote.createErr = &driven.RejectionError{
		StatusCode: 422,
		Message:    "ward_number is required",
	}

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, state.Status)
	assert.Equal(t, "ward_number is required", state.Message)

	// Rejection is not a clear: draft stays put.
	_, err = f.drafts.Load(ctx)
	require.NoError(t, err)
}

func TestCoordinator_Save_RejectionWithoutMessage_GenericText(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	f.fillDraft(t)

	f.remote.createErr = &driven.RejectionError{StatusCode: 500}

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, state.Status)
	assert.Equal(t, msgGenericFailure, state.Message)
}

func TestCoordinator_Save_Unreachable_GenericConnectivityText(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	f.fillDraft(t)

	f.remote.createErr = domain.ErrUnreachable

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, state.Status)
	assert.Equal(t, msgUnreachable, state.Message)
}

func TestCoordinator_SyncPending_EmptySlot_NoOp(t *testing.T) {
	f := newSyncFixture()
	f.signIn(t)

	state, err := f.coordinator.SyncPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SyncIdle, state.Status)
	assert.Equal(t, 0, f.remote.calls())
}

func TestCoordinator_OfflineThenLogin_SinglePush(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.fillDraft(t)

	// Save without a session: offline, draft preserved.
	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncOffline, state.Status)
	assert.Equal(t, 0, f.remote.calls())

	// Login triggers exactly one create for the pending draft.
	auth := NewAuth(f.sessions, f.remote, f.coordinator)
	state, err = auth.Login(ctx, "enumerator1", "pass")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSynced, state.Status)
	assert.Equal(t, 1, f.remote.calls())

	_, err = f.drafts.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestCoordinator_Save_TransformsDraft(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)

	require.NoError(t, f.capture.SetField(ctx, "", "headName", "Kali"))
	require.NoError(t, f.capture.SetField(ctx, "electricalFacilities", "bulbTypes", []string{"LED", "CFL"}))

	_, err := f.coordinator.Save(ctx)
	require.NoError(t, err)

	rec := f.remote.lastRecord
	assert.Equal(t, "Kali", rec["head_name"])
	items := rec.Section("electrical_facilities")
	require.Len(t, items, 1)
	assert.Equal(t, "LED, CFL", items[0]["bulb_types"])
	assert.Equal(t, domain.SystemCreator, rec["created_by"])
}

func TestCoordinator_State_ReportsPendingAcrossRestart(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.fillDraft(t)
	_, err := f.coordinator.Save(ctx)
	require.NoError(t, err)

	// A fresh coordinator over the same stores sees the leftover draft
	// and the absence of any past sync.
	capture2 := NewCapture(f.drafts)
	c2 := NewCoordinator(capture2, f.drafts, f.sessions, f.syncLog, f.remote, nil)
	state := c2.State(ctx)
	assert.True(t, state.PendingDraft)
	assert.True(t, state.LastSynced.IsZero())
}

func TestCoordinator_State_RestoresLastSynced(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	syncedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.syncLog.Record(ctx, domain.SyncLogEntry{
		DraftID: "d", HouseholdID: "h", SyncedAt: syncedAt,
	}))

	c := NewCoordinator(NewCapture(f.drafts), f.drafts, f.sessions, f.syncLog, f.remote, nil)
	state := c.State(ctx)
	assert.Equal(t, syncedAt, state.LastSynced)
}

func TestCoordinator_EmptyDraft_NeverStored(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncIdle, state.Status)
	assert.Equal(t, 0, f.remote.calls())
	_, err = f.drafts.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

type fakeMonitor struct{ ch chan bool }

func (m *fakeMonitor) Online() bool          { return true }
func (m *fakeMonitor) Events() <-chan bool   { return m.ch }
func (m *fakeMonitor) Start(_ context.Context) {}

func TestCoordinator_WatchConnectivity_RetriesOnReconnect(t *testing.T) {
	f := newSyncFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := &fakeMonitor{ch: make(chan bool)}
	coordinator := NewCoordinator(f.capture, f.drafts, f.sessions, f.syncLog, f.remote, monitor)

	f.signIn(t)
	f.fillDraft(t)

	// First attempt fails: the draft stays pending.
	f.remote.createErr = domain.ErrUnreachable
	_, err := coordinator.Save(ctx)
	require.NoError(t, err)

	coordinator.WatchConnectivity(ctx)

	// Connectivity returns and the server accepts.
	f.remote.mu.Lock()
	f.remote.createErr = nil
	f.remote.mu.Unlock()
	monitor.ch <- true

	assert.Eventually(t, func() bool {
		return f.remote.calls() == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, err := f.drafts.Load(ctx)
		return errors.Is(err, domain.ErrNoDraft)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCoordinator_UnknownError_Generic(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.signIn(t)
	f.fillDraft(t)

	f.remote.createErr = errors.New("boom")

	state, err := f.coordinator.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, state.Status)
	assert.Equal(t, msgGenericFailure, state.Message)
}
