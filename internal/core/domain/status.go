package domain

import "time"

// SyncStatus is the coordinator-owned state shown to the UI layer.
type SyncStatus string

const (
	// SyncIdle means no push has been attempted this session.
	SyncIdle SyncStatus = "idle"
	// SyncSyncing means a push is in flight.
	SyncSyncing SyncStatus = "syncing"
	// SyncSynced means the last push was accepted and the draft cleared.
	SyncSynced SyncStatus = "synced"
	// SyncOffline means the last push was skipped (no session held);
	// the draft remains stored for the next trigger.
	SyncOffline SyncStatus = "offline"
	// SyncError means the last push was attempted and failed;
	// the draft remains stored.
	SyncError SyncStatus = "error"
)

// SyncState is a point-in-time snapshot of the coordinator's status.
type SyncState struct {
	Status SyncStatus `json:"status"`
	// Message carries the server-provided error text (verbatim) for
	// SyncError, or a generic connectivity message for transport failures.
	Message string `json:"message,omitempty"`
	// LastSynced is the time of the most recent accepted push, zero if none.
	LastSynced time.Time `json:"last_synced,omitempty"`
	// PendingDraft reports whether an unsynced draft is stored.
	PendingDraft bool `json:"pending_draft"`
}

// SyncLogEntry records one accepted push.
type SyncLogEntry struct {
	// DraftID is the local identifier of the draft that was pushed.
	DraftID string `json:"draft_id"`
	// HouseholdID is the identifier the server assigned to the record.
	HouseholdID string `json:"household_id"`
	// SyncedAt is when the server accepted the record.
	SyncedAt time.Time `json:"synced_at"`
}
