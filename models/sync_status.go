package models

import "time"

// SyncState is the coarse state of the client sync engine shown to the UI.
type SyncState string

const (
	SyncIdle            SyncState = "idle"
	SyncSyncing         SyncState = "syncing"
	SyncError           SyncState = "error"
	SyncUnauthenticated SyncState = "unauthenticated"
)

// SyncStatus is a snapshot of the engine's state.
//
// Pending counts local rows still waiting for acknowledgement. Rejected
// counts rows the server refused in the last cycle; they stay pending.
// Offline is set when the last cycle failed because the server could not be
// reached or answered with a transient error.
type SyncStatus struct {
	State        SyncState  `json:"state"`
	Pending      int64      `json:"pending"`
	Rejected     int        `json:"rejected"`
	LastError    string     `json:"lastError,omitempty"`
	Offline      bool       `json:"offline,omitempty"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	RetryAfter   *time.Time `json:"retryAfter,omitempty"`
}

// TriggerReason names what asked for a sync cycle.
type TriggerReason string

const (
	TriggerTimer      TriggerReason = "timer"
	TriggerReconnect  TriggerReason = "reconnect"
	TriggerForeground TriggerReason = "foreground"
	TriggerManual     TriggerReason = "manual"
)

// Automatic reports whether the trigger was not an explicit user request.
func (r TriggerReason) Automatic() bool {
	return r != TriggerManual
}
