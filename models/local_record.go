package models

import "time"

// RecordSyncStatus is the device-side bookkeeping flag of a record.
type RecordSyncStatus string

const (
	// RecordPending means the local version has not been acknowledged by the server.
	RecordPending RecordSyncStatus = "pending"
	// RecordSynced means the local version equals the last server-confirmed version.
	RecordSynced RecordSyncStatus = "synced"
)

// LocalRecord is a [Record] as kept in the device store. The extra fields are
// never sent over the wire.
type LocalRecord struct {
	Record
	UserID       int64            `json:"-"`
	SyncStatus   RecordSyncStatus `json:"-"`
	LastSyncedAt *time.Time       `json:"-"`
}

// IsPending reports whether the record still has to be pushed.
func (l LocalRecord) IsPending() bool {
	return l.SyncStatus == RecordPending
}
