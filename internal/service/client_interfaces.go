package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ChangeTracker is the only writer of sync envelopes on the device. Every
// method runs in one store transaction together with the row it touches.
type ChangeTracker interface {
	// Stamp passes the current row (nil when absent) to edit and stores the
	// result with the next clock, a fresh updatedAt and pending status. edit
	// decides payload and deletedAt only; the envelope is owned by the
	// tracker.
	Stamp(ctx context.Context, userID int64, table models.Table, id string, edit func(current *models.Record) (models.Record, error)) (models.LocalRecord, error)

	// MarkSynced applies a push response: client wins become synced when the
	// local clock is unchanged, server wins overwrite the local row.
	MarkSynced(ctx context.Context, userID int64, table models.Table, pushed []models.Record, results []models.PushResult) error

	// ApplyServer merges a pulled page with the shared conflict rule and
	// advances the table cursor to cursor.
	ApplyServer(ctx context.Context, userID int64, table models.Table, rows []models.Record, cursor int64) error
}

// RecordService is what the UI layer calls to read and change local data.
// Mutations never touch the network.
type RecordService interface {
	Create(ctx context.Context, userID int64, table models.Table, payload json.RawMessage) (models.LocalRecord, error)
	Update(ctx context.Context, userID int64, table models.Table, id string, payload json.RawMessage) (models.LocalRecord, error)
	// Delete writes a tombstone; the payload is kept.
	Delete(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error)
	Restore(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error)
	Get(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error)
	List(ctx context.Context, userID int64, table models.Table, includeDeleted bool) ([]models.LocalRecord, error)
}

// SyncEngine reconciles the device store with the server.
type SyncEngine interface {
	// Pull drains the table's pull stream page by page.
	Pull(ctx context.Context, userID int64, table models.Table) error
	// Push sends every pending row of the table in chunks.
	Push(ctx context.Context, userID int64, table models.Table) error
	// Sync runs Pull then Push for every table. A call made while another is
	// running returns ErrSyncInProgress at once.
	Sync(ctx context.Context, userID int64) error
	// RefreshPending recounts the rows waiting for a push and publishes the
	// count without running a cycle.
	RefreshPending(ctx context.Context, userID int64) error

	Status() models.SyncStatus
	// Subscribe delivers the latest status after every change. Slow readers
	// only see the newest value. The returned func unsubscribes.
	Subscribe() (<-chan models.SyncStatus, func())
}

// SyncScheduler turns triggers into Sync calls for one signed-in user.
type SyncScheduler interface {
	// Start stops a running loop, then syncs once and every interval until
	// ctx is done or Stop is called.
	Start(ctx context.Context, userID int64)
	// Trigger asks for a sync. It returns false when a trigger is already
	// queued and this one was coalesced.
	Trigger(reason models.TriggerReason) bool
	Stop()
}

// ClientAuthService signs the daemon in and keeps the bearer token in the
// adapter.
type ClientAuthService interface {
	Register(ctx context.Context, credentials models.Credentials) (int64, error)
	Login(ctx context.Context, credentials models.Credentials) (int64, error)
}

// ConnectivityService tells whether the server answers at all. It needs no
// credentials.
type ConnectivityService interface {
	Ping(ctx context.Context) error
}
