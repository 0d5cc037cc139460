package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// MutateFunc receives the current local row (nil when absent) and returns
// the row to store.
type MutateFunc func(current *models.LocalRecord) (models.LocalRecord, error)

// ApplyFunc merges one authoritative row into the local copy (nil when
// absent). It returns the row to store and false when the local copy must be
// kept as is.
type ApplyFunc func(local *models.LocalRecord, incoming models.Record) (models.LocalRecord, bool)

// LocalRecordRepository is the device store of synchronizable rows.
type LocalRecordRepository interface {
	// Mutate reads and rewrites one row inside a write transaction, so two
	// local writers never stamp the same clock.
	Mutate(ctx context.Context, userID int64, table models.Table, id string, fn MutateFunc) (models.LocalRecord, error)
	Get(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error)
	List(ctx context.Context, userID int64, table models.Table, includeDeleted bool) ([]models.LocalRecord, error)

	// Pending returns pending rows with id > afterID ordered by id.
	Pending(ctx context.Context, userID int64, table models.Table, afterID string, limit int) ([]models.LocalRecord, error)
	CountPending(ctx context.Context, userID int64) (int64, error)

	// ApplyPulled merges one pulled page and advances the table cursor in
	// the same transaction. The cursor never moves backwards.
	ApplyPulled(ctx context.Context, userID int64, table models.Table, rows []models.Record, cursor int64, apply ApplyFunc) error
	// ApplyPushResults records the server's verdict for pushed rows. A client
	// win marks the row synced only if its clock still equals the pushed
	// one; a server win goes through apply.
	ApplyPushResults(ctx context.Context, userID int64, table models.Table, pushed []models.Record, results []models.PushResult, syncedAt time.Time, apply ApplyFunc) error
	Cursor(ctx context.Context, userID int64, table models.Table) (int64, error)
}
