package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/merge"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type changeTracker struct {
	records store.LocalRecordRepository
	now     func() time.Time
}

func NewChangeTracker(records store.LocalRecordRepository) ChangeTracker {
	return NewChangeTrackerWithNow(records, time.Now)
}

// NewChangeTrackerWithNow is [NewChangeTracker] with an injectable clock.
func NewChangeTrackerWithNow(records store.LocalRecordRepository, now func() time.Time) ChangeTracker {
	return &changeTracker{records: records, now: now}
}

func (c *changeTracker) Stamp(ctx context.Context, userID int64, table models.Table, id string, edit func(current *models.Record) (models.Record, error)) (models.LocalRecord, error) {
	return c.records.Mutate(ctx, userID, table, id, func(current *models.LocalRecord) (models.LocalRecord, error) {
		var base *models.Record
		if current != nil {
			base = &current.Record
		}

		changed, err := edit(base)
		if err != nil {
			return models.LocalRecord{}, err
		}

		now := models.TruncateTime(c.now())
		next := models.LocalRecord{
			Record: models.Record{
				Envelope: models.Envelope{
					ID:        id,
					Clock:     1,
					CreatedAt: now,
					UpdatedAt: now,
					DeletedAt: changed.DeletedAt,
				},
				Payload: changed.Payload,
			},
			SyncStatus: models.RecordPending,
		}
		if current != nil {
			next.Clock = current.Clock + 1
			next.CreatedAt = current.CreatedAt
			next.Sequence = current.Sequence
			next.LastSyncedAt = current.LastSyncedAt
		}
		if next.DeletedAt != nil {
			d := models.TruncateTime(*next.DeletedAt)
			next.DeletedAt = &d
		}

		return next, nil
	})
}

func (c *changeTracker) MarkSynced(ctx context.Context, userID int64, table models.Table, pushed []models.Record, results []models.PushResult) error {
	syncedAt := c.now()
	return c.records.ApplyPushResults(ctx, userID, table, pushed, results, syncedAt, authoritative(syncedAt))
}

func (c *changeTracker) ApplyServer(ctx context.Context, userID int64, table models.Table, rows []models.Record, cursor int64) error {
	return c.records.ApplyPulled(ctx, userID, table, rows, cursor, authoritative(c.now()))
}

// authoritative merges a server row into the local copy. A local copy with a
// higher clock is left pending so it is pushed again.
func authoritative(syncedAt time.Time) store.ApplyFunc {
	syncedAt = models.TruncateTime(syncedAt)

	return func(local *models.LocalRecord, incoming models.Record) (models.LocalRecord, bool) {
		var current *models.Record
		if local != nil {
			current = &local.Record
		}

		switch merge.Resolve(current, incoming) {
		case merge.Insert, merge.Overwrite:
			at := syncedAt
			return models.LocalRecord{
				Record:       incoming,
				SyncStatus:   models.RecordSynced,
				LastSyncedAt: &at,
			}, true
		default:
			return models.LocalRecord{}, false
		}
	}
}
