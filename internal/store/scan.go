package store

import (
	"database/sql"
	"encoding/json"

	"github.com/MKhiriev/go-fin-keeper/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads the columns listed in recordColumns.
func scanRecord(s rowScanner) (models.Record, int64, error) {
	var (
		r         models.Record
		userID    int64
		deletedAt sql.NullTime
		payload   []byte
	)
	if err := s.Scan(&r.ID, &userID, &r.Clock, &r.CreatedAt, &r.UpdatedAt, &deletedAt, &payload, &r.Sequence); err != nil {
		return models.Record{}, 0, err
	}
	if deletedAt.Valid {
		d := deletedAt.Time
		r.DeletedAt = &d
	}
	if len(payload) > 0 {
		r.Payload = json.RawMessage(payload)
	}
	return r.Normalize(), userID, nil
}

// scanLocalRecord reads the columns listed in localRecordColumns.
func scanLocalRecord(s rowScanner) (models.LocalRecord, error) {
	var (
		r            models.LocalRecord
		deletedAt    sql.NullTime
		lastSyncedAt sql.NullTime
		payload      []byte
		status       string
	)
	err := s.Scan(&r.ID, &r.UserID, &r.Clock, &r.CreatedAt, &r.UpdatedAt, &deletedAt, &payload, &r.Sequence, &status, &lastSyncedAt)
	if err != nil {
		return models.LocalRecord{}, err
	}
	if deletedAt.Valid {
		d := deletedAt.Time
		r.DeletedAt = &d
	}
	if len(payload) > 0 {
		r.Payload = json.RawMessage(payload)
	}
	if lastSyncedAt.Valid {
		t := models.TruncateTime(lastSyncedAt.Time)
		r.LastSyncedAt = &t
	}
	r.SyncStatus = models.RecordSyncStatus(status)
	r.Record = r.Record.Normalize()
	return r, nil
}
