// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	getCursor = `
		SELECT last_sequence
		FROM sync_cursors
		WHERE user_id = ? AND table_name = ?;`

	advanceCursor = `
		INSERT INTO sync_cursors (user_id, table_name, last_sequence, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, table_name) DO UPDATE SET
			last_sequence = MAX(sync_cursors.last_sequence, excluded.last_sequence),
			updated_at    = excluded.updated_at;`
)

var localRecordColumns = append(append([]string{}, recordColumns...), "sync_status", "last_synced_at")

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectLocalQuery(table models.Table, id string) (string, []any, error) {
	return sqlite.
		Select(localRecordColumns...).
		From(table.String()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildListLocalQuery(table models.Table, userID int64, includeDeleted bool) (string, []any, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if !includeDeleted {
		where = append(where, sq.Eq{"deleted_at": nil})
	}
	return sqlite.
		Select(localRecordColumns...).
		From(table.String()).
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

func buildPendingQuery(table models.Table, userID int64, afterID string, limit int) (string, []any, error) {
	return sqlite.
		Select(localRecordColumns...).
		From(table.String()).
		Where(sq.And{
			sq.Eq{"user_id": userID, "sync_status": string(models.RecordPending)},
			sq.Gt{"id": afterID},
		}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
}

// buildCountPendingQuery sums pending rows over every table in one statement.
func buildCountPendingQuery(userID int64) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(models.SyncTables))

	b.WriteString("SELECT ")
	for i, table := range models.SyncTables {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("(SELECT COUNT(*) FROM ")
		b.WriteString(table.String())
		b.WriteString(" WHERE user_id = ? AND sync_status = 'pending')")
		args = append(args, userID)
	}
	b.WriteString(";")

	return b.String(), args
}

func buildUpsertLocalQuery(table models.Table, r models.LocalRecord) (string, []any, error) {
	return sqlite.
		Insert(table.String()).
		Columns(localRecordColumns...).
		Values(
			r.ID, r.UserID, r.Clock, r.CreatedAt, r.UpdatedAt, nullTime(r.DeletedAt),
			payloadArg(r.Payload), r.Sequence, string(r.SyncStatus), nullTime(r.LastSyncedAt),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			clock          = excluded.clock,
			created_at     = excluded.created_at,
			updated_at     = excluded.updated_at,
			deleted_at     = excluded.deleted_at,
			payload        = excluded.payload,
			sequence       = excluded.sequence,
			sync_status    = excluded.sync_status,
			last_synced_at = excluded.last_synced_at`).
		ToSql()
}

// buildMarkSyncedQuery only matches while the local clock still equals the
// pushed one, so an edit made during the round trip stays pending.
func buildMarkSyncedQuery(table models.Table, userID int64, pushed models.Record, sequence int64, syncedAt time.Time) (string, []any, error) {
	return sqlite.
		Update(table.String()).
		Set("sync_status", string(models.RecordSynced)).
		Set("last_synced_at", syncedAt).
		Set("sequence", sequence).
		Where(sq.Eq{"id": pushed.ID, "user_id": userID, "clock": pushed.Clock}).
		ToSql()
}
