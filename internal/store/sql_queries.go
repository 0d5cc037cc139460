package store

import (
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash) 
    VALUES ($1, $2, $3) 
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at 
    FROM users 
    WHERE login = $1;`

	lockSequence = `SELECT value FROM sync_sequences 
    WHERE table_name = $1 
    FOR UPDATE;`

	storeSequence = `UPDATE sync_sequences SET value = $2 
    WHERE table_name = $1;`

	incrementRateLimit = `INSERT INTO rate_limits AS r (key, count, reset_at) 
    VALUES ($1, 1, $2::timestamptz + make_interval(secs => $3::double precision)) 
    ON CONFLICT (key) DO UPDATE SET 
        count    = CASE WHEN r.reset_at <= $2::timestamptz THEN 1 ELSE r.count + 1 END, 
        reset_at = CASE WHEN r.reset_at <= $2::timestamptz 
                        THEN $2::timestamptz + make_interval(secs => $3::double precision) 
                        ELSE r.reset_at END 
    RETURNING count, reset_at;`

	deleteExpiredRateLimits = `DELETE FROM rate_limits WHERE reset_at <= $1::timestamptz;`
)

var recordColumns = []string{"id", "user_id", "clock", "created_at", "updated_at", "deleted_at", "payload", "sequence"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildSelectForPushQuery(table models.Table, id string) (string, []any, error) {
	return psql.
		Select(recordColumns...).
		From(table.String()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertRecordQuery(table models.Table, userID int64, r models.Record) (string, []any, error) {
	return psql.
		Insert(table.String()).
		Columns(recordColumns...).
		Values(r.ID, userID, r.Clock, r.CreatedAt, r.UpdatedAt, nullTime(r.DeletedAt), payloadArg(r.Payload), r.Sequence).
		ToSql()
}

func buildUpdateRecordQuery(table models.Table, userID int64, r models.Record) (string, []any, error) {
	return psql.
		Update(table.String()).
		Set("clock", r.Clock).
		Set("created_at", r.CreatedAt).
		Set("updated_at", r.UpdatedAt).
		Set("deleted_at", nullTime(r.DeletedAt)).
		Set("payload", payloadArg(r.Payload)).
		Set("sequence", r.Sequence).
		Where(sq.Eq{"id": r.ID, "user_id": userID}).
		ToSql()
}

func buildPullQuery(table models.Table, userID, cursor int64, limit int) (string, []any, error) {
	return psql.
		Select(recordColumns...).
		From(table.String()).
		Where(sq.And{
			sq.Eq{"user_id": userID},
			sq.Gt{"sequence": cursor},
		}).
		OrderBy("sequence ASC").
		Limit(uint64(limit)).
		ToSql()
}

func buildStatsQuery(table models.Table, userID int64) (string, []any, error) {
	return psql.
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE deleted_at IS NULL)",
			"COALESCE(MAX(sequence), 0)",
		).
		From(table.String()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// payloadArg keeps the JSON text untouched, so a pulled row carries the
// exact bytes that were pushed. An absent payload is stored as NULL.
func payloadArg(p json.RawMessage) any {
	if len(p) == 0 {
		return nil
	}
	return string(p)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
