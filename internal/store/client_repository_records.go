package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localRecordRepository) Mutate(ctx context.Context, userID int64, table models.Table, id string, fn MutateFunc) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	if err := checkTable(table); err != nil {
		return models.LocalRecord{}, err
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localRecordRepository.Mutate").Msg("failed to begin transaction")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := selectLocal(ctx, tx, userID, table, id)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return models.LocalRecord{}, err
	}

	next, err := fn(current)
	if err != nil {
		return models.LocalRecord{}, err
	}
	next.UserID = userID

	if err = upsertLocal(ctx, tx, table, next); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Mutate").
			Str("table", table.String()).
			Str("id", id).
			Msg("failed to store local row")
		return models.LocalRecord{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return next, nil
}

func (l *localRecordRepository) Get(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error) {
	if err := checkTable(table); err != nil {
		return models.LocalRecord{}, err
	}

	record, err := selectLocal(ctx, l.DB, userID, table, id)
	if err != nil {
		return models.LocalRecord{}, err
	}
	return *record, nil
}

func (l *localRecordRepository) List(ctx context.Context, userID int64, table models.Table, includeDeleted bool) ([]models.LocalRecord, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query, args, err := buildListLocalQuery(table, userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return l.queryLocal(ctx, "localRecordRepository.List", query, args)
}

func (l *localRecordRepository) Pending(ctx context.Context, userID int64, table models.Table, afterID string, limit int) ([]models.LocalRecord, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query, args, err := buildPendingQuery(table, userID, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return l.queryLocal(ctx, "localRecordRepository.Pending", query, args)
}

func (l *localRecordRepository) CountPending(ctx context.Context, userID int64) (int64, error) {
	query, args := buildCountPendingQuery(userID)

	var count int64
	if err := l.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localRecordRepository.CountPending").Msg("failed to count pending rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// ApplyPulled keeps the page and the cursor in one transaction: a crash
// between the two would otherwise skip the page on the next pull.
func (l *localRecordRepository) ApplyPulled(ctx context.Context, userID int64, table models.Table, rows []models.Record, cursor int64, apply ApplyFunc) error {
	log := logger.FromContext(ctx)

	if err := checkTable(table); err != nil {
		return err
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, incoming := range rows {
		if err = applyOne(ctx, tx, userID, table, incoming, apply); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.ApplyPulled").
				Str("table", table.String()).
				Str("id", incoming.ID).
				Msg("failed to apply pulled row")
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, advanceCursor, userID, table.String(), cursor, time.Now().UTC()); err != nil {
		log.Err(err).Str("func", "localRecordRepository.ApplyPulled").Msg("failed to advance cursor")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (l *localRecordRepository) ApplyPushResults(ctx context.Context, userID int64, table models.Table, pushed []models.Record, results []models.PushResult, syncedAt time.Time, apply ApplyFunc) error {
	log := logger.FromContext(ctx)

	if err := checkTable(table); err != nil {
		return err
	}
	if len(pushed) != len(results) {
		return fmt.Errorf("%w: pushed %d, got %d", ErrMismatchedBatch, len(pushed), len(results))
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, result := range results {
		if result.ID != pushed[i].ID {
			return fmt.Errorf("%w: result %d is for %q, pushed %q", ErrMismatchedBatch, i, result.ID, pushed[i].ID)
		}
		if result.Rejected() || result.Row == nil {
			continue
		}

		switch result.Winner {
		case models.WinnerClient:
			query, args, buildErr := buildMarkSyncedQuery(table, userID, pushed[i], result.Row.Sequence, models.TruncateTime(syncedAt))
			if buildErr != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				log.Err(err).Str("func", "localRecordRepository.ApplyPushResults").Str("id", result.ID).Msg("failed to mark row synced")
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
		case models.WinnerServer:
			if err = applyOne(ctx, tx, userID, table, *result.Row, apply); err != nil {
				log.Err(err).Str("func", "localRecordRepository.ApplyPushResults").Str("id", result.ID).Msg("failed to apply server row")
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (l *localRecordRepository) Cursor(ctx context.Context, userID int64, table models.Table) (int64, error) {
	var cursor int64
	err := l.DB.QueryRowContext(ctx, getCursor, userID, table.String()).Scan(&cursor)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return cursor, nil
}

func (l *localRecordRepository) queryLocal(ctx context.Context, fn, query string, args []any) ([]models.LocalRecord, error) {
	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.LocalRecord
	for rows.Next() {
		record, scanErr := scanLocalRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return records, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func selectLocal(ctx context.Context, q queryer, userID int64, table models.Table, id string) (*models.LocalRecord, error) {
	query, args, err := buildSelectLocalQuery(table, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanLocalRecord(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if record.UserID != userID {
		return nil, ErrForeignRecord
	}
	return &record, nil
}

func upsertLocal(ctx context.Context, tx *sql.Tx, table models.Table, record models.LocalRecord) error {
	query, args, err := buildUpsertLocalQuery(table, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func applyOne(ctx context.Context, tx *sql.Tx, userID int64, table models.Table, incoming models.Record, apply ApplyFunc) error {
	current, err := selectLocal(ctx, tx, userID, table, incoming.ID)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return err
	}

	next, ok := apply(current, incoming.Normalize())
	if !ok {
		return nil
	}
	next.UserID = userID
	return upsertLocal(ctx, tx, table, next)
}
