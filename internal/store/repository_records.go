package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. All six tables share one layout.
type recordRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

// ApplyPush locks the table's sequence counter before touching any row.
// Batches of one table are therefore serialized and commit in sequence
// order, which is what lets a pull cursor skip nothing. Concurrent pushes of
// the same id resolve as first committed wins: the second batch reads the
// row the first one wrote.
func (r *recordRepository) ApplyPush(ctx context.Context, userID int64, table models.Table, rows []models.Record, decide PushDecider) ([]models.PushResult, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*recordRepository.ApplyPush").
		Str("table", table.String()).
		Int64("user_id", userID).
		Logger()

	if err := checkTable(table); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var sequence int64
	if err = tx.QueryRowContext(ctx, lockSequence, table.String()).Scan(&sequence); err != nil {
		log.Err(err).Msg("failed to lock sequence counter")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	startSequence := sequence

	results := make([]models.PushResult, 0, len(rows))
	for i, pushed := range rows {
		pushed = pushed.Normalize()
		pushed.Sequence = 0

		stored, owner, err := r.selectForPush(ctx, tx, table, pushed.ID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			log.Err(err).Int("row", i).Str("id", pushed.ID).Msg("failed to read stored row")
			return nil, err
		}
		if stored != nil && owner != userID {
			log.Warn().Int("row", i).Str("id", pushed.ID).Msg("pushed id belongs to another account")
			results = append(results, models.PushResult{ID: pushed.ID, Error: ErrForeignRecord.Error()})
			continue
		}

		decision := decide(stored, pushed)
		if !decision.Write {
			results = append(results, models.PushResult{ID: pushed.ID, Winner: decision.Winner, Row: stored})
			continue
		}

		sequence++
		pushed.Sequence = sequence

		var (
			query string
			args  []any
		)
		if stored == nil {
			query, args, err = buildInsertRecordQuery(table, userID, pushed)
		} else {
			query, args, err = buildUpdateRecordQuery(table, userID, pushed)
		}
		if err != nil {
			log.Err(err).Msg("failed to build write query")
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Int("row", i).Str("id", pushed.ID).Msg("failed to write row")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		written := pushed
		results = append(results, models.PushResult{ID: pushed.ID, Winner: decision.Winner, Row: &written})
	}

	if sequence != startSequence {
		if _, err = tx.ExecContext(ctx, storeSequence, table.String(), sequence); err != nil {
			log.Err(err).Msg("failed to store sequence counter")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Int("rows", len(rows)).
		Int64("assigned", sequence-startSequence).
		Msg("push batch applied")

	return results, nil
}

func (r *recordRepository) selectForPush(ctx context.Context, tx *sql.Tx, table models.Table, id string) (*models.Record, int64, error) {
	query, args, err := buildSelectForPushQuery(table, id)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, owner, err := scanRecord(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrRecordNotFound
		}
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &record, owner, nil
}

// Pull asks for one row more than limit to learn whether the stream goes on.
func (r *recordRepository) Pull(ctx context.Context, userID int64, table models.Table, cursor int64, limit int) ([]models.Record, bool, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*recordRepository.Pull").
		Str("table", table.String()).
		Int64("user_id", userID).
		Int64("cursor", cursor).
		Logger()

	if err := checkTable(table); err != nil {
		return nil, false, err
	}

	query, args, err := buildPullQuery(table, userID, cursor, limit+1)
	if err != nil {
		log.Err(err).Msg("failed to build query")
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("failed to execute pull query")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, limit+1)
	for rows.Next() {
		record, _, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Msg("failed to scan row")
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Msg("rows iteration error")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	return records, hasMore, nil
}

func (r *recordRepository) Stats(ctx context.Context, userID int64, table models.Table) (models.TableStats, error) {
	log := logger.FromContext(ctx)

	if err := checkTable(table); err != nil {
		return models.TableStats{}, err
	}

	query, args, err := buildStatsQuery(table, userID)
	if err != nil {
		return models.TableStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	stats := models.TableStats{Table: table}
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Counts.Total, &stats.Counts.Active, &stats.LastSequence); err != nil {
		log.Err(err).Str("func", "*recordRepository.Stats").Str("table", table.String()).Msg("failed to count rows")
		return models.TableStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	stats.Counts.Deleted = stats.Counts.Total - stats.Counts.Active

	return stats, nil
}
