package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/merge"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	pushRetryAttempts = 3
	pushRetryBase     = 50 * time.Millisecond
)

// syncService reconciles pushed rows with the authoritative store and serves
// the pull stream. It keeps no state between requests.
type syncService struct {
	records   store.RecordRepository
	validator validators.Validator
	retryable func(error) bool

	pageSize int

	logger *logger.Logger
}

// NewSyncService builds the server sync service. retryable classifies store
// errors that justify running a whole push batch again; nil never retries.
func NewSyncService(records store.RecordRepository, validator validators.Validator, retryable func(error) bool, cfg config.Sync, logger *logger.Logger) SyncService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}
	if retryable == nil {
		retryable = func(error) bool { return false }
	}

	return &syncService{
		records:   records,
		validator: validator,
		retryable: retryable,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// Push validates every row on its own. Invalid rows are answered with an
// error and never reach the store; the rest are applied as one batch. The
// response lists one result per request row in request order.
func (s *syncService) Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*syncService.Push").
		Str("table", req.Table.String()).
		Logger()

	results := make([]models.PushResult, len(req.Rows))
	accepted := make([]models.Record, 0, len(req.Rows))
	positions := make([]int, 0, len(req.Rows))

	for i, row := range req.Rows {
		err := s.validator.Validate(ctx, validators.TableRecord{Table: req.Table, Record: row})
		if err != nil {
			log.Warn().Err(err).Str("id", row.ID).Msg("row rejected")
			results[i] = models.PushResult{ID: row.ID, Error: err.Error()}
			continue
		}
		accepted = append(accepted, row)
		positions = append(positions, i)
	}

	if len(accepted) == 0 {
		return models.PushResponse{Results: results}, nil
	}

	var applied []models.PushResult
	backoff := retry.WithMaxRetries(pushRetryAttempts, retry.NewExponential(pushRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := s.records.ApplyPush(ctx, userID, req.Table, accepted, merge.ResolvePush)
		if err != nil {
			if s.retryable(err) {
				log.Warn().Err(err).Msg("push batch failed, retrying")
				return retry.RetryableError(err)
			}
			return err
		}
		applied = res
		return nil
	})
	if err != nil {
		log.Err(err).Int("rows", len(accepted)).Msg("push batch failed")
		return models.PushResponse{}, fmt.Errorf("push failed: %w", err)
	}
	if len(applied) != len(accepted) {
		return models.PushResponse{}, fmt.Errorf("%w: applied %d of %d", store.ErrMismatchedBatch, len(applied), len(accepted))
	}

	for j, result := range applied {
		results[positions[j]] = result
	}

	log.Debug().
		Int("rows", len(req.Rows)).
		Int("accepted", len(accepted)).
		Msg("push processed")

	return models.PushResponse{Results: results}, nil
}

// Pull returns one page. The cursor in the response is the highest sequence
// on the page, or the request cursor when the page is empty.
func (s *syncService) Pull(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error) {
	rows, hasMore, err := s.records.Pull(ctx, userID, req.Table, req.Cursor, s.pageSize)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncService.Pull").
			Str("table", req.Table.String()).
			Int64("cursor", req.Cursor).
			Msg("pull failed")
		return models.PullResponse{}, fmt.Errorf("pull failed: %w", err)
	}

	cursor := req.Cursor
	for _, row := range rows {
		if row.Sequence > cursor {
			cursor = row.Sequence
		}
	}
	if rows == nil {
		rows = []models.Record{}
	}

	return models.PullResponse{Rows: rows, Cursor: cursor, HasMore: hasMore}, nil
}

// Stats covers one table, or every synchronized table when none is named.
func (s *syncService) Stats(ctx context.Context, userID int64, req models.StatsRequest) (models.StatsResponse, error) {
	tables := models.SyncTables
	if req.Table != "" {
		tables = []models.Table{req.Table}
	}

	response := models.StatsResponse{Tables: make([]models.TableStats, 0, len(tables))}
	for _, table := range tables {
		stats, err := s.records.Stats(ctx, userID, table)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*syncService.Stats").Str("table", table.String()).Msg("stats failed")
			return models.StatsResponse{}, fmt.Errorf("stats failed: %w", err)
		}
		response.Tables = append(response.Tables, stats)
		response.Totals.Total += stats.Counts.Total
		response.Totals.Active += stats.Counts.Active
		response.Totals.Deleted += stats.Counts.Deleted
	}

	return response, nil
}
