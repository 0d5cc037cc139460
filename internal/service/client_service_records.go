package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type recordService struct {
	tracker  ChangeTracker
	records  store.LocalRecordRepository
	registry *tables.Registry
	engine   SyncEngine
	now      func() time.Time
}

// NewRecordService serves local reads and writes. When engine is not nil its
// pending count is refreshed after every write.
func NewRecordService(tracker ChangeTracker, records store.LocalRecordRepository, registry *tables.Registry, engine SyncEngine) RecordService {
	return &recordService{
		tracker:  tracker,
		records:  records,
		registry: registry,
		engine:   engine,
		now:      time.Now,
	}
}

// stamp writes through the tracker and publishes the new pending count.
func (r *recordService) stamp(ctx context.Context, userID int64, table models.Table, id string, edit func(current *models.Record) (models.Record, error)) (models.LocalRecord, error) {
	record, err := r.tracker.Stamp(ctx, userID, table, id, edit)
	if err != nil {
		return models.LocalRecord{}, err
	}

	if r.engine != nil {
		if err = r.engine.RefreshPending(ctx, userID); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*recordService.stamp").Msg("pending count not refreshed")
		}
	}
	return record, nil
}

func (r *recordService) Create(ctx context.Context, userID int64, table models.Table, payload json.RawMessage) (models.LocalRecord, error) {
	if err := r.validatePayload(table, payload); err != nil {
		return models.LocalRecord{}, err
	}

	return r.stamp(ctx, userID, table, utils.NewRecordID(), func(*models.Record) (models.Record, error) {
		return models.Record{Payload: payload}, nil
	})
}

func (r *recordService) Update(ctx context.Context, userID int64, table models.Table, id string, payload json.RawMessage) (models.LocalRecord, error) {
	if err := r.validatePayload(table, payload); err != nil {
		return models.LocalRecord{}, err
	}

	return r.stamp(ctx, userID, table, id, func(current *models.Record) (models.Record, error) {
		if current == nil {
			return models.Record{}, store.ErrRecordNotFound
		}
		if current.IsDeleted() {
			return models.Record{}, ErrRecordIsDeleted
		}
		return models.Record{Payload: payload}, nil
	})
}

func (r *recordService) Delete(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error) {
	return r.stamp(ctx, userID, table, id, func(current *models.Record) (models.Record, error) {
		if current == nil {
			return models.Record{}, store.ErrRecordNotFound
		}
		if current.IsDeleted() {
			return models.Record{}, ErrRecordIsDeleted
		}
		deletedAt := r.now()
		return models.Record{
			Envelope: models.Envelope{DeletedAt: &deletedAt},
			Payload:  current.Payload,
		}, nil
	})
}

func (r *recordService) Restore(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error) {
	return r.stamp(ctx, userID, table, id, func(current *models.Record) (models.Record, error) {
		if current == nil {
			return models.Record{}, store.ErrRecordNotFound
		}
		if !current.IsDeleted() {
			return models.Record{}, ErrRecordIsNotDeleted
		}
		// полезная нагрузка надгробия могла не пройти проверку
		if err := r.validatePayload(table, current.Payload); err != nil {
			return models.Record{}, err
		}
		return models.Record{Payload: current.Payload}, nil
	})
}

func (r *recordService) Get(ctx context.Context, userID int64, table models.Table, id string) (models.LocalRecord, error) {
	return r.records.Get(ctx, userID, table, id)
}

func (r *recordService) List(ctx context.Context, userID int64, table models.Table, includeDeleted bool) ([]models.LocalRecord, error) {
	return r.records.List(ctx, userID, table, includeDeleted)
}

func (r *recordService) validatePayload(table models.Table, payload json.RawMessage) error {
	descriptor, err := r.registry.Lookup(table)
	if err != nil {
		return err
	}
	if err = descriptor.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
