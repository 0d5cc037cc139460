package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// SyncServiceWrapper decorates a SyncService, e.g. with request validation.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// SyncValidationService rejects malformed requests before they reach the
// wrapped SyncService. Row-level rules stay with the inner service so one bad
// row does not fail the batch.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService(validator validators.Validator) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validator,
	}
}

func (v *SyncValidationService) Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Push(ctx, userID, req)
}

func (v *SyncValidationService) Pull(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Pull(ctx, userID, req)
}

func (v *SyncValidationService) Stats(ctx context.Context, userID int64, req models.StatsRequest) (models.StatsResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.StatsResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Stats(ctx, userID, req)
}

func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}
