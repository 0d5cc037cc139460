package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, validator validators.Validator) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, validator: validator}
}

func (a *clientAuthService) Register(ctx context.Context, credentials models.Credentials) (int64, error) {
	if err := a.validator.Validate(ctx, credentials); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	auth, err := a.adapter.Register(ctx, credentials)
	if err != nil {
		return 0, fmt.Errorf("register on server: %w", mapAdapterError(err))
	}
	return auth.UserID, nil
}

// Login leaves the token in the adapter; the sync engine reads it from there.
func (a *clientAuthService) Login(ctx context.Context, credentials models.Credentials) (int64, error) {
	if err := a.validator.Validate(ctx, credentials, validators.FieldLogin); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	auth, err := a.adapter.Login(ctx, credentials)
	if err != nil {
		return 0, fmt.Errorf("login on server: %w", mapAdapterError(err))
	}
	if auth.UserID <= 0 {
		return 0, fmt.Errorf("login on server: %w", ErrNotLoggedIn)
	}
	return auth.UserID, nil
}
