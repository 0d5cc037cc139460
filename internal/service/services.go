package service

import (
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewRecordValidator(tables.Default(), cfg.Sync.MaxPushRows)

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	syncService := NewSyncService(storages.RecordRepository, validator, storages.DB.IsRetryable, cfg.Sync, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, crypto.NewCredentialHasher(), validator, cfg.App, logger),
		SyncService:    NewSyncValidationService(validator).Wrap(syncService),
		AppInfoService: appInfo,
	}, nil
}
