package service

import (
	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
)

type ClientServices struct {
	AuthService   ClientAuthService
	Tracker       ChangeTracker
	RecordService RecordService
	SyncService   SyncEngine
	SyncJob       SyncScheduler
	Connectivity  ConnectivityService
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	registry := tables.Default()

	tracker := NewChangeTracker(localStore.RecordRepository)
	engine := NewClientSyncService(localStore.RecordRepository, tracker, serverAdapter, SyncEngineConfig{
		Tables:      registry.Tables(),
		Parallelism: cfg.SyncParallelism,
		MaxPushRows: cfg.MaxPushRows,
	}, logger)

	return &ClientServices{
		AuthService:   NewClientAuthService(serverAdapter, validators.NewRecordValidator(registry, cfg.MaxPushRows)),
		Tracker:       tracker,
		RecordService: NewRecordService(tracker, localStore.RecordRepository, registry, engine),
		SyncService:   engine,
		SyncJob:       NewClientSyncJob(engine, cfg.SyncInterval, logger),
		Connectivity:  NewClientConnectivityService(serverAdapter),
	}
}
