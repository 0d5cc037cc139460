// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks rules shared by both binaries. Zero values are accepted so
// that a builder without defaults still validates.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.PageSize < 0 || cfg.Sync.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size must be within 1..%d", ErrInvalidSyncConfigs, MaxPageSize)
	}
	if cfg.Sync.MaxPushRows < 0 {
		return fmt.Errorf("%w: max push rows must not be negative", ErrInvalidSyncConfigs)
	}

	switch cfg.RateLimit.Store {
	case "", RateLimitStoreMemory, RateLimitStorePostgres:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Store)
	}
	if cfg.RateLimit.Requests < 0 || cfg.RateLimit.Window < 0 {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.Workers.SyncParallelism < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ValidateServer checks what the sync server needs to start.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key and duration are required", ErrInvalidAppConfigs)
	}
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	}
	if cfg.Sync.PageSize == 0 {
		return fmt.Errorf("%w: page size is required", ErrInvalidSyncConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.SQLitePath == "" {
		return ErrInvalidStorageConfigs
	}

	u, err := url.Parse(cfg.Adapter.ServerAddress)
	if err != nil || u.Host == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.SyncParallelism <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Credentials.Login == "" || cfg.Credentials.Password == "" {
		return fmt.Errorf("%w: login and password are required", ErrInvalidClientConfigs)
	}

	return nil
}
