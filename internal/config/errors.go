package config

import "errors"

var (
	ErrInvalidAdapterConfigs   = errors.New("invalid adapter configuration")
	ErrInvalidStorageConfigs   = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs       = errors.New("invalid app configuration")
	ErrInvalidWorkerConfigs    = errors.New("invalid worker configuration")
	ErrInvalidServerConfigs    = errors.New("invalid server configuration")
	ErrInvalidSyncConfigs      = errors.New("invalid sync configuration")
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	ErrInvalidClientConfigs    = errors.New("invalid client configuration")
)
