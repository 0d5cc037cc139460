package config

import (
	"fmt"
	"time"
)

// ClientAdapter is how the daemon reaches the server.
type ClientAdapter struct {
	ServerAddress  string
	RequestTimeout time.Duration
}

// ClientStorage is the device store location.
type ClientStorage struct {
	SQLitePath string
}

// ClientWorkers configures the sync scheduler and engine.
type ClientWorkers struct {
	SyncInterval    time.Duration
	SyncParallelism int
	MaxPushRows     int
}

// ClientCredentials is the account the daemon signs in with.
type ClientCredentials struct {
	Login    string
	Password string
}

// ClientConfig is the device daemon's view of [StructuredConfig].
type ClientConfig struct {
	HashKey     string
	Adapter     ClientAdapter
	Storage     ClientStorage
	Workers     ClientWorkers
	Credentials ClientCredentials
	LogPath     string
}

// GetClientConfig loads the merged config and maps the device subset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		HashKey: cfg.App.HashKey,
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			SQLitePath: cfg.Storage.SQLite.Path,
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			SyncParallelism: cfg.Workers.SyncParallelism,
			MaxPushRows:     cfg.Sync.MaxPushRows,
		},
		Credentials: ClientCredentials{
			Login:    cfg.Client.Login,
			Password: cfg.Client.Password,
		},
		LogPath: cfg.Client.LogPath,
	}
}
