// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the merged configuration of both binaries. Fields are
// filled from env (caarlos0/env tags), flags and an optional JSON file.
type StructuredConfig struct {
	App       App       `envPrefix:"APP_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Server    Server    `envPrefix:"SERVER_"`
	Sync      Sync      `envPrefix:"SYNC_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	Adapter   Adapter   `envPrefix:"ADAPTER_"`
	Workers   Workers   `envPrefix:"WORKERS_"`
	Client    Client    `envPrefix:"CLIENT_"`

	// JSONFilePath is read from CONFIG or -c/-config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token and integrity settings.
type App struct {
	// TokenSignKey signs and verifies bearer tokens. Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`
	// TokenIssuer is the "iss" claim. Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
	// TokenDuration is the token lifetime. Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
	// HashKey enables HMAC integrity of push bodies when non-empty. Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
	// Version is reported by /api/version. Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups both stores; the server uses DB, the device uses SQLite.
type Storage struct {
	DB     DB     `envPrefix:"DB_"`
	SQLite SQLite `envPrefix:"SQLITE_"`
}

// DB is the authoritative Postgres store. Env: STORAGE_DB_DSN
type DB struct {
	DSN string `env:"DSN"`
}

// SQLite is the device record store file. Env: STORAGE_SQLITE_PATH
type SQLite struct {
	Path string `env:"PATH"`
}

// Server holds listener settings. An empty GRPCAddress disables gRPC.
type Server struct {
	HTTPAddress     string        `env:"HTTP_ADDRESS"`
	GRPCAddress     string        `env:"GRPC_ADDRESS"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Sync bounds one pull page and one push batch.
type Sync struct {
	PageSize    int `env:"PAGE_SIZE"`
	MaxPushRows int `env:"MAX_PUSH_ROWS"`
}

// RateLimit is the per-identifier request budget. Store is "memory" or
// "postgres".
type RateLimit struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
	Store    string        `env:"STORE"`
}

// Adapter is how the device reaches the server.
type Adapter struct {
	ServerAddress  string        `env:"SERVER_ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers configures background jobs. SyncParallelism is how many tables
// sync at once.
type Workers struct {
	SyncInterval    time.Duration `env:"SYNC_INTERVAL"`
	SyncParallelism int           `env:"SYNC_PARALLELISM"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL"`
}

// Client holds the device account and its log file.
type Client struct {
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`
	LogPath  string `env:"LOG_PATH"`
}

const (
	RateLimitStoreMemory   = "memory"
	RateLimitStorePostgres = "postgres"

	DefaultPageSize = 100
	MaxPageSize     = 1000
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-fin-keeper",
			TokenDuration: 24 * time.Hour,
		},
		Storage: Storage{
			SQLite: SQLite{Path: "fin-keeper.db"},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Sync: Sync{
			PageSize:    DefaultPageSize,
			MaxPushRows: 500,
		},
		RateLimit: RateLimit{
			Requests: 60,
			Window:   time.Minute,
			Store:    RateLimitStoreMemory,
		},
		Adapter: Adapter{
			ServerAddress:  "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SyncInterval:    30 * time.Second,
			SyncParallelism: 2,
			JanitorInterval: time.Minute,
		},
	}
}

// GetStructuredConfig merges env, flags, JSON and defaults and validates the
// result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
