package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		HashKey       string   `json:"hash_key"`
		Version       string   `json:"version"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		SQLite struct {
			Path string `json:"path"`
		} `json:"sqlite"`
	} `json:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server"`

	Sync struct {
		PageSize    int `json:"page_size"`
		MaxPushRows int `json:"max_push_rows"`
	} `json:"sync"`

	RateLimit struct {
		Requests int      `json:"requests"`
		Window   Duration `json:"window"`
		Store    string   `json:"store"`
	} `json:"rate_limit"`

	Adapter struct {
		ServerAddress  string   `json:"server_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval"`
		SyncParallelism int      `json:"sync_parallelism"`
		JanitorInterval Duration `json:"janitor_interval"`
	} `json:"workers"`

	Client struct {
		Login   string `json:"login"`
		LogPath string `json:"log_path"`
	} `json:"client"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			HashKey:       j.App.HashKey,
			Version:       j.App.Version,
		},
		Storage: Storage{
			DB:     DB{DSN: j.Storage.DB.DSN},
			SQLite: SQLite{Path: j.Storage.SQLite.Path},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			GRPCAddress:     j.Server.GRPCAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
		},
		Sync: Sync{
			PageSize:    j.Sync.PageSize,
			MaxPushRows: j.Sync.MaxPushRows,
		},
		RateLimit: RateLimit{
			Requests: j.RateLimit.Requests,
			Window:   time.Duration(j.RateLimit.Window),
			Store:    j.RateLimit.Store,
		},
		Adapter: Adapter{
			ServerAddress:  j.Adapter.ServerAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:    time.Duration(j.Workers.SyncInterval),
			SyncParallelism: j.Workers.SyncParallelism,
			JanitorInterval: time.Duration(j.Workers.JanitorInterval),
		},
		Client: Client{
			Login:   j.Client.Login,
			LogPath: j.Client.LogPath,
		},
	}, nil
}

// Duration unmarshals from "30s"-style strings or from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
