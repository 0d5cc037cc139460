package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-g", ":9090",
		"-d", "postgres://localhost/fin",
		"-s", "https://sync.example.org",
		"-token-duration", "2h",
		"-rate-limit-window", "45s",
		"-sync-interval", "10s",
		"-login", "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, ":9090", cfg.Server.GRPCAddress)
	assert.Equal(t, "postgres://localhost/fin", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://sync.example.org", cfg.Adapter.ServerAddress)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 45*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 10*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "alice", cfg.Client.Login)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "localhost:8080", false},
		{"0.0.0.0:80", "0.0.0.0:80", false},
		{":9090", ":9090", false},
		{"[::1]:443", "[::1]:443", false},
		{"example.com:80", "", true},
		{"localhost", "", true},
		{"localhost:0", "", true},
		{"localhost:http", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}
