package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func TestNewAppInfoService(t *testing.T) {
	build := models.AppBuildInfo{Version: "1.2.0", Date: "2026-10-01", Commit: "abc123"}

	svc, err := NewAppInfoService(config.App{}, build, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, build, svc.GetBuildInfo(context.Background()))
}

func TestNewAppInfoService_ConfigOverridesVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "2.0.0"}, models.AppBuildInfo{Version: "1.0.0", Commit: "c"}, logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(context.Background())
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, "c", info.Commit)
}

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
	assert.Nil(t, svc)
}
