package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func TestConnectivity_Ping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "server answers"},
		{
			name:    "server down",
			err:     fmt.Errorf("%w: /api/version: connection refused", adapter.ErrServerUnavailable),
			wantErr: adapter.ErrServerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			serverAdapter := mock.NewMockServerAdapter(ctrl)
			serverAdapter.EXPECT().Version(gomock.Any()).Return(models.AppBuildInfo{Version: "1.0.0"}, tt.err)

			err := NewClientConnectivityService(serverAdapter).Ping(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
