package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func newClientAuth(t *testing.T) (*mock.MockServerAdapter, ClientAuthService) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	return serverAdapter, NewClientAuthService(serverAdapter, validators.NewRecordValidator(tables.Default(), 0))
}

func TestClientAuthService_Login(t *testing.T) {
	serverAdapter, svc := newClientAuth(t)
	creds := models.Credentials{Login: "alice", Password: "correct-horse"}

	serverAdapter.EXPECT().Login(gomock.Any(), creds).Return(models.AuthResponse{Token: "tok", UserID: 11}, nil)

	userID, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, int64(11), userID)
}

func TestClientAuthService_LoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		adapterErr error
		wantErr    error
	}{
		{
			name:       "wrong password",
			adapterErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword),
			wantErr:    ErrWrongCredentials,
		},
		{
			name:       "server down",
			adapterErr: fmt.Errorf("%w: boom", adapter.ErrServerUnavailable),
			wantErr:    adapter.ErrServerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serverAdapter, svc := newClientAuth(t)
			serverAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, tt.adapterErr)

			_, err := svc.Login(context.Background(), models.Credentials{Login: "alice", Password: "correct-horse"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientAuthService_Register(t *testing.T) {
	serverAdapter, svc := newClientAuth(t)

	_, err := svc.Register(context.Background(), models.Credentials{Login: "alice", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	serverAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists))

	_, err = svc.Register(context.Background(), models.Credentials{Login: "alice", Password: "correct-horse"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}
