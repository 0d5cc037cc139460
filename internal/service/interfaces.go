package service

import (
	"context"

	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the server end of the protocol. userID always comes from
// the authenticated credential, never from the request body.
type SyncService interface {
	Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)
	Pull(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error)
	Stats(ctx context.Context, userID int64, req models.StatsRequest) (models.StatsResponse, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
