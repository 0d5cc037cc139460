// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the device daemon's view of the sync server.
//
// [ServerAdapter] hides the transport. Failures are reported with the
// sentinels in errors.go so the sync engine can tell an expired credential
// ([ErrUnauthorized]) from a rate limit ([*RateLimitedError]) or a transient
// outage ([IsTransient]).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

type ServerAdapter interface {
	// SetToken stores the bearer credential attached to sync calls.
	SetToken(token string)
	Token() string

	// Register and Login store the returned token on success.
	Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)
	Stats(ctx context.Context, req models.StatsRequest) (models.StatsResponse, error)

	// Version needs no token; a successful answer means the server is reachable.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
