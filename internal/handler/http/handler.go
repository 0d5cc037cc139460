package http

import (
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter
	hasher   *utils.Hasher

	logger *logger.Logger
}

// NewHandler wires the HTTP transport. A nil limiter disables rate limiting;
// an empty hashKey disables push integrity checks.
func NewHandler(services *service.Services, limiter *ratelimit.Limiter, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		hasher:   utils.NewHasher(hashKey),
		logger:   logger,
	}
}
