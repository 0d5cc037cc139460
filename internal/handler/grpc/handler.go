package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// Handler is the gRPC transport of the sync service. It is created once at
// startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter
	hasher   *utils.Hasher

	logger *logger.Logger
}

// NewHandler mirrors the HTTP handler: a nil limiter disables rate limiting
// and an empty hashKey disables push integrity checks.
func NewHandler(services *service.Services, limiter *ratelimit.Limiter, hashKey string, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		hasher:   utils.NewHasher(hashKey),
		logger:   logger,
	}
}

// Register attaches the sync service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	RegisterSyncServer(s, h)
}

// Interceptors returns the unary chain in execution order.
func (h *Handler) Interceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		h.withTraceID,
		h.withLogging,
		h.auth,
		h.rateLimit,
	}
}

func (h *Handler) Push(ctx context.Context, req *PushMessage) (*models.PushResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !h.hasher.Verify(req.rawRows, req.Hash) {
		logger.FromContext(ctx).Error().Str("func", "*Handler.Push").Str("hash from request", req.Hash).Msg("hashes are not equal")
		return nil, status.Error(codes.InvalidArgument, app.MsgIntegrityCheckFailed)
	}

	resp, err := h.services.SyncService.Push(ctx, userID, req.PushRequest)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.Push").Str("table", string(req.Table)).Msg("push failed")
		return nil, statusFromError(err)
	}
	return &resp, nil
}

func (h *Handler) Pull(ctx context.Context, req *models.PullRequest) (*models.PullResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.services.SyncService.Pull(ctx, userID, *req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.Pull").Str("table", string(req.Table)).Msg("pull failed")
		return nil, statusFromError(err)
	}
	return &resp, nil
}

func (h *Handler) Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.services.SyncService.Stats(ctx, userID, *req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.Stats").Msg("stats failed")
		return nil, statusFromError(err)
	}
	return &resp, nil
}

func userFromContext(ctx context.Context) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid)
	}
	return userID, nil
}

// statusFromError follows the HTTP error table: unknown table first, then
// validation, then auth.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, validators.ErrUnknownTable), errors.Is(err, store.ErrUnknownTable):
		return status.Error(codes.NotFound, app.MsgUnknownTable)
	case errors.Is(err, service.ErrInvalidDataProvided):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return status.Error(codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid)
	case errors.Is(err, store.ErrForeignRecord):
		return status.Error(codes.PermissionDenied, app.MsgForeignRecord)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, app.MsgInternalServerError)
	}
}
