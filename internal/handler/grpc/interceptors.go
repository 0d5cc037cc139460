package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

const (
	traceIDKey       = "x-trace-id"
	authorizationKey = "authorization"
	retryAfterKey    = "retry-after"
)

func firstValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	traceID := firstValue(ctx, traceIDKey)
	if traceID == "" {
		traceID = utils.NewRecordID()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})

	ctx = context.WithValue(ctx, utils.TraceIDCtxKey, traceID)
	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))

	return next(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	log := logger.FromContext(ctx)
	code := status.Code(err)
	event := log.Info()
	if code == codes.Internal || code == codes.Unknown {
		event = log.Error()
	}
	event.
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func (h *Handler) auth(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstValue(ctx, authorizationKey))
	if err != nil {
		log.Err(err).Send()
		return nil, status.Error(codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid)
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("error occurred during parsing token")
		return nil, status.Error(codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid)
	}

	ctx = utils.WithUserID(ctx, token.UserID)
	ctx = logger.WithUser(ctx, token.UserID)
	return next(ctx, req)
}

// rateLimit runs after auth, so every call is counted against the account.
func (h *Handler) rateLimit(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	if h.limiter == nil {
		return next(ctx, req)
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid)
	}

	decision := h.limiter.Allow(ctx, ratelimit.UserKey(userID))
	if !decision.Allowed {
		logger.FromContext(ctx).Warn().Dur("retry_after", decision.RetryAfter).Msg("rate limit exceeded")
		_ = grpc.SetHeader(ctx, metadata.Pairs(retryAfterKey, ratelimit.RetryAfterSeconds(decision)))
		return nil, status.Error(codes.ResourceExhausted, app.MsgRateLimitExceeded)
	}
	return next(ctx, req)
}
