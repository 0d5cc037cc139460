// Package utils holds small helpers shared by the server and the device
// daemon: context keys, bearer tokens, HMAC signing, JSON responses and the
// HTTP client.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey carries the authenticated user id (int64).
var UserIDCtxKey = contextKey("userID")

// TraceIDCtxKey carries the request trace id (string).
var TraceIDCtxKey = contextKey("traceID")

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext reports false when no user id is set or it has the
// wrong type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
