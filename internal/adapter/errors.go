package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrServerUnavailable   = errors.New("server unavailable")
	ErrNoToken             = errors.New("no bearer token set")
)

// RateLimitedError is returned for HTTP 429. RetryAfter is zero when the
// server did not say.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// IsTransient reports whether err is worth retrying on a later cycle without
// user action: network failures, timeouts, 5xx answers and rate limits.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var rateLimited *RateLimitedError
	switch {
	case errors.As(err, &rateLimited):
		return true
	case errors.Is(err, ErrInternalServerError):
		return true
	}
	return IsUnreachable(err)
}

// IsUnreachable reports whether err means the server did not answer at all:
// a network failure, a timeout or a gateway error.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrServerUnavailable):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.As(err, &netErr):
		return true
	}
	return false
}

// RetryAfter extracts the server's retry-after hint from err.
func RetryAfter(err error) (time.Duration, bool) {
	var rateLimited *RateLimitedError
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter, true
	}
	return 0, false
}
