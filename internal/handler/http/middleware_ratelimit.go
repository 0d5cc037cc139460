package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

// rateLimit counts the request against the caller's budget: the account when
// auth ran before it, the client address otherwise.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := ratelimit.IPKey(r)
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			key = ratelimit.UserKey(userID)
		}

		decision := h.limiter.Allow(r.Context(), key)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		if !decision.Allowed {
			logger.FromRequest(r).Warn().
				Str("key", key).
				Dur("retry_after", decision.RetryAfter).
				Msg("rate limit exceeded")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", ratelimit.RetryAfterSeconds(decision))
			utils.WriteError(w, http.StatusTooManyRequests, app.MsgRateLimitExceeded)
			return
		}

		if !decision.FailedOpen {
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}
		next.ServeHTTP(w, r)
	})
}
