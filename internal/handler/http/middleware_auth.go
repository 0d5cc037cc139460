package http

import (
	"net/http"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

// auth resolves the bearer credential to a user id before any sync logic
// runs. The id goes into the request context and into the request logger.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = logger.WithUser(ctx, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
