package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Str("login", credentials.Login).Msg("registration failed")
		writeServiceError(w, err)
		return
	}

	h.writeToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Str("login", credentials.Login).Msg("login failed")
		writeServiceError(w, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")
	h.writeToken(w, r, foundUser)
}

// writeToken answers with the bearer both in the body and in the
// Authorization header.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("id", user.UserID).Msg("creation of token failed")
		utils.WriteError(w, http.StatusInternalServerError, app.MsgInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, UserID: user.UserID}, http.StatusOK)
}
