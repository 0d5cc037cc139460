package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	resp, err := h.services.SyncService.Push(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Str("table", string(req.Table)).Int("rows", len(req.Rows)).Msg("push failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	resp, err := h.services.SyncService.Pull(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Str("table", string(req.Table)).Int64("cursor", req.Cursor).Msg("pull failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// stats accepts an empty body as "all tables".
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.stats").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	resp, err := h.services.SyncService.Stats(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.stats").Str("table", string(req.Table)).Msg("stats failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Err(errNoUserInContext).Str("uri", r.RequestURI).Send()
		utils.WriteError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)
		return 0, false
	}
	return userID, true
}
