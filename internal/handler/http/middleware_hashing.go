package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

// pushHashing checks the HMAC of the pushed rows before the body reaches the
// push handler. The digest is taken over the raw "rows" JSON exactly as the
// device sent it.
func (h *Handler) pushHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.hasher.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r).With().Str("func", "*Handler.pushHashing").Logger()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Msg("failed to read request body")
			utils.WriteError(w, http.StatusInternalServerError, app.MsgInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req struct {
			Rows json.RawMessage `json:"rows"`
			Hash string          `json:"hash"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			log.Err(err).Msg("failed to decode JSON")
			utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
			return
		}

		if !h.hasher.Verify(req.Rows, req.Hash) {
			log.Error().Str("hash from request", req.Hash).Msg("hashes are not equal")
			utils.WriteError(w, http.StatusBadRequest, app.MsgIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
