package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is checked in order: an unknown table is also invalid data,
// so it has to be matched first.
var errorStatuses = []errorStatus{
	{validators.ErrUnknownTable, http.StatusNotFound, app.MsgUnknownTable},
	{store.ErrUnknownTable, http.StatusNotFound, app.MsgUnknownTable},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrIntegrityCheckFailed, http.StatusBadRequest, app.MsgIntegrityCheckFailed},
	{service.ErrWrongCredentials, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{store.ErrForeignRecord, http.StatusForbidden, app.MsgForeignRecord},
	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeServiceError answers with the status of err. Validation details are
// appended to the message so the device can log why a batch was refused.
func writeServiceError(w http.ResponseWriter, err error) {
	status, message := statusFromError(err)
	if message == app.MsgInvalidDataProvided && strings.HasPrefix(err.Error(), app.MsgInvalidDataProvided) {
		message = err.Error()
	}
	utils.WriteError(w, status, message)
}
