// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A known path called with a method it does not serve gets 405 with an Allow
// header listing the served methods; an unknown path gets 404.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var found *chi.Route
		routes := router.Routes()
		for i := range routes {
			if routes[i].Pattern == r.URL.Path {
				found = &routes[i]
				break
			}
		}

		if found == nil {
			utils.WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}

		for method := range found.Handlers {
			w.Header().Add("Allow", method)
		}
		utils.WriteError(w, http.StatusMethodNotAllowed, app.MsgMethodNotAllowed)
	}
}
