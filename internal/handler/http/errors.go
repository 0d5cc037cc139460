// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrEmptyAuthorizationHeader is logged by the auth middleware when a sync
// request carries no "Authorization" header at all.
var ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

// errNoUserInContext means a sync route was mounted without the auth
// middleware in front of it.
var errNoUserInContext = errors.New("no user id in request context")
