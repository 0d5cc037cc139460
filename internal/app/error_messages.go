// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the sync server handlers
// and the device daemon.
//
// The server writes a Msg* constant into the "error" field of a failed
// response; the daemon compares the field against the same constants to turn
// a transport failure back into a service error.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails request-level validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match an account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned on registration with a taken login.
	MsgLoginAlreadyExists = "login already exists"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when the bearer credential is
	// missing, expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnknownTable is returned for a table name outside the registry.
	MsgUnknownTable = "unknown table"

	// MsgForeignRecord is returned when a request touches a row owned by
	// another account.
	MsgForeignRecord = "record belongs to another user"

	// MsgIntegrityCheckFailed is returned when the push hash does not match
	// the rows.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgRateLimitExceeded accompanies HTTP 429.
	MsgRateLimitExceeded = "rate limit exceeded"

	MsgMethodNotAllowed = "method not allowed"

	MsgVersionIsNotSpecified = "app version is not specified"
)
