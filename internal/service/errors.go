package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong login or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrIntegrityCheckFailed  = errors.New("push body hash mismatch")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// client side
var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSyncInProgress     = errors.New("sync already in progress")
	ErrRecordIsDeleted    = errors.New("record is deleted")
	ErrRecordIsNotDeleted = errors.New("record is not deleted")
)
