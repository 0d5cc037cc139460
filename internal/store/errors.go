package store

import "errors"

var (
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")

	ErrRecordNotFound  = errors.New("record was not found")
	ErrForeignRecord   = errors.New("record belongs to another account")
	ErrUnknownTable    = errors.New("unknown table")
	ErrMismatchedBatch = errors.New("push results do not match pushed rows")
)

var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan record row")
	ErrScanningRows         = errors.New("failed to scan record rows")
)
