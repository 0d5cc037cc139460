package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownTable     = errors.New("unknown table")
	ErrEmptyRows        = errors.New("rows list cannot be empty")
	ErrTooManyRows      = errors.New("too many rows in one batch")
	ErrDuplicateID      = errors.New("duplicate id in batch")
	ErrInvalidCursor    = errors.New("cursor must not be negative")
	ErrInvalidID        = errors.New("invalid record id")
	ErrInvalidClock     = errors.New("clock must be positive")
	ErrMissingTimestamp = errors.New("createdAt and updatedAt are required")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrInvalidLogin     = errors.New("invalid login")
	ErrInvalidPassword  = errors.New("invalid password")
)
