package tables

import "errors"

var (
	ErrUnknownTable     = errors.New("unknown table")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid kind")
)
