package utils

import "github.com/google/uuid"

// NewRecordID returns a time-ordered UUIDv7, falling back to v4 when the
// random source fails.
func NewRecordID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// IsRecordID reports whether s is a canonical UUID.
func IsRecordID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}
