package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// Envelope is the set of sync-control fields carried by every synchronizable
// record, on the device and on the server alike.
//
// ID is generated by the device that creates the record and never changes;
// it is the merge key. Clock is bumped by the owning device on each local
// mutation and is the only value consulted when two versions conflict.
// CreatedAt and UpdatedAt are informational. DeletedAt marks a tombstone.
type Envelope struct {
	ID        string     `json:"id"`
	Clock     int64      `json:"clock"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the envelope is a soft-delete tombstone.
func (e Envelope) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Record is an envelope together with its table-specific payload.
//
// Sequence is assigned by the server whenever the stored state of the record
// changes. It is zero for rows that have never been stored on the server and
// is ignored by the server on push.
type Record struct {
	Envelope
	Payload  json.RawMessage `json:"payload,omitempty"`
	Sequence int64           `json:"sequence,omitempty"`
}

// Normalize truncates timestamps to microseconds and converts them to UTC,
// the precision both stores keep.
func (r Record) Normalize() Record {
	r.CreatedAt = TruncateTime(r.CreatedAt)
	r.UpdatedAt = TruncateTime(r.UpdatedAt)
	if r.DeletedAt != nil {
		d := TruncateTime(*r.DeletedAt)
		r.DeletedAt = &d
	}
	return r
}

// SameState reports whether r and other describe the same replicated state.
// Sequence is not part of the state. Payloads are compared as JSON values so
// key order and whitespace do not matter.
func (r Record) SameState(other Record) bool {
	a, b := r.Normalize(), other.Normalize()
	if a.ID != b.ID || a.Clock != b.Clock {
		return false
	}
	if !a.CreatedAt.Equal(b.CreatedAt) || !a.UpdatedAt.Equal(b.UpdatedAt) {
		return false
	}
	if a.IsDeleted() != b.IsDeleted() {
		return false
	}
	if a.IsDeleted() && !a.DeletedAt.Equal(*b.DeletedAt) {
		return false
	}
	return PayloadEqual(a.Payload, b.Payload)
}

// PayloadEqual compares two JSON documents by value. Numbers are compared by
// their literal text so that money amounts never lose precision.
func PayloadEqual(a, b json.RawMessage) bool {
	if len(bytes.TrimSpace(a)) == 0 || len(bytes.TrimSpace(b)) == 0 {
		return len(bytes.TrimSpace(a)) == len(bytes.TrimSpace(b))
	}
	va, err := decodeJSONValue(a)
	if err != nil {
		return false
	}
	vb, err := decodeJSONValue(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func decodeJSONValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// TruncateTime returns t in UTC with microsecond precision.
func TruncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
