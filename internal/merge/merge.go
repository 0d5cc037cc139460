// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package merge holds the last-writer-wins rule shared by the device store
// (applying pulled rows and push responses) and the server (applying pushed
// rows). Clocks are the only input to the decision; wall-clock timestamps are
// never consulted because device clocks drift.
package merge

import "github.com/MKhiriev/go-fin-keeper/models"

// Action is what the device store must do with an incoming authoritative row.
type Action int

const (
	// Insert stores the incoming row, no local copy exists.
	Insert Action = iota + 1
	// Overwrite replaces the local copy entirely and marks it synced.
	Overwrite
	// KeepLocal leaves the local copy untouched and pending; it is ahead of
	// what the server has seen and will be pushed again.
	KeepLocal
)

func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Overwrite:
		return "overwrite"
	case KeepLocal:
		return "keep_local"
	default:
		return "unknown"
	}
}

// Resolve decides how an authoritative row from the server is applied to the
// local copy. local is nil when the device has never seen the id.
//
// Equal clocks resolve in favour of the server row: it is already the
// converged value every other device will also receive.
func Resolve(local *models.Record, incoming models.Record) Action {
	switch {
	case local == nil:
		return Insert
	case incoming.Clock >= local.Clock:
		return Overwrite
	default:
		return KeepLocal
	}
}

// PushDecision is the server-side outcome for one pushed row.
type PushDecision struct {
	Winner models.Winner
	// Write is true when the stored state changes and a new sequence must be
	// assigned.
	Write bool
}

// ResolvePush decides whether a pushed row replaces the stored one. stored is
// nil when the server has no row with that id.
//
// A higher client clock wins. On equal clocks the stored row wins, unless the
// pushed row is the very state already stored: that is a retried push and is
// reported as a client win without a write, so the response repeats the first
// one.
func ResolvePush(stored *models.Record, incoming models.Record) PushDecision {
	switch {
	case stored == nil:
		return PushDecision{Winner: models.WinnerClient, Write: true}
	case incoming.Clock > stored.Clock:
		return PushDecision{Winner: models.WinnerClient, Write: true}
	case incoming.Clock == stored.Clock && incoming.SameState(*stored):
		return PushDecision{Winner: models.WinnerClient}
	default:
		return PushDecision{Winner: models.WinnerServer}
	}
}
