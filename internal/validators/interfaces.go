// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks incoming requests before they reach services.
//
// A [Validator] accepts any supported value and an optional list of field
// names; with no fields every rule for that type is applied. Sync requests,
// envelopes and credentials are handled by [RecordValidator], which takes the
// per-table payload rules from the table registry.
package validators

import "context"

// Validator validates a value, optionally only the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
