// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable device process.
type Client interface {
	// Run blocks until ctx is cancelled or a fatal error occurs.
	Run(ctx context.Context) error
}
