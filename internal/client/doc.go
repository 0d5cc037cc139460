// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the headless sync daemon of a device.
//
// It signs in with the configured account, keeps the sync scheduler running,
// maps OS signals to sync triggers and signs in again when the server stops
// accepting the token.
package client
