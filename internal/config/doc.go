// Package config loads, merges and validates configuration for the sync
// server and the device daemon.
//
// Sources are merged with mergo so that the first non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (-c / CONFIG)
//  4. Built-in defaults
//
// [GetStructuredConfig] returns the whole tree; [GetClientConfig] returns the
// subset the device daemon needs.
package config
