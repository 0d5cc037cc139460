// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the sync server and the device
// daemon. Request- and cycle-scoped loggers travel in context.Context and are
// recovered with [FromContext].
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// RotationConfig bounds the device log file.
type RotationConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger returns a JSON logger writing to stdout. Every entry carries the
// role, a timestamp and the calling function under "func".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger writes to a size-rotated file. An empty path puts the file
// next to the executable as "logs/<role>.log".
func NewClientLogger(role string, rotation RotationConfig) *Logger {
	path := rotation.Path
	if path == "" {
		execPath, err := os.Executable()
		if err != nil {
			return newLogger(os.Stdout, role)
		}
		path = filepath.Join(filepath.Dir(execPath), "logs", role+".log")
	}

	return newLogger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(rotation.MaxSizeMB, 10),
		MaxBackups: orDefault(rotation.MaxBackups, 3),
		MaxAge:     orDefault(rotation.MaxAgeDays, 28),
		Compress:   true,
	}, role)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Nop discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithUser returns ctx carrying a child of its logger tagged with user_id.
func WithUser(ctx context.Context, userID int64) context.Context {
	child := log.Ctx(ctx).With().Int64("user_id", userID).Logger()
	return child.WithContext(ctx)
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. When none is attached
// zerolog falls back to its default logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
