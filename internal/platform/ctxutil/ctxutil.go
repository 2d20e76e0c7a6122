// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

// Package ctxutil reads and writes the request-scoped values (request ID,
// logger, auth claims) that the middleware chain stores in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/safegergis/tome/internal/platform/ctxkey"
	"github.com/safegergis/tome/internal/platform/sec"
)

// WithRequestID attaches the correlation ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" when none was attached.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// [slog.Default] so callers never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches the verified token claims to the context.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the verified token claims, or nil for an
// unauthenticated request.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}
