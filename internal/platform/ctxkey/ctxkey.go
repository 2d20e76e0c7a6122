// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

// Package ctxkey holds the typed keys for request-scoped context values.
// The unexported key type guarantees that no other package can collide
// with these entries, since context lookups match on type as well as value.
package ctxkey

type key int

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = iota

	// KeyUser carries the authenticated caller's [sec.AuthClaims].
	KeyUser

	// KeyLogger carries the per-request [*log/slog.Logger].
	KeyLogger
)
