// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"context"
	"log/slog"
	"time"
)

// Fetcher is the outbound call the resolver guards. Satisfied by [*Client].
type Fetcher interface {
	FetchUser(context context.Context, userID string) (*User, error)
}

// Resolver resolves user IDs to display records through the full pipeline:
// cache, circuit breaker, HTTP client, degraded placeholder.
type Resolver struct {
	cache    Cache
	breaker  *Breaker
	client   Fetcher
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewResolver wires the resolution pipeline.
func NewResolver(cache Cache, breaker *Breaker, client Fetcher, cacheTTL time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		cache:    cache,
		breaker:  breaker,
		client:   client,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

/*
GetUser resolves a single user ID to a display record.

Description: Never returns an error. When the cache misses and the breaker is
open, or the client call fails, the caller receives a placeholder record with
Unavailable set instead.

Parameters:
  - context: context.Context
  - userID: The user's UUID string.

Returns:
  - *User: A real record or a degraded placeholder. Never nil.
*/
func (resolver *Resolver) GetUser(context context.Context, userID string) *User {

	// 1. Cache hit is the happy path
	if user, hit := resolver.cache.Get(context, userID); hit {
		return user
	}

	// 2. Breaker open: skip the network entirely
	if !resolver.breaker.Allow() {
		resolver.logger.DebugContext(context, "identity_breaker_rejected",
			slog.String("user_id", userID),
			slog.String("state", resolver.breaker.State().String()),
		)
		return Placeholder(userID)
	}

	// 3. Guarded network call
	user, err := resolver.client.FetchUser(context, userID)
	if err != nil {
		resolver.breaker.RecordFailure()
		resolver.logger.WarnContext(context, "identity_resolution_degraded",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return Placeholder(userID)
	}

	resolver.breaker.RecordSuccess()
	resolver.cache.Set(context, user, resolver.cacheTTL)

	return user
}

/*
GetUsers resolves a batch of user IDs.

Description: Each ID resolves independently through [GetUser], so a failure
for one ID degrades only that entry. Duplicate IDs collapse to one lookup.

Parameters:
  - context: context.Context
  - userIDs: IDs to resolve.

Returns:
  - map[string]*User: Records keyed by user ID. Never nil.
*/
func (resolver *Resolver) GetUsers(context context.Context, userIDs []string) map[string]*User {
	resolved := make(map[string]*User, len(userIDs))

	for _, userID := range userIDs {
		if _, seen := resolved[userID]; seen {
			continue
		}
		resolved[userID] = resolver.GetUser(context, userID)
	}

	return resolved
}
