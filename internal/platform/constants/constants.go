// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Upstream Resilience: Circuit-breaker thresholds and retry budgets.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tome-user-data"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the expected 'iss' claim in bearer tokens minted by the
	// identity service.
	AuthIssuer = "tome.app"
)

// # Upstream Resilience

const (
	// UpstreamRetryAttempts is how many times a collaborator call is retried
	// before the breaker records a failure.
	UpstreamRetryAttempts = 2

	// BreakerFailureThreshold is the number of consecutive failures that trips
	// the circuit breaker from closed to open.
	BreakerFailureThreshold = 5

	// BreakerCooldown is how long the breaker stays open before allowing a
	// half-open probe call.
	BreakerCooldown = 30 * time.Second
)

// # Listing Limits

const (
	// MaxSessionListLimit bounds the number of reading sessions returned by a
	// single list call regardless of the requested limit.
	MaxSessionListLimit = 100

	// DefaultLeaderboardLimit is used when a genre/author statistics call does
	// not specify a limit.
	DefaultLeaderboardLimit = 10

	// OverviewLeaderboardLimit is the top-N size embedded in the comprehensive
	// statistics overview.
	OverviewLeaderboardLimit = 5
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData   = "data"
	FieldMeta   = "meta"
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixIdentity keys cached user display records by user ID.
	RedisPrefixIdentity = "identity:user:"
)
