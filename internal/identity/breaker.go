// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"sync"
	"time"
)

// BreakerState enumerates the circuit breaker states.
type BreakerState int

const (
	// StateClosed allows all calls; failures are counted.
	StateClosed BreakerState = iota
	// StateOpen rejects all calls until the cooldown elapses.
	StateOpen
	// StateHalfOpen allows a single probe call after the cooldown.
	StateHalfOpen
)

// String returns the lowercase state name for logging.
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Breaker is a circuit breaker guarding calls to a collaborator service.
//
// # State Machine
//
//   - closed: calls pass through; consecutive failures are counted. Reaching
//     the threshold trips the breaker to open.
//   - open: calls are rejected outright. After the cooldown window the next
//     Allow() transitions to half-open.
//   - half-open: exactly one probe call is allowed. Success closes the
//     breaker; failure re-opens it and restarts the cooldown.
//
// Safe for concurrent use.
type Breaker struct {
	mu sync.Mutex

	state        BreakerState
	failures     int
	threshold    int
	cooldown     time.Duration
	openedAt     time.Time
	probeInFlight bool

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewBreaker creates a closed breaker with the given trip threshold and
// cooldown window.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		state:     StateClosed,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed right now.
//
// In the open state it also performs the open → half-open transition once the
// cooldown has elapsed. In half-open only the first caller gets the probe.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true

	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.cooldown {
			b.state = StateHalfOpen
			b.probeInFlight = true
			return true
		}
		return false

	case StateHalfOpen:
		if b.probeInFlight {
			return false
		}
		b.probeInFlight = true
		return true
	}

	return false
}

// RecordSuccess resets the breaker after a successful call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateClosed
	b.failures = 0
	b.probeInFlight = false
}

// RecordFailure counts a failed call, tripping or re-opening the breaker as
// needed.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateHalfOpen:
		// Failed probe: back to open, restart the cooldown
		b.state = StateOpen
		b.openedAt = b.now()
		b.probeInFlight = false

	case StateClosed:
		b.failures++
		if b.failures >= b.threshold {
			b.state = StateOpen
			b.openedAt = b.now()
		}
	}
}

// State returns the current state for logging and health reporting.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
