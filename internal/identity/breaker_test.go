// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBreaker returns a breaker with a controllable clock.
func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *time.Time) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(threshold, cooldown)
	b.now = func() time.Time { return current }
	return b, &current
}

/*
TestBreaker_ClosedAllowsCalls verifies the default pass-through behavior.
*/
func TestBreaker_ClosedAllowsCalls(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	assert.Equal(t, StateClosed, b.State())
	for i := 0; i < 10; i++ {
		assert.True(t, b.Allow())
	}
}

/*
TestBreaker_TripsAtThreshold verifies closed → open after consecutive failures.
*/
func TestBreaker_TripsAtThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	b.RecordFailure()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

/*
TestBreaker_SuccessResetsFailureCount verifies that an intervening success
clears the consecutive-failure counter.
*/
func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()

	b.RecordFailure()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())
}

/*
TestBreaker_HalfOpenProbe walks the full open → half-open → closed cycle.
*/
func TestBreaker_HalfOpenProbe(t *testing.T) {
	b, clock := newTestBreaker(1, time.Minute)

	b.RecordFailure()
	require.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	// Cooldown elapses: exactly one probe is let through
	*clock = clock.Add(time.Minute)
	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
	assert.False(t, b.Allow(), "second caller must not get a probe")

	// Probe succeeds: breaker closes fully
	b.RecordSuccess()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

/*
TestBreaker_FailedProbeReopens verifies half-open → open with a fresh cooldown.
*/
func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, clock := newTestBreaker(1, time.Minute)

	b.RecordFailure()
	*clock = clock.Add(time.Minute)
	require.True(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	// Full new cooldown required before the next probe
	*clock = clock.Add(30 * time.Second)
	assert.False(t, b.Allow())
	*clock = clock.Add(30 * time.Second)
	assert.True(t, b.Allow())
}
