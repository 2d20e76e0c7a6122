// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/pkg/pointer"
)

// fakeCache is an in-memory Cache for resolver tests.
type fakeCache struct {
	entries map[string]*User
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*User)}
}

func (cache *fakeCache) Get(_ context.Context, userID string) (*User, bool) {
	user, hit := cache.entries[userID]
	return user, hit
}

func (cache *fakeCache) Set(_ context.Context, user *User, _ time.Duration) {
	if user == nil || user.Unavailable {
		return
	}
	cache.entries[user.ID] = user
	cache.sets++
}

// fakeFetcher scripts per-user outcomes for the outbound call.
type fakeFetcher struct {
	users map[string]*User
	err   error
	calls int
}

func (fetcher *fakeFetcher) FetchUser(_ context.Context, userID string) (*User, error) {
	fetcher.calls++
	if fetcher.err != nil {
		return nil, fetcher.err
	}
	if user, ok := fetcher.users[userID]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func newTestResolver(cache Cache, fetcher Fetcher) *Resolver {
	breaker := NewBreaker(5, 30*time.Second)
	return NewResolver(cache, breaker, fetcher, 10*time.Minute, slog.Default())
}

/*
TestResolver_CacheHitSkipsClient verifies the cache short-circuits the pipeline.
*/
func TestResolver_CacheHitSkipsClient(t *testing.T) {
	cache := newFakeCache()
	cache.entries["u1"] = &User{ID: "u1", Username: "cached_reader"}
	fetcher := &fakeFetcher{}

	resolver := newTestResolver(cache, fetcher)
	user := resolver.GetUser(context.Background(), "u1")

	assert.Equal(t, "cached_reader", user.Username)
	assert.Zero(t, fetcher.calls)
}

/*
TestResolver_MissFetchesAndCaches verifies a miss populates the cache.
*/
func TestResolver_MissFetchesAndCaches(t *testing.T) {
	cache := newFakeCache()
	fetcher := &fakeFetcher{users: map[string]*User{
		"u2": {ID: "u2", Username: "nightowl", Bio: pointer.To("reads after midnight")},
	}}

	resolver := newTestResolver(cache, fetcher)
	user := resolver.GetUser(context.Background(), "u2")

	assert.Equal(t, "nightowl", user.Username)
	assert.False(t, user.Unavailable)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, cache.sets)
}

/*
TestResolver_FailureYieldsPlaceholder verifies the degraded record contract.
*/
func TestResolver_FailureYieldsPlaceholder(t *testing.T) {
	cache := newFakeCache()
	fetcher := &fakeFetcher{err: apperr.UpstreamUnavailable("identity", nil)}

	resolver := newTestResolver(cache, fetcher)
	user := resolver.GetUser(context.Background(), "u3")

	assert.Equal(t, "u3", user.ID)
	assert.Equal(t, PlaceholderUsername, user.Username)
	assert.True(t, user.Unavailable)
	assert.Zero(t, cache.sets, "placeholders must not be cached")
}

/*
TestResolver_OpenBreakerSkipsNetwork verifies that an open breaker produces
placeholders without touching the client.
*/
func TestResolver_OpenBreakerSkipsNetwork(t *testing.T) {
	cache := newFakeCache()
	fetcher := &fakeFetcher{err: apperr.UpstreamUnavailable("identity", nil)}

	resolver := newTestResolver(cache, fetcher)

	// Trip the breaker with five consecutive failures
	for i := 0; i < 5; i++ {
		resolver.GetUser(context.Background(), "u4")
	}
	callsAtTrip := fetcher.calls

	user := resolver.GetUser(context.Background(), "u4")
	assert.True(t, user.Unavailable)
	assert.Equal(t, callsAtTrip, fetcher.calls, "open breaker must not call the client")
}

/*
TestResolver_BatchDegradesIndependently verifies partial batch resolution.
*/
func TestResolver_BatchDegradesIndependently(t *testing.T) {
	cache := newFakeCache()
	fetcher := &fakeFetcher{users: map[string]*User{
		"known": {ID: "known", Username: "bookworm"},
	}}

	resolver := newTestResolver(cache, fetcher)
	users := resolver.GetUsers(context.Background(), []string{"known", "missing", "known"})

	assert.Len(t, users, 2)
	assert.Equal(t, "bookworm", users["known"].Username)
	assert.True(t, users["missing"].Unavailable)
	// Duplicate "known" collapses to a single lookup
	assert.Equal(t, 2, fetcher.calls)
}
