// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/safegergis/tome/internal/platform/constants"
)

// Cache stores resolved user records with a TTL.
//
// # Why an interface?
//
// The resolver is unit-tested against an in-memory fake; production wires
// the Redis-backed implementation.
type Cache interface {
	Get(context context.Context, userID string) (*User, bool)
	Set(context context.Context, user *User, ttl time.Duration)
}

// RedisCache implements [Cache] on top of go-redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed identity cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get retrieves a cached user record.

Description: Cache failures (connectivity, corrupt entries) are treated as
misses. The cache is an optimization, never a source of errors.

Parameters:
  - context: context.Context
  - userID: The user's UUID string.

Returns:
  - *User: The cached record, or nil.
  - bool: Whether the lookup was a hit.
*/
func (cache *RedisCache) Get(context context.Context, userID string) (*User, bool) {
	key := constants.RedisPrefixIdentity + userID

	// redis.Nil and connectivity errors are both misses
	raw, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		return nil, false
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		// Corrupt entry, evict it and miss
		_ = cache.client.Del(context, key).Err()
		return nil, false
	}

	return user, true
}

/*
Set stores a user record with the configured TTL.

Description: Placeholder records are rejected so an outage never poisons the
cache for its whole TTL window. Write failures are silently dropped.

Parameters:
  - context: context.Context
  - user: The record to cache.
  - ttl: time.Duration
*/
func (cache *RedisCache) Set(context context.Context, user *User, ttl time.Duration) {
	if user == nil || user.Unavailable {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return
	}

	key := constants.RedisPrefixIdentity + user.ID
	_ = cache.client.Set(context, key, raw, ttl).Err()
}
