// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

/*
Package identity resolves user display records from the external identity
service.

The user-data service stores only opaque user IDs. Whenever a response needs a
username or avatar (list owners, shared shelves), this package resolves the ID
through a layered pipeline:

 1. Redis cache (TTL-bounded).
 2. Circuit-breaker-guarded HTTP call with bounded retries.
 3. Degraded placeholder record when everything else fails.

A resolution never returns an error to the caller. An identity outage yields
placeholder records marked Unavailable instead of failing the request.
*/
package identity

// User is the display record resolved for a user ID.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`

	// Unavailable marks a degraded placeholder produced while the identity
	// service could not be reached. Placeholders are never cached.
	Unavailable bool `json:"unavailable,omitempty"`
}

// PlaceholderUsername is the display name on degraded records.
const PlaceholderUsername = "unavailable"

// Placeholder builds the degraded record returned when the identity service
// cannot be reached.
func Placeholder(userID string) *User {
	return &User{
		ID:          userID,
		Username:    PlaceholderUsername,
		Unavailable: true,
	}
}
