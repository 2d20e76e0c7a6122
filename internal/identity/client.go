// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/internal/platform/constants"
)

const serviceName = "identity"

// retryBackoff is the pause between retry attempts against the identity service.
const retryBackoff = 100 * time.Millisecond

// Client is the raw HTTP client for the identity service.
//
// It knows nothing about caching or circuit breaking; [Resolver] layers
// those on top.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates an identity client with a hard per-call timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

/*
FetchUser retrieves a user record from the identity service.

Description: Retries transient failures up to constants.UpstreamRetryAttempts
times. A 404 is terminal and is never retried.

Parameters:
  - context: context.Context
  - userID: The user's UUID string.

Returns:
  - *User: The resolved record.
  - error: apperr.NotFound or apperr.UpstreamUnavailable.
*/
func (client *Client) FetchUser(context context.Context, userID string) (*User, error) {
	var lastErr error

	for attempt := 0; attempt <= constants.UpstreamRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-context.Done():
				return nil, apperr.UpstreamUnavailable(serviceName, context.Err())
			case <-time.After(retryBackoff):
			}
		}

		user, err := client.fetchOnce(context, userID)
		if err == nil {
			return user, nil
		}
		if apperr.IsNotFound(err) {
			return nil, err
		}
		lastErr = err
	}

	client.logger.WarnContext(context, "identity_retries_exhausted",
		slog.String("user_id", userID),
		slog.Int("attempts", constants.UpstreamRetryAttempts+1),
	)
	return nil, lastErr
}

func (client *Client) fetchOnce(context context.Context, userID string) (*User, error) {
	url := fmt.Sprintf("%s/api/users/%s", client.baseURL, userID)

	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	response, err := client.http.Do(request)
	if err != nil {
		return nil, apperr.UpstreamUnavailable(serviceName, err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("User")
	case response.StatusCode != http.StatusOK:
		return nil, apperr.UpstreamUnavailable(serviceName, fmt.Errorf("identity: unexpected status %d", response.StatusCode))
	}

	var payload struct {
		Data User `json:"data"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.UpstreamUnavailable(serviceName, fmt.Errorf("identity: malformed body: %w", err))
	}

	return &payload.Data, nil
}
