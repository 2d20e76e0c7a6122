// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

/*
Package catalog provides a read-only HTTP client for the book-catalog
collaborator service.

The user-data service never stores book metadata itself. It holds bare
book IDs and asks the catalog for titles, page counts, audio lengths,
genres, and authors whenever a response needs decoration.

Degradation Contract:

  - A catalog outage must never fail a user-data request.
  - Callers receive an UpstreamUnavailable error and are expected to
    degrade (bare IDs, absent facts) rather than propagate a 5xx.
*/
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/safegergis/tome/internal/platform/apperr"
)

const serviceName = "catalog"

// Client is an HTTP client for the catalog service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a catalog client with a hard per-call timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

/*
GetBook fetches a single book record from the catalog.

Parameters:
  - context: context.Context
  - bookID: Catalog-assigned book identifier.

Returns:
  - *BookSummary: The catalog record.
  - error: apperr.NotFound for unknown IDs, apperr.UpstreamUnavailable otherwise.
*/
func (client *Client) GetBook(context context.Context, bookID int64) (*BookSummary, error) {
	url := fmt.Sprintf("%s/api/books/%d", client.baseURL, bookID)

	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	response, err := client.http.Do(request)
	if err != nil {
		client.logger.WarnContext(context, "catalog_request_failed",
			slog.Int64("book_id", bookID),
			slog.String("error", err.Error()),
		)
		return nil, apperr.UpstreamUnavailable(serviceName, err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("Book")
	case response.StatusCode != http.StatusOK:
		client.logger.WarnContext(context, "catalog_unexpected_status",
			slog.Int64("book_id", bookID),
			slog.Int("status", response.StatusCode),
		)
		return nil, apperr.UpstreamUnavailable(serviceName, fmt.Errorf("catalog: unexpected status %d", response.StatusCode))
	}

	var payload struct {
		Data BookSummary `json:"data"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.UpstreamUnavailable(serviceName, fmt.Errorf("catalog: malformed body: %w", err))
	}

	return &payload.Data, nil
}

/*
GetBooks resolves a batch of book IDs with one catalog call per distinct ID.

Description: Each ID resolves independently. IDs the catalog cannot serve
are simply absent from the result map, so one bad ID (or a full outage)
never poisons the batch.

Parameters:
  - context: context.Context
  - bookIDs: IDs to resolve, duplicates allowed.

Returns:
  - map[int64]*BookSummary: Records keyed by book ID. Never nil.
*/
func (client *Client) GetBooks(context context.Context, bookIDs []int64) map[int64]*BookSummary {
	resolved := make(map[int64]*BookSummary, len(bookIDs))

	for _, bookID := range bookIDs {
		if _, seen := resolved[bookID]; seen {
			continue
		}

		book, err := client.GetBook(context, bookID)
		if err != nil {
			// Degraded: the caller renders a bare ID for this book.
			continue
		}
		resolved[bookID] = book
	}

	return resolved
}
