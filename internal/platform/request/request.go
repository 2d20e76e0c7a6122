// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

// Package requestutil provides helpers for extracting and decoding data
// from incoming HTTP requests.
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/internal/platform/ctxutil"
	"github.com/safegergis/tome/internal/platform/sec"
	"github.com/safegergis/tome/internal/platform/validate"
)

// DecodeJSON decodes the request body into destination.
// Unknown fields are rejected so that client typos surface as errors
// instead of being silently dropped.
func DecodeJSON(request *http.Request, destination interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(destination); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID extracts a numeric URL parameter and parses it as int64.
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Invalid URL parameter",
			apperr.FieldError{Field: name, Message: "must be a positive integer"},
		)
	}
	return id, nil
}

// Param extracts a string URL parameter, failing when it is empty.
func Param(request *http.Request, name string) (string, error) {
	raw := chi.URLParam(request, name)
	if raw == "" {
		return "", apperr.ValidationError("Invalid URL parameter",
			apperr.FieldError{Field: name, Message: "is required"},
		)
	}
	return raw, nil
}

// Claims returns the verified auth claims from the request context, if any.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the verified auth claims or an Unauthorized error
// when the request carries no authenticated user.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's ID or an Unauthorized error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
