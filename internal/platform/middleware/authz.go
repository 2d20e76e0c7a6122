// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package middleware

import (
	"net/http"
	"strings"

	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/internal/platform/ctxutil"
	"github.com/safegergis/tome/internal/platform/respond"
	"github.com/safegergis/tome/internal/platform/sec"
)

// TokenVerifier abstracts the concrete [sec.Verifier] so tests can inject
// a fake.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate verifies the bearer token, when one is present, and stores
// the resulting claims in the request context. Requests without an
// Authorization header pass through as anonymous; RequireAuth decides
// whether anonymous is acceptable for a given route.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. It must run after
// Authenticate in the chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
