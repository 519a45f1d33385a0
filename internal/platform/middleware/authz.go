// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/ebelkina/gatehouse/internal/platform/apperr"
	"github.com/ebelkina/gatehouse/internal/platform/constants"
	"github.com/ebelkina/gatehouse/internal/platform/ctxutil"
	"github.com/ebelkina/gatehouse/internal/platform/respond"
	"github.com/ebelkina/gatehouse/internal/platform/sec"
)

// SessionVerifier resolves an opaque session token into an identity.
//
// # Why an interface?
//
// Defining SessionVerifier here decouples the middleware from the auth
// service implementation, allowing us to inject fakes during unit testing.
type SessionVerifier interface {
	// Authenticate returns the identity stored under token, or an
	// Unauthorized error when the session is anonymous or expired.
	Authenticate(ctx context.Context, token string) (*sec.Identity, error)
}

// Session resolves the session cookie into a request identity.
//
// # Flow
//  1. Read the session cookie. If absent, the request proceeds as anonymous.
//  2. Ask the verifier for the identity stored under the token.
//  3. On success, inject [*sec.Identity] into the request context.
//  4. On failure (empty/expired session), proceed as anonymous — individual
//     routes decide whether anonymity is acceptable via [RequireSession].
func Session(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := verifier.Authenticate(request.Context(), cookie.Value)
			if err != nil {
				// Anonymous pass-through: a stale cookie is not an error by
				// itself, only guarded routes reject it.
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks requests that do not carry an authenticated session.
//
// # Usage
//
// Must be registered in the router AFTER [Session].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
