// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away body decoding, form field extraction, and session identity
lookup, ensuring consistent error handling and type safety across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/ebelkina/gatehouse/internal/platform/apperr"
	"github.com/ebelkina/gatehouse/internal/platform/ctxutil"
	"github.com/ebelkina/gatehouse/internal/platform/sec"
	"github.com/ebelkina/gatehouse/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FormField returns the named form-encoded field and whether it was present.

An empty string with present=true means the client sent the field empty —
a different condition from the field being absent entirely. The login
contract needs that distinction: an empty password is hashed, a missing
one is a validation failure.
*/
func FormField(request *http.Request, name string) (value string, present bool) {
	if err := request.ParseForm(); err != nil {
		return "", false
	}
	values, ok := request.PostForm[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

/*
QueryDefault returns the named query parameter, or fallback when absent or empty.
*/
func QueryDefault(request *http.Request, name, fallback string) string {
	if value := request.URL.Query().Get(name); value != "" {
		return value
	}
	return fallback
}

/*
Identity extracts the session identity from the request context.

Returns nil if the request is anonymous.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request carries an authenticated session and
returns the resolved identity.

Returns:
  - *sec.Identity: The authenticated session identity
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get session identity
	identity := ctxutil.GetIdentity(request.Context())

	// If the user is not authenticated, return an error
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return identity, nil
}

/*
SessionToken returns the opaque session token from the request cookie.

Returns an empty string when the cookie is absent.
*/
func SessionToken(request *http.Request, cookieName string) string {
	cookie, err := request.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
