// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package sec

// Identity describes the authenticated user resolved from a session token.
//
// It is produced by the auth service during login or guard checks and carried
// through the request context by the session middleware.
type Identity struct {
	// UserID is the account's primary key.
	UserID string `json:"user_id"`
	// Login is the account's unique login name.
	Login string `json:"login"`
	// DisplayName is "last_name first_name", assembled at login time.
	DisplayName string `json:"display_name"`
	// Token is the opaque session token the identity was resolved from.
	Token string `json:"-"`
}
