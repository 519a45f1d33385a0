// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package auth

import "context"

// # Storage Contracts

// CredentialStore abstracts persistence of credential records.
//
// Implementations map storage-level failures (no rows, unique violations)
// to [apperr] values so the service layer never sees driver errors.
type CredentialStore interface {
	// Create persists a brand new credential record.
	Create(ctx context.Context, credential *Credential) error

	// FindByLogin retrieves the credential for a unique login.
	// Returns dberr.ErrNotFound when no such login exists.
	FindByLogin(ctx context.Context, login string) (*Credential, error)

	// FindByID retrieves the credential by primary key.
	FindByID(ctx context.Context, userID string) (*Credential, error)

	// UpdatePassword replaces salt AND digest in one statement. Credentials
	// are never partially updated: a password change rotates both.
	UpdatePassword(ctx context.Context, userID, salt, digest string) error
}

// SessionStore abstracts the token-keyed server-side session state.
//
// The interface is deliberately a flat key-value surface (get/set/clear per
// token) rather than a session object: it keeps the authenticator testable
// without Redis and mirrors how the HTTP session middleware it replaces
// exposed its state.
//
// # Concurrency
//
// Implementations need no cross-token coordination. Concurrent writers on the
// same token may interleave; last writer wins is acceptable, but a single
// Set/Clear call must apply atomically.
type SessionStore interface {
	// Get returns the value stored under key for the token, or "" when the
	// key (or the whole session) is absent. Absence is not an error.
	Get(ctx context.Context, token, key string) (string, error)

	// Set stores all given key/value pairs atomically and refreshes the
	// session's TTL.
	Set(ctx context.Context, token string, values map[string]string) error

	// Clear removes the named keys, leaving the rest of the session intact.
	// Clearing keys that are already absent is a no-op, not an error.
	Clear(ctx context.Context, token string, keys ...string) error

	// Destroy removes the entire session state for the token.
	Destroy(ctx context.Context, token string) error
}
