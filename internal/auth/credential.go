// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

/*
Package auth implements the session-based authentication lifecycle.

It defines the credential entity, the login/logout/guard state machine over a
server-side session store, and the credential lifecycle (registration,
wholesale password change).

# Architecture

  - Service: Orchestrates login, logout, guard checks, and credential changes.
  - CredentialStore: Abstracted interface over PostgreSQL (credential records).
  - SessionStore: Abstracted interface over Redis (token-keyed session state).

# Session State Machine

Per session token there are exactly two states: Anonymous (no user_id in the
session) and Authenticated (user_id present). Login moves a token to
Authenticated after destroying whatever state the token held before; Logout
removes only the three auth keys, so non-auth session data (the cart) stays.
*/
package auth

import "time"

// # Domain Entities

// Credential is one account's stored login material.
//
// The digest is always hex(md5(salt || password)); salt and digest are only
// ever replaced together, never individually (see [Service.ChangePassword]).
type Credential struct {
	UserID         string    `json:"user_id"`
	Login          string    `json:"login"`
	Salt           string    `json:"-"` // Never serialized: useless alone, but no reason to hand it out.
	PasswordDigest string    `json:"-"` // Explicitly omitted from JSON for security.
	LastName       string    `json:"last_name"`
	FirstName      string    `json:"first_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// DisplayName assembles the session display name the way the credential
// table defines it: last name first.
func (c *Credential) DisplayName() string {
	return c.LastName + " " + c.FirstName
}

// # Session Keys

// Keys under which the authenticator stores values in a session. Logout
// clears exactly the first three; SessionKeyCart belongs to the cart
// collaborator and survives logout.
const (
	SessionKeyUserID      = "user_id"
	SessionKeyLogin       = "login"
	SessionKeyDisplayName = "display_name"
	SessionKeyCart        = "cart"
)

// # Field Identifiers

// Field names for validation errors in the authentication domain.
const (
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldLastName        = "last_name"
	FieldFirstName       = "first_name"
)
