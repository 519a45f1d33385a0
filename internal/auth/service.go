// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebelkina/gatehouse/internal/platform/apperr"
	"github.com/ebelkina/gatehouse/internal/platform/dberr"
	"github.com/ebelkina/gatehouse/internal/platform/sec"
	"github.com/ebelkina/gatehouse/pkg/uuid"
)

// Service implements the session authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential
// verification or the session lifecycle must be reviewed carefully — in
// particular, the single combined unknown-login/wrong-password error must
// never be split into distinguishable failures.
type Service struct {
	credentials CredentialStore
	sessions    SessionStore
}

// NewService constructs a new [Service] with its storage dependencies.
func NewService(credentialStore CredentialStore, sessionStore SessionStore) *Service {
	return &Service{
		credentials: credentialStore,
		sessions:    sessionStore,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string
	Password string
}

/*
Login validates credentials and establishes the session for a token.

Description: Looks up the credential record, verifies the salted digest,
then replaces whatever state the token previously held with the fresh
identity. A re-login on the same token therefore discards prior session
contents such as the cart.

Parameters:
  - ctx: context.Context
  - token: string (opaque session token, minted or reused by the handler)
  - input: LoginInput

Returns:
  - *sec.Identity: The established session identity
  - error: apperr.InvalidCredentials on a bad login OR a bad password
    (indistinguishable to the caller), storage failures otherwise
*/
func (service *Service) Login(ctx context.Context, token string, input LoginInput) (*sec.Identity, error) {

	credential, err := service.credentials.FindByLogin(ctx, input.Login)
	if err != nil {
		// Unknown login collapses into the same failure as a wrong password
		// so the endpoint cannot be used to enumerate accounts.
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !sec.Verify(input.Password, credential.Salt, credential.PasswordDigest) {
		return nil, apperr.InvalidCredentials()
	}

	// Successful verification: wipe the token's previous state before
	// writing the new identity. Clear-then-set, never merge.
	if err := service.sessions.Destroy(ctx, token); err != nil {
		return nil, fmt.Errorf("auth_service_session_reset_failed: %w", err)
	}

	identity := &sec.Identity{
		UserID:      credential.UserID,
		Login:       credential.Login,
		DisplayName: credential.DisplayName(),
		Token:       token,
	}

	err = service.sessions.Set(ctx, token, map[string]string{
		SessionKeyUserID:      identity.UserID,
		SessionKeyLogin:       identity.Login,
		SessionKeyDisplayName: identity.DisplayName,
	})
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_establish_failed: %w", err)
	}

	return identity, nil
}

/*
Logout removes the authentication keys from a token's session.

Description: Clears user_id, login and display_name only. Non-auth session
state (the cart) is deliberately left untouched, and logging out of an
already-anonymous session is a successful no-op.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - error: Storage failures only — never "not logged in"
*/
func (service *Service) Logout(ctx context.Context, token string) error {
	err := service.sessions.Clear(ctx, token,
		SessionKeyUserID,
		SessionKeyLogin,
		SessionKeyDisplayName,
	)
	if err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

/*
Authenticate is the authorization guard used by every protected operation.

Description: Resolves the token's session to an identity. A session without
a user_id — absent, expired, or logged out — is Anonymous and rejected.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *sec.Identity: The session identity, for use by the caller (e.g. the visit recorder)
  - error: apperr.Unauthorized when the session is Anonymous
*/
func (service *Service) Authenticate(ctx context.Context, token string) (*sec.Identity, error) {

	userID, err := service.sessions.Get(ctx, token, SessionKeyUserID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_guard_lookup_failed: %w", err)
	}

	if userID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	login, err := service.sessions.Get(ctx, token, SessionKeyLogin)
	if err != nil {
		return nil, fmt.Errorf("auth_service_guard_lookup_failed: %w", err)
	}

	displayName, err := service.sessions.Get(ctx, token, SessionKeyDisplayName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_guard_lookup_failed: %w", err)
	}

	return &sec.Identity{
		UserID:      userID,
		Login:       login,
		DisplayName: displayName,
		Token:       token,
	}, nil
}

// # Credential Lifecycle

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Login     string
	Password  string
	LastName  string
	FirstName string
}

/*
Register creates a brand new credential record.

Description: Verifies login uniqueness, generates a fresh salt, and stores
the salted digest. The plaintext is never persisted.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Credential: Created record (salt and digest excluded from JSON)
  - error: apperr.Conflict if the login is taken, or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Credential, error) {

	// Verify login uniqueness. Return a client-safe Conflict error.
	// The unique constraint still backs this up against races.
	_, err := service.credentials.FindByLogin(ctx, input.Login)
	if err == nil {
		return nil, apperr.Conflict("Login is already taken")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	salt, err := sec.GenerateSalt(sec.DefaultSaltLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_salt_generation_failed: %w", err)
	}

	digest, err := sec.HashWithSalt(input.Password, salt)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	credential := &Credential{
		UserID:         uuid.New(),
		Login:          input.Login,
		Salt:           salt,
		PasswordDigest: digest,
		LastName:       input.LastName,
		FirstName:      input.FirstName,
	}

	if err := service.credentials.Create(ctx, credential); err != nil {
		return nil, err
	}

	return credential, nil
}

/*
ChangePassword rotates an account's credential wholesale.

Description: Verifies the current password, then replaces BOTH the salt and
the digest — a credential is never partially updated.

Parameters:
  - ctx: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: apperr.Unauthorized if the current password is wrong, or storage failures
*/
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {

	credential, err := service.credentials.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing the change.
	if !sec.Verify(currentPassword, credential.Salt, credential.PasswordDigest) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	salt, err := sec.GenerateSalt(sec.DefaultSaltLength)
	if err != nil {
		return fmt.Errorf("auth_service_salt_generation_failed: %w", err)
	}

	digest, err := sec.HashWithSalt(newPassword, salt)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.credentials.UpdatePassword(ctx, userID, salt, digest); err != nil {
		return err
	}

	return nil
}
