// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebelkina/gatehouse/internal/platform/dberr"
)

// PostgresCredentialStore implements [CredentialStore] using pgx.
type PostgresCredentialStore struct {
	pool *pgxpool.Pool
}

// NewCredentialStore creates a new PostgreSQL implementation of the CredentialStore.
func NewCredentialStore(pool *pgxpool.Pool) *PostgresCredentialStore {
	return &PostgresCredentialStore{pool: pool}
}

/*
Create persists a new credential record into the auth.users table.

Parameters:
  - ctx: context.Context
  - credential: *Credential (entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate login, or connectivity errors
*/
func (store *PostgresCredentialStore) Create(ctx context.Context, credential *Credential) error {
	const query = `
		INSERT INTO auth.users (
			user_id, login, salt, password_digest, last_name, first_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now()
	}

	_, err := store.pool.Exec(ctx, query,
		credential.UserID,
		credential.Login,
		credential.Salt,
		credential.PasswordDigest,
		credential.LastName,
		credential.FirstName,
		credential.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_credential_create_failed: %w", err))
	}

	return nil
}

/*
FindByLogin retrieves a credential record by its unique login.

This is the lookup the login flow performs. The caller — not this store —
decides how "no such login" is reported to the client; the store returns
the neutral dberr.ErrNotFound.

Parameters:
  - ctx: context.Context
  - login: string

Returns:
  - *Credential: Hydrated credential record
  - error: dberr.ErrNotFound or database errors
*/
func (store *PostgresCredentialStore) FindByLogin(ctx context.Context, login string) (*Credential, error) {
	const query = `
		SELECT user_id, login, salt, password_digest, last_name, first_name, created_at
		FROM auth.users
		WHERE login = $1`

	credential := &Credential{}
	err := store.pool.QueryRow(ctx, query, login).Scan(
		&credential.UserID,
		&credential.Login,
		&credential.Salt,
		&credential.PasswordDigest,
		&credential.LastName,
		&credential.FirstName,
		&credential.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return credential, nil
}

/*
FindByID retrieves a credential record by primary key.

Parameters:
  - ctx: context.Context
  - userID: string (UUIDv7)

Returns:
  - *Credential: Hydrated credential record
  - error: dberr.ErrNotFound or database errors
*/
func (store *PostgresCredentialStore) FindByID(ctx context.Context, userID string) (*Credential, error) {
	const query = `
		SELECT user_id, login, salt, password_digest, last_name, first_name, created_at
		FROM auth.users
		WHERE user_id = $1`

	credential := &Credential{}
	err := store.pool.QueryRow(ctx, query, userID).Scan(
		&credential.UserID,
		&credential.Login,
		&credential.Salt,
		&credential.PasswordDigest,
		&credential.LastName,
		&credential.FirstName,
		&credential.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return credential, nil
}

/*
UpdatePassword replaces the salt and digest for a user in a single statement.

The two columns always change together — a credential is replaced wholesale
on password change, never patched.

Parameters:
  - ctx: context.Context
  - userID: string
  - salt: string (freshly generated)
  - digest: string (hex digest of salt || new password)

Returns:
  - error: dberr.ErrNotFound if the user vanished, or update failures
*/
func (store *PostgresCredentialStore) UpdatePassword(ctx context.Context, userID, salt, digest string) error {
	const query = `
		UPDATE auth.users
		SET salt = $2, password_digest = $3
		WHERE user_id = $1`

	tag, err := store.pool.Exec(ctx, query, userID, salt, digest)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_credential_update_password_failed: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
