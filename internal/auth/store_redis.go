// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ebelkina/gatehouse/internal/platform/constants"
)

// RedisSessionStore implements [SessionStore] as one Redis hash per token.
//
// # Layout
//
// Each session lives at "auth:session:<token>" with one hash field per
// session key. The whole hash shares a TTL which is refreshed on every Set,
// so active sessions stay alive and abandoned ones expire on their own.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// sessionKey builds the Redis key for a session token.
func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

/*
Get retrieves one value from a session.

An absent field or an expired session both return "", nil — the caller only
needs to know the value is not there, and "session missing" carries no more
information than "key missing".

Parameters:
  - ctx: context.Context
  - token: string
  - key: string

Returns:
  - string: Stored value, or "" when absent
  - error: Connectivity errors only
*/
func (store *RedisSessionStore) Get(ctx context.Context, token, key string) (string, error) {
	value, err := store.client.HGet(ctx, sessionKey(token), key).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return value, nil
}

/*
Set stores all given key/value pairs and refreshes the session TTL.

The HSET and EXPIRE are pipelined so a session is never persisted without
an expiry.

Parameters:
  - ctx: context.Context
  - token: string
  - values: map[string]string

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Set(ctx context.Context, token string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	key := sessionKey(token)

	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		flat := make([]string, 0, len(values)*2)
		for field, value := range values {
			flat = append(flat, field, value)
		}
		pipe.HSet(ctx, key, flat)
		pipe.Expire(ctx, key, constants.SessionTTL)
		return nil
	})

	if err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Clear removes the named fields from a session, leaving other fields intact.

Clearing fields that do not exist is a successful no-op — logout relies on
this for idempotency.

Parameters:
  - ctx: context.Context
  - token: string
  - keys: ...string

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Clear(ctx context.Context, token string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := store.client.HDel(ctx, sessionKey(token), keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_clear_failed: %w", err)
	}

	return nil
}

/*
Destroy removes the entire session state for a token.

Used by login to guarantee a fresh session: whatever the token held before
(including a cart from a previous user) is discarded before the new
identity is written.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := store.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_session_destroy_failed: %w", err)
	}

	return nil
}
