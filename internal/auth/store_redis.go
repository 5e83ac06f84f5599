// Copyright (c) 2026 MangaList. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/constants"
)

// # Redis Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Sessions are keyed by the refresh token's SHA-256 hash and carry a TTL
// matching the refresh token lifetime, so expiry needs no sweeper.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the Redis key for a refresh token hash.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Create stores a session keyed by the refresh token's hash.

Description: The TTL is derived from the session's own expiry so the key
vanishes exactly when the refresh token does.

Parameters:
  - context: context.Context
  - tokenHash: string (SHA-256 hex)
  - session: *Session

Returns:
  - error: Serialization or storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_already_expired: expires_at %s", session.ExpiresAt)
	}

	if err := repository.client.Set(context, sessionKey(tokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the session for a refresh token hash.

Description: Returns apperr.NotFound if the session is absent — whether it
never existed, expired via TTL, or was revoked.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: The live session
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return session, nil
}

/*
Revoke removes a session so its refresh token can never be used again.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
