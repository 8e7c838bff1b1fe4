// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] on Redis.
//
// Tokens are volatile and expire via Redis TTL; there is no secondary sweep.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis-backed reset token store.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores the token hash to userID mapping with the given TTL.
func (repository *RedisResetTokenRepository) Set(ctx context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(ctx, repository.key(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_repo_set_failed: %w", err)
	}
	return nil
}

// Get returns the userID bound to the token hash.
//
// Returns [apperr.NotFound] if the token is unknown or already expired.
func (repository *RedisResetTokenRepository) Get(ctx context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(ctx, repository.key(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_repo_get_failed: %w", err)
	}
	return userID, nil
}

// Delete removes the token mapping. Deleting an unknown token is a no-op.
func (repository *RedisResetTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, repository.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_reset_repo_delete_failed: %w", err)
	}
	return nil
}

func (repository *RedisResetTokenRepository) key(tokenHash string) string {
	return constants.RedisPrefixResetToken + tokenHash
}
