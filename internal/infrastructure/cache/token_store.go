package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when no refresh token is stored for a user.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore keeps the currently valid refresh token per user in Redis.
// One token per user: issuing a new one replaces the old (rotation),
// and logout deletes it, which invalidates any outstanding refresh token.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(r *RedisClient) *TokenStore {
	return &TokenStore{client: r.Client}
}

func refreshTokenKey(userID int64) string {
	return fmt.Sprintf("auth:refresh:%d", userID)
}

// Save stores the refresh token with a TTL matching the token expiry.
func (s *TokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Validate checks that the presented token is the one currently stored.
func (s *TokenStore) Validate(ctx context.Context, userID int64, token string) error {
	stored, err := s.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to read refresh token: %w", err)
	}

	if stored != token {
		return ErrTokenNotFound
	}
	return nil
}

// Delete removes the stored refresh token (logout).
func (s *TokenStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
