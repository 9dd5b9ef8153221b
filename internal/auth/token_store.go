package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blessing250/Membership/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, memberID uuid.UUID, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (memberID uuid.UUID, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, memberID uuid.UUID, email string, ttl time.Duration) error {
	data := map[string]string{
		"member_id": memberID.String(),
		"email":     email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (memberID uuid.UUID, email string, err error) {
	key := refreshTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return uuid.Nil, "", fmt.Errorf("refresh token not found")
	}

	var tokenData map[string]string
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return uuid.Nil, "", fmt.Errorf("unmarshal token data: %w", err)
	}

	memberID, err = uuid.Parse(tokenData["member_id"])
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid member_id in token data")
	}

	email, ok := tokenData["email"]
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid email in token data")
	}

	return memberID, email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}
