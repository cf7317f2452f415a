package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lumina/internal/cache"
)

const (
	sessionKeyPrefix     = "session:"
	accessTokenKeyPrefix = "blacklist:access_token:"
)

// ErrSessionNotFound is returned when a refresh session is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is what the store remembers about a signed-in user.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreSession(ctx context.Context, sessionID string, session Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps sessions and revoked access tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

func (s *TokenStore) StoreSession(ctx context.Context, sessionID string, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

func (s *TokenStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil || data == nil {
		return nil, ErrSessionNotFound
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *TokenStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}

// BlacklistAccessToken adds an access token to the blacklist until it expires.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, accessTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, accessTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
