package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"miniinventory/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStore persists live login sessions keyed by refresh token ID.
type SessionStore interface {
	Save(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (userID uint, username string, err error)
	Delete(ctx context.Context, tokenID string) error
}

// TokenStore keeps sessions in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ SessionStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

type sessionData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Save stores a session with TTL.
func (s *TokenStore) Save(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	payload, err := json.Marshal(sessionData{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+tokenID, payload, ttl)
}

// Get returns the session for tokenID.
func (s *TokenStore) Get(ctx context.Context, tokenID string) (uint, string, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil || data == nil {
		return 0, "", fmt.Errorf("session not found")
	}

	var session sessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return 0, "", fmt.Errorf("unmarshal session: %w", err)
	}
	return session.UserID, session.Username, nil
}

// Delete ends a session.
func (s *TokenStore) Delete(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+tokenID)
}
