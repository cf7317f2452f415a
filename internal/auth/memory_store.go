package auth

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value   T
	expires time.Time
}

// MemoryTokenStore is the process-local token store used in mock mode.
type MemoryTokenStore struct {
	mu        sync.Mutex
	now       func() time.Time
	sessions  map[string]entry[Session]
	blacklist map[string]entry[struct{}]
}

var _ TokenStoreInterface = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		now:       time.Now,
		sessions:  make(map[string]entry[Session]),
		blacklist: make(map[string]entry[struct{}]),
	}
}

func (s *MemoryTokenStore) StoreSession(_ context.Context, sessionID string, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = entry[Session]{value: session, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) GetSession(_ context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	session := e.value
	return &session, nil
}

func (s *MemoryTokenStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[tokenID] = entry[struct{}]{expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blacklist[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.blacklist, tokenID)
		return false, nil
	}
	return true, nil
}
