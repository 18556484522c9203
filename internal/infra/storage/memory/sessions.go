package memory

import (
	"context"
	"sync"
	"time"

	"motorent/internal/domain/auth"
	"motorent/internal/domain/deliverer"
)

type SessionStore struct {
	mu    sync.RWMutex
	items map[auth.Token]auth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: map[auth.Token]auth.Session{}}
}

func (s *SessionStore) Save(_ context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.Token] = *session
	return nil
}

func (s *SessionStore) Get(_ context.Context, token auth.Token) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		delete(s.items, token)
		return nil, auth.ErrSessionNotFound
	}
	copy := session
	return &copy, nil
}

func (s *SessionStore) Delete(_ context.Context, token auth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}

func (s *SessionStore) DeleteByDeliverer(_ context.Context, id deliverer.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.items {
		if session.DelivererID == id {
			delete(s.items, token)
		}
	}
	return nil
}
