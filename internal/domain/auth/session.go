package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"motorent/internal/domain/deliverer"
)

var (
	ErrTokenRequired     = errors.New("auth: token is required")
	ErrDelivererRequired = errors.New("auth: deliverer is required")
	ErrTTLInvalid        = errors.New("auth: ttl must be positive")
	ErrSessionNotFound   = errors.New("auth: session not found")
)

type Token string

type Session struct {
	Token       Token
	DelivererID deliverer.ID
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

type CreateSessionParams struct {
	Token       Token
	DelivererID deliverer.ID
	TTL         time.Duration
	Now         time.Time
}

func NewSession(params CreateSessionParams) (*Session, error) {
	token := strings.TrimSpace(string(params.Token))
	if token == "" {
		return nil, ErrTokenRequired
	}
	if strings.TrimSpace(string(params.DelivererID)) == "" {
		return nil, ErrDelivererRequired
	}
	if params.TTL <= 0 {
		return nil, ErrTTLInvalid
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Session{
		Token:       Token(token),
		DelivererID: params.DelivererID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(params.TTL),
	}, nil
}

func (s *Session) Expired(at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}
	return !s.ExpiresAt.After(at.UTC())
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token Token) (*Session, error)
	Delete(ctx context.Context, token Token) error
	DeleteByDeliverer(ctx context.Context, id deliverer.ID) error
}
