package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainauth "motorent/internal/domain/auth"
	domaindeliverer "motorent/internal/domain/deliverer"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service registers deliverers and manages bearer sessions. Password hashing
// and token generation stay behind the injected interfaces.
type Service struct {
	Deliverers domaindeliverer.Repository
	Sessions   domainauth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type RegisterParams struct {
	Name      string
	CNPJ      string
	BirthDate time.Time
	CNHNumber string
	CNHType   string
	Password  string
}

type LoginParams struct {
	CNHNumber string
	Password  string
}

type AuthResult struct {
	Deliverer *domaindeliverer.Deliverer
	Token     string
}

type ResolveResult struct {
	Deliverer *domaindeliverer.Deliverer
	Session   *domainauth.Session
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if err := s.validatePassword(params.Password); err != nil {
		return nil, err
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	d, err := domaindeliverer.NewDeliverer(domaindeliverer.CreateParams{
		ID:           domaindeliverer.ID(uuid.NewString()),
		Name:         params.Name,
		CNPJ:         params.CNPJ,
		BirthDate:    params.BirthDate,
		CNHNumber:    params.CNHNumber,
		CNHType:      domaindeliverer.LicenseType(params.CNHType),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Deliverers.Save(ctx, d); err != nil {
		return nil, err
	}
	token, err := s.issueSession(ctx, d)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("deliverer registered", "deliverer_id", d.ID, "cnh_type", d.CNHType)
	}
	return &AuthResult{Deliverer: d, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	cnh := strings.TrimSpace(params.CNHNumber)
	if cnh == "" {
		return nil, ErrInvalidCredentials
	}
	d, err := s.Deliverers.ByCNHNumber(ctx, cnh)
	if err != nil {
		if errors.Is(err, domaindeliverer.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(d.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, d)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("deliverer authenticated", "deliverer_id", d.ID)
	}
	return &AuthResult{Deliverer: d, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.ensureDependencies(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, domainauth.Token(token))
}

func (s *Service) ResolveToken(ctx context.Context, token string) (*ResolveResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainauth.ErrTokenRequired
	}
	session, err := s.Sessions.Get(ctx, domainauth.Token(token))
	if err != nil {
		return nil, err
	}
	d, err := s.Deliverers.ByID(ctx, session.DelivererID)
	if err != nil {
		_ = s.Sessions.Delete(ctx, session.Token)
		if errors.Is(err, domaindeliverer.ErrNotFound) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	return &ResolveResult{Deliverer: d, Session: session}, nil
}

func (s *Service) issueSession(ctx context.Context, d *domaindeliverer.Deliverer) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:       domainauth.Token(token),
		DelivererID: d.ID,
		TTL:         s.sessionTTL(),
		Now:         time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}

func (s *Service) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Deliverers == nil:
		return errors.New("auth: deliverer repository required")
	case s.Sessions == nil:
		return errors.New("auth: session store required")
	case s.Passwords == nil:
		return errors.New("auth: password hasher required")
	case s.Tokens == nil:
		return errors.New("auth: token generator required")
	default:
		return nil
	}
}
