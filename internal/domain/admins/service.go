// Package admins implements the admin authentication and authorization gate.
// Credentials live in admin_accounts; the allow-list in admin_users is a
// separate gate that is re-checked on every privileged request, so a
// revocation takes effect immediately even for live sessions.
package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so the login boundary never leaks which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthorized means the credentials checked out but the email is
	// not on the admin allow-list.
	ErrNotAuthorized = errors.New("admin privileges required")

	ErrAccountNotFound = errors.New("account not found")
)

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Account struct {
	ID           string
	Email        string
	PasswordHash string
}

type Repository interface {
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	IsAllowListed(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) error
	AddToAllowList(ctx context.Context, email string) error
	RemoveFromAllowList(ctx context.Context, email string) error
}

// NormalizeEmail applies the one normalization rule used everywhere an email
// is compared: lowercase and trimmed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "admins").Logger(),
	}
}

// Login verifies credentials, then checks allow-list membership. The two
// failure modes stay distinguishable in logs for operator diagnosis but
// collapse to generic errors at the API boundary.
func (s *Service) Login(ctx context.Context, email, password string) (*Identity, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetAccountByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.logger.Debug().Str("email", normalized).Msg("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("email", normalized).Msg("login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	listed, err := s.repo.IsAllowListed(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("allow-list lookup: %w", err)
	}
	if !listed {
		s.logger.Warn().Str("email", normalized).Msg("authenticated identity not on admin allow-list")
		return nil, ErrNotAuthorized
	}

	if err := s.repo.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn().Err(err).Str("email", normalized).Msg("failed to record last login")
	}

	return &Identity{ID: account.ID, Email: normalized}, nil
}

// Authorize reports whether an email currently holds admin access. Called on
// every admin-gated request; the result is never cached.
func (s *Service) Authorize(ctx context.Context, email string) (bool, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false, nil
	}

	listed, err := s.repo.IsAllowListed(ctx, normalized)
	if err != nil {
		return false, fmt.Errorf("allow-list lookup: %w", err)
	}
	return listed, nil
}

// Grant adds an email to the allow-list. Allow-list management is an
// operator action, exposed through the CLI rather than the API.
func (s *Service) Grant(ctx context.Context, email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return fmt.Errorf("email is required")
	}
	if err := s.repo.AddToAllowList(ctx, normalized); err != nil {
		return fmt.Errorf("add to allow-list: %w", err)
	}
	return nil
}

// Revoke removes an email from the allow-list. Live sessions for the email
// lose admin access on their next request.
func (s *Service) Revoke(ctx context.Context, email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return fmt.Errorf("email is required")
	}
	if err := s.repo.RemoveFromAllowList(ctx, normalized); err != nil {
		return fmt.Errorf("remove from allow-list: %w", err)
	}
	return nil
}
