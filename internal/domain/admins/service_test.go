package admins

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubRepo struct {
	accountFn     func(email string) (*Account, error)
	allowListedFn func(email string) (bool, error)
	lastLoginFn   func(id string) error
	addFn         func(email string) error
	removeFn      func(email string) error
}

func (s stubRepo) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	return s.accountFn(email)
}

func (s stubRepo) IsAllowListed(_ context.Context, email string) (bool, error) {
	return s.allowListedFn(email)
}

func (s stubRepo) UpdateLastLogin(_ context.Context, id string) error {
	if s.lastLoginFn == nil {
		return nil
	}
	return s.lastLoginFn(id)
}

func (s stubRepo) AddToAllowList(_ context.Context, email string) error {
	return s.addFn(email)
}

func (s stubRepo) RemoveFromAllowList(_ context.Context, email string) error {
	return s.removeFn(email)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "admin@grmatl.org", NormalizeEmail("  Admin@GRMATL.org "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestLoginSuccessNormalizesEmail(t *testing.T) {
	hash := hashPassword(t, "hunter2")
	repo := stubRepo{
		accountFn: func(email string) (*Account, error) {
			require.Equal(t, "admin@grmatl.org", email)
			return &Account{ID: "acc-1", Email: "Admin@GRMATL.org", PasswordHash: hash}, nil
		},
		allowListedFn: func(email string) (bool, error) {
			require.Equal(t, "admin@grmatl.org", email)
			return true, nil
		},
	}

	svc := NewService(repo, zerolog.Nop())
	identity, err := svc.Login(context.Background(), " Admin@GRMATL.org ", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "acc-1", identity.ID)
	require.Equal(t, "admin@grmatl.org", identity.Email)
}

func TestLoginUnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	hash := hashPassword(t, "hunter2")
	repo := stubRepo{
		accountFn: func(email string) (*Account, error) {
			if email == "known@grmatl.org" {
				return &Account{ID: "acc-1", Email: email, PasswordHash: hash}, nil
			}
			return nil, ErrAccountNotFound
		},
		allowListedFn: func(string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, zerolog.Nop())

	_, unknownErr := svc.Login(context.Background(), "nobody@grmatl.org", "hunter2")
	_, wrongErr := svc.Login(context.Background(), "known@grmatl.org", "wrong")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestLoginNotOnAllowList(t *testing.T) {
	hash := hashPassword(t, "hunter2")
	repo := stubRepo{
		accountFn: func(email string) (*Account, error) {
			return &Account{ID: "acc-1", Email: email, PasswordHash: hash}, nil
		},
		allowListedFn: func(string) (bool, error) { return false, nil },
	}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Login(context.Background(), "member@grmatl.org", "hunter2")
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestLoginAllowListFailureIsNotCredentialError(t *testing.T) {
	hash := hashPassword(t, "hunter2")
	storeErr := errors.New("connection refused")
	repo := stubRepo{
		accountFn: func(email string) (*Account, error) {
			return &Account{ID: "acc-1", Email: email, PasswordHash: hash}, nil
		},
		allowListedFn: func(string) (bool, error) { return false, storeErr },
	}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Login(context.Background(), "admin@grmatl.org", "hunter2")
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorizeNormalizes(t *testing.T) {
	repo := stubRepo{
		allowListedFn: func(email string) (bool, error) {
			return email == "admin@grmatl.org", nil
		},
	}
	svc := NewService(repo, zerolog.Nop())

	listed, err := svc.Authorize(context.Background(), " ADMIN@grmatl.ORG ")
	require.NoError(t, err)
	require.True(t, listed)

	listed, err = svc.Authorize(context.Background(), "")
	require.NoError(t, err)
	require.False(t, listed)
}

func TestGrantAndRevokeNormalize(t *testing.T) {
	var added, removed string
	repo := stubRepo{
		addFn:    func(email string) error { added = email; return nil },
		removeFn: func(email string) error { removed = email; return nil },
	}
	svc := NewService(repo, zerolog.Nop())

	require.NoError(t, svc.Grant(context.Background(), " New@GRMATL.org "))
	require.Equal(t, "new@grmatl.org", added)

	require.NoError(t, svc.Revoke(context.Background(), "Old@grmatl.org"))
	require.Equal(t, "old@grmatl.org", removed)

	require.Error(t, svc.Grant(context.Background(), "  "))
}
