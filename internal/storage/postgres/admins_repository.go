package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/admins"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *AdminRepository) GetAccountByEmail(ctx context.Context, email string) (*admins.Account, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, email, password_hash
  FROM admin_accounts
 WHERE LOWER(email) = LOWER($1)
 LIMIT 1
`, email)

	var account admins.Account
	if err := row.Scan(&account.ID, &account.Email, &account.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup admin account: %w", err)
	}
	return &account, nil
}

// IsAllowListed answers the allow-list check made on every admin-gated
// request. Matching is case-insensitive per the one normalization rule.
func (r *AdminRepository) IsAllowListed(ctx context.Context, email string) (bool, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM admin_users WHERE LOWER(email) = LOWER($1)
)
`, email)

	var listed bool
	if err := row.Scan(&listed); err != nil {
		return false, fmt.Errorf("allow-list lookup: %w", err)
	}
	return listed, nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.queryer().Exec(ctx, `UPDATE admin_accounts SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *AdminRepository) AddToAllowList(ctx context.Context, email string) error {
	_, err := r.queryer().Exec(ctx, `
INSERT INTO admin_users (email) VALUES (LOWER($1))
ON CONFLICT (email) DO NOTHING
`, email)
	if err != nil {
		return fmt.Errorf("insert allow-list entry: %w", err)
	}
	return nil
}

func (r *AdminRepository) RemoveFromAllowList(ctx context.Context, email string) error {
	_, err := r.queryer().Exec(ctx, `DELETE FROM admin_users WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		return fmt.Errorf("delete allow-list entry: %w", err)
	}
	return nil
}
