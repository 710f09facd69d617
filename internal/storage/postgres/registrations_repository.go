package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/ids"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/registrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

// Insert assigns the public ULID and lets Postgres assign created_at.
func (r *RegistrationRepository) Insert(ctx context.Context, params registrations.CreateParams) (*registrations.Registration, error) {
	payload, err := json.Marshal(params.ResponseData)
	if err != nil {
		return nil, fmt.Errorf("encode response data: %w", err)
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint registration id: %w", err)
	}
	row := r.queryer().QueryRow(ctx, `
INSERT INTO registrations (id, event_slug, response_data)
VALUES ($1, $2, $3)
RETURNING id, event_slug, response_data, created_at
`, id, params.EventSlug, payload)

	return scanRegistration(row)
}

func (r *RegistrationRepository) ListByEventSlug(ctx context.Context, slug string) ([]registrations.Registration, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, event_slug, response_data, created_at
  FROM registrations
 WHERE event_slug = $1
 ORDER BY created_at DESC
`, slug)
	if err != nil {
		return nil, fmt.Errorf("list registrations by slug: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (r *RegistrationRepository) ListAll(ctx context.Context) ([]registrations.Registration, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, event_slug, response_data, created_at
  FROM registrations
 ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	if !ids.IsValidULID(id) {
		return fmt.Errorf("delete registration %s: %w", id, registrations.ErrNotFound)
	}
	tag, err := r.queryer().Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete registration %s: %w", id, registrations.ErrNotFound)
	}
	return nil
}

func scanRegistration(row pgx.Row) (*registrations.Registration, error) {
	var (
		item    registrations.Registration
		payload []byte
	)
	if err := row.Scan(&item.ID, &item.EventSlug, &payload, &item.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	if err := json.Unmarshal(payload, &item.ResponseData); err != nil {
		return nil, fmt.Errorf("decode response data: %w", err)
	}
	return &item, nil
}

func collectRegistrations(rows pgx.Rows) ([]registrations.Registration, error) {
	items := make([]registrations.Registration, 0)
	for rows.Next() {
		item, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return items, nil
}
