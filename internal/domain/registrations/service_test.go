package registrations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	insertFn func(params CreateParams) (*Registration, error)
	listFn   func(slug string) ([]Registration, error)
	allFn    func() ([]Registration, error)
	deleteFn func(id string) error
}

func (s stubRepo) Insert(_ context.Context, params CreateParams) (*Registration, error) {
	return s.insertFn(params)
}

func (s stubRepo) ListByEventSlug(_ context.Context, slug string) ([]Registration, error) {
	return s.listFn(slug)
}

func (s stubRepo) ListAll(_ context.Context) ([]Registration, error) {
	return s.allFn()
}

func (s stubRepo) Delete(_ context.Context, id string) error {
	return s.deleteFn(id)
}

func TestCreatePersistsInputUnchanged(t *testing.T) {
	var got CreateParams
	repo := stubRepo{
		insertFn: func(params CreateParams) (*Registration, error) {
			got = params
			return &Registration{
				ID:           "01JF00000000000000000000",
				EventSlug:    params.EventSlug,
				ResponseData: params.ResponseData,
				CreatedAt:    time.Now(),
			}, nil
		},
	}

	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateParams{
		EventSlug: "vbs-2026",
		ResponseData: map[string]any{
			"parent_name": "Jane Doe",
			"children":    []any{"Sam", "Alex"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "vbs-2026", got.EventSlug)
	require.Equal(t, "Jane Doe", got.ResponseData["parent_name"])
	require.Equal(t, created.EventSlug, "vbs-2026")
	require.NotEmpty(t, created.ID)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	inserted := false
	repo := stubRepo{
		insertFn: func(CreateParams) (*Registration, error) {
			inserted = true
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{
		EventSlug:    "  ",
		ResponseData: map[string]any{"name": "Jane"},
	})
	require.ErrorIs(t, err, ErrMissingEventSlug)

	_, err = svc.Create(context.Background(), CreateParams{
		EventSlug:    "easter-service",
		ResponseData: nil,
	})
	require.ErrorIs(t, err, ErrMissingResponseData)

	require.False(t, inserted, "no row should be persisted for invalid input")
}

func TestCreateSurfacesStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := stubRepo{
		insertFn: func(CreateParams) (*Registration, error) {
			return nil, storeErr
		},
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{
		EventSlug:    "easter-service",
		ResponseData: map[string]any{"name": "Jane"},
	})
	require.ErrorIs(t, err, storeErr)
}

func TestAggregateGroupsBySlug(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := stubRepo{
		allFn: func() ([]Registration, error) {
			return []Registration{
				{EventSlug: "vbs-2026", CreatedAt: base},
				{EventSlug: "vbs-2026", CreatedAt: base.Add(2 * time.Hour)},
				{EventSlug: "vbs-2026", CreatedAt: base.Add(time.Hour)},
				{EventSlug: "easter-service", CreatedAt: base.Add(3 * time.Hour)},
			}, nil
		},
	}
	svc := NewService(repo)

	summaries, err := svc.Aggregate(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Sorted by latest activity descending.
	require.Equal(t, "easter-service", summaries[0].Slug)
	require.Equal(t, 1, summaries[0].ResponseCount)
	require.Equal(t, base.Add(3*time.Hour), summaries[0].LatestResponse)

	require.Equal(t, "vbs-2026", summaries[1].Slug)
	require.Equal(t, 3, summaries[1].ResponseCount)
	require.Equal(t, base.Add(2*time.Hour), summaries[1].LatestResponse)
}

func TestAggregateEmptyStore(t *testing.T) {
	repo := stubRepo{
		allFn: func() ([]Registration, error) { return nil, nil },
	}
	svc := NewService(repo)

	summaries, err := svc.Aggregate(context.Background())
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestDeleteRejectsBlankID(t *testing.T) {
	svc := NewService(stubRepo{
		deleteFn: func(string) error {
			t.Fatal("repo should not be called")
			return nil
		},
	})

	err := svc.Delete(context.Background(), "  ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePassesThroughStoreError(t *testing.T) {
	storeErr := errors.New("no rows deleted")
	svc := NewService(stubRepo{
		deleteFn: func(id string) error {
			require.Equal(t, "01JF00000000000000000000", id)
			return storeErr
		},
	})

	err := svc.Delete(context.Background(), "01JF00000000000000000000")
	require.ErrorIs(t, err, storeErr)
}
