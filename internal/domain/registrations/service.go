// Package registrations implements the event-registration submission and
// admin reporting flows. Registrations are schema-agnostic: each event's
// client form decides which fields to collect, and response_data stores
// whatever arrived.
package registrations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrMissingEventSlug    = errors.New("event_slug is required")
	ErrMissingResponseData = errors.New("response_data is required")
	ErrNotFound            = errors.New("registration not found")
)

type Registration struct {
	ID           string         `json:"id"`
	EventSlug    string         `json:"event_slug"`
	ResponseData map[string]any `json:"response_data"`
	CreatedAt    time.Time      `json:"created_at"`
}

// EventSummary is one row of the per-event aggregate shown on the admin
// dashboard when no event filter is given.
type EventSummary struct {
	Slug           string    `json:"slug"`
	ResponseCount  int       `json:"response_count"`
	LatestResponse time.Time `json:"latest_response"`
}

type CreateParams struct {
	EventSlug    string
	ResponseData map[string]any
}

type Repository interface {
	Insert(ctx context.Context, params CreateParams) (*Registration, error)
	ListByEventSlug(ctx context.Context, slug string) ([]Registration, error)
	ListAll(ctx context.Context) ([]Registration, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates that both fields are present and persists the row. No
// other validation happens here; the endpoint is a generic sink so that
// arbitrarily different event forms can reuse it.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Registration, error) {
	params.EventSlug = strings.TrimSpace(params.EventSlug)
	if params.EventSlug == "" {
		return nil, ErrMissingEventSlug
	}
	if len(params.ResponseData) == 0 {
		return nil, ErrMissingResponseData
	}

	created, err := s.repo.Insert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return created, nil
}

// ListByEvent returns all registrations for one event, newest first.
func (s *Service) ListByEvent(ctx context.Context, slug string) ([]Registration, error) {
	items, err := s.repo.ListByEventSlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return items, nil
}

// Aggregate groups all registrations by event slug in memory and returns one
// summary per slug, sorted by latest activity descending. Grouping at this
// scale does not warrant a server-side GROUP BY.
func (s *Service) Aggregate(ctx context.Context) ([]EventSummary, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	bySlug := make(map[string]*EventSummary)
	for _, item := range items {
		summary, ok := bySlug[item.EventSlug]
		if !ok {
			summary = &EventSummary{Slug: item.EventSlug}
			bySlug[item.EventSlug] = summary
		}
		summary.ResponseCount++
		if item.CreatedAt.After(summary.LatestResponse) {
			summary.LatestResponse = item.CreatedAt
		}
	}

	summaries := make([]EventSummary, 0, len(bySlug))
	for _, summary := range bySlug {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LatestResponse.Equal(summaries[j].LatestResponse) {
			return summaries[i].Slug < summaries[j].Slug
		}
		return summaries[i].LatestResponse.After(summaries[j].LatestResponse)
	})
	return summaries, nil
}

// Delete removes one registration permanently. Deleting an id the store does
// not know is a store error; there is no soft delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}
