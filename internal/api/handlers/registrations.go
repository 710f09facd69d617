package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/apierror"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/registrations"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// RegistrationNotifier is the fire-and-forget email dispatch behind a
// successful submission.
type RegistrationNotifier interface {
	NotifyRegistration(ctx context.Context, eventSlug string, responseData map[string]any) error
}

type RegistrationsHandler struct {
	Service  *registrations.Service
	Notifier RegistrationNotifier
	Validate *validator.Validate
	Logger   zerolog.Logger
}

func NewRegistrationsHandler(service *registrations.Service, notifier RegistrationNotifier, logger zerolog.Logger) *RegistrationsHandler {
	return &RegistrationsHandler{
		Service:  service,
		Notifier: notifier,
		Validate: validator.New(),
		Logger:   logger.With().Str("component", "registrations").Logger(),
	}
}

type submitRequest struct {
	EventSlug    string         `json:"event_slug" validate:"required"`
	ResponseData map[string]any `json:"response_data" validate:"required,min=1"`
}

type submitResponse struct {
	Response *registrations.Registration `json:"response"`
}

// Submit handles POST /api/v1/registrations. The endpoint is deliberately
// schema-agnostic: any slug and any non-empty field map is accepted, so
// every event form on the site can post here.
func (h *RegistrationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "event_slug and response_data are required", err)
		return
	}

	created, err := h.Service.Create(r.Context(), registrations.CreateParams{
		EventSlug:    req.EventSlug,
		ResponseData: req.ResponseData,
	})
	if err != nil {
		if errors.Is(err, registrations.ErrMissingEventSlug) || errors.Is(err, registrations.ErrMissingResponseData) {
			apierror.Write(w, r, http.StatusBadRequest, "event_slug and response_data are required", err)
			return
		}
		apierror.WriteStore(w, r, "failed to save registration", err)
		return
	}

	// The response does not wait on the notification, and a send failure
	// must never unwind a registration that already persisted.
	h.dispatchNotification(created.EventSlug, created.ResponseData)

	writeJSON(w, http.StatusCreated, submitResponse{Response: created})
}

func (h *RegistrationsHandler) dispatchNotification(eventSlug string, responseData map[string]any) {
	if h.Notifier == nil {
		return
	}

	logger := h.Logger
	notifier := h.Notifier
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Msg("registration notification panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := notifier.NotifyRegistration(ctx, eventSlug, responseData); err != nil {
			logger.Error().
				Err(err).
				Str("event_slug", eventSlug).
				Msg("registration notification failed")
		}
	}()
}
