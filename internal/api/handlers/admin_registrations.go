package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/apierror"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/registrations"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/export"
)

// RegistrationReader is the slice of the registrations service the admin
// dashboard endpoints need.
type RegistrationReader interface {
	ListByEvent(ctx context.Context, slug string) ([]registrations.Registration, error)
	Aggregate(ctx context.Context) ([]registrations.EventSummary, error)
	Delete(ctx context.Context, id string) error
}

type AdminRegistrationsHandler struct {
	Service RegistrationReader
}

func NewAdminRegistrationsHandler(service RegistrationReader) *AdminRegistrationsHandler {
	return &AdminRegistrationsHandler{Service: service}
}

type listResponsesPayload struct {
	Responses []registrations.Registration `json:"responses"`
}

type listEventsPayload struct {
	Events []registrations.EventSummary `json:"events"`
}

// List handles GET /api/v1/admin/registrations. With an event_slug query
// param it returns that event's registrations newest first; without one it
// returns the per-event aggregate sorted by latest activity.
func (h *AdminRegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	slug := strings.TrimSpace(r.URL.Query().Get("event_slug"))
	if slug != "" {
		items, err := h.Service.ListByEvent(r.Context(), slug)
		if err != nil {
			apierror.WriteStore(w, r, "failed to list registrations", err)
			return
		}
		writeJSON(w, http.StatusOK, listResponsesPayload{Responses: items})
		return
	}

	summaries, err := h.Service.Aggregate(r.Context())
	if err != nil {
		apierror.WriteStore(w, r, "failed to aggregate registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, listEventsPayload{Events: summaries})
}

// Delete handles DELETE /api/v1/admin/registrations/{id}. Deletion is
// permanent; a missing id is a store error like any other.
func (h *AdminRegistrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		apierror.Write(w, r, http.StatusBadRequest, "registration id is required", nil)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		apierror.WriteStore(w, r, "failed to delete registration", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Export handles GET /api/v1/admin/registrations/export?event_slug=x and
// streams the CSV download for one event.
func (h *AdminRegistrationsHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	slug := strings.TrimSpace(r.URL.Query().Get("event_slug"))
	if slug == "" {
		apierror.Write(w, r, http.StatusBadRequest, "event_slug is required", nil)
		return
	}

	items, err := h.Service.ListByEvent(r.Context(), slug)
	if err != nil {
		apierror.WriteStore(w, r, "failed to list registrations", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+"-registrations.csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.CSV(items)))
}
