package handlers

import (
	"net/http"
	"strings"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/apierror"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/content"
)

// ContentHandler serves the static site catalogs: event pages and the blog
// listing. Both are in-process constants, so these endpoints never touch
// the database.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"events": content.Events()})
}

func (h *ContentHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(pathParam(r, "slug"))
	event, ok := content.EventBySlug(slug)
	if !ok {
		apierror.Write(w, r, http.StatusNotFound, "event not found", apierror.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"posts": content.Posts()})
}

func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(pathParam(r, "slug"))
	post, ok := content.PostBySlug(slug)
	if !ok {
		apierror.Write(w, r, http.StatusNotFound, "post not found", apierror.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}
