package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/apierror"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/auth"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/admins"
	"github.com/go-playground/validator/v10"
)

// AdminService is the slice of the admins domain service the auth endpoints
// need.
type AdminService interface {
	Login(ctx context.Context, email, password string) (*admins.Identity, error)
	Authorize(ctx context.Context, email string) (bool, error)
}

type AdminAuthHandler struct {
	Admins   AdminService
	Sessions *auth.SessionManager
	Validate *validator.Validate
}

func NewAdminAuthHandler(adminService AdminService, sessions *auth.SessionManager) *AdminAuthHandler {
	return &AdminAuthHandler{
		Admins:   adminService,
		Sessions: sessions,
		Validate: validator.New(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *admins.Identity `json:"user"`
}

// Login handles POST /api/v1/admin/login. The 401 is deliberately generic:
// wrong-password and unknown-email are indistinguishable to the caller. A
// verified identity that is not on the allow-list gets a 403 and no session.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Admins == nil || h.Sessions == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "email and password are required", err)
		return
	}

	identity, err := h.Admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrInvalidCredentials):
			apierror.Write(w, r, http.StatusUnauthorized, admins.ErrInvalidCredentials.Error(), err)
		case errors.Is(err, admins.ErrNotAuthorized):
			// Sign the verified identity straight back out.
			auth.ClearSessionCookie(w, r.TLS != nil)
			apierror.Write(w, r, http.StatusForbidden, admins.ErrNotAuthorized.Error(), err)
		default:
			apierror.WriteStore(w, r, "login failed", err)
		}
		return
	}

	token, err := h.Sessions.Issue(identity.ID, identity.Email)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", err)
		return
	}

	auth.SetSessionCookie(w, token, h.Sessions.Expiry(), r.TLS != nil)
	writeJSON(w, http.StatusOK, userResponse{User: identity})
}

// Me handles GET /api/v1/admin/me. The UI polls this to render login state,
// so a missing or stale session is a null user, never an error. Allow-list
// membership is re-checked here too: a revoked admin sees null even while
// their cookie is still technically valid.
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Admins == nil || h.Sessions == nil {
		apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, userResponse{User: nil})
		return
	}

	claims, err := h.Sessions.Validate(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusOK, userResponse{User: nil})
		return
	}

	listed, err := h.Admins.Authorize(r.Context(), claims.Email)
	if err != nil {
		apierror.WriteStore(w, r, "authorization check failed", err)
		return
	}
	if !listed {
		writeJSON(w, http.StatusOK, userResponse{User: nil})
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: &admins.Identity{
		ID:    claims.Subject,
		Email: admins.NormalizeEmail(claims.Email),
	}})
}

// Logout handles POST /api/v1/admin/logout. Always succeeds.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, r.TLS != nil)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
