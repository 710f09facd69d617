package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		Session: config.SessionConfig{
			Secret: "test-secret-at-least-32-bytes-long",
			Expiry: time.Hour,
		},
		CORS:        config.CORSConfig{AllowAllOrigins: true},
		Environment: "test",
	}
	handler, err := NewRouter(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	return handler
}

func TestRouterServesContentRoutes(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "events")
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/registrations", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
	require.Equal(t, "POST", res.Header().Get("Allow"))
}

func TestRouterAdminRoutesRequireSession(t *testing.T) {
	router := testRouter(t)

	for _, target := range []string{
		"/api/v1/admin/registrations",
		"/api/v1/admin/registrations/export?event_slug=vbs-2026",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusUnauthorized, res.Code, target)
	}
}

func TestRouterMeWithoutSessionIsNullUserNot401(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"user":null}`, res.Body.String())
}

func TestRouterLoginValidatesBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRouterHealthz(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestRouterAppliesCORSHeaders(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://grmatl.org")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "https://grmatl.org", res.Header().Get("Access-Control-Allow-Origin"))
}
