package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/auth"
	"github.com/stretchr/testify/require"
)

type stubAuthorizer struct {
	fn func(email string) (bool, error)
}

func (s stubAuthorizer) Authorize(_ context.Context, email string) (bool, error) {
	return s.fn(email)
}

func newSessionRequest(t *testing.T, manager *auth.SessionManager, email string) *http.Request {
	t.Helper()
	token, err := manager.Issue("acc-1", email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/registrations", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	return req
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminSessionNoCookieReturns401(t *testing.T) {
	manager := auth.NewSessionManager("secret", time.Hour, "grmatl")
	authorizer := stubAuthorizer{fn: func(string) (bool, error) { return true, nil }}

	var called bool
	handler := AdminSession(manager, authorizer)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/registrations", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, called)
}

func TestAdminSessionInvalidTokenReturns401(t *testing.T) {
	manager := auth.NewSessionManager("secret", time.Hour, "grmatl")
	authorizer := stubAuthorizer{fn: func(string) (bool, error) { return true, nil }}

	var called bool
	handler := AdminSession(manager, authorizer)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/registrations", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, called)
}

func TestAdminSessionNotAllowListedReturns403AndClearsCookie(t *testing.T) {
	manager := auth.NewSessionManager("secret", time.Hour, "grmatl")
	authorizer := stubAuthorizer{fn: func(string) (bool, error) { return false, nil }}

	var called bool
	handler := AdminSession(manager, authorizer)(okHandler(&called))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, newSessionRequest(t, manager, "member@grmatl.org"))

	require.Equal(t, http.StatusForbidden, res.Code)
	require.False(t, called)

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, auth.SessionCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestAdminSessionAllowListedPassesIdentity(t *testing.T) {
	manager := auth.NewSessionManager("secret", time.Hour, "grmatl")
	authorizer := stubAuthorizer{fn: func(email string) (bool, error) {
		require.Equal(t, "admin@grmatl.org", email)
		return true, nil
	}}

	var gotEmail string
	handler := AdminSession(manager, authorizer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Identity(r)
		require.NotNil(t, identity)
		gotEmail = identity.Email
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, newSessionRequest(t, manager, "admin@grmatl.org"))

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "admin@grmatl.org", gotEmail)
}

func TestAdminSessionAuthorizerFailureReturns500(t *testing.T) {
	manager := auth.NewSessionManager("secret", time.Hour, "grmatl")
	authorizer := stubAuthorizer{fn: func(string) (bool, error) {
		return false, errors.New("connection refused")
	}}

	var called bool
	handler := AdminSession(manager, authorizer)(okHandler(&called))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, newSessionRequest(t, manager, "admin@grmatl.org"))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.False(t, called)
}

func TestIdentityMissingReturnsNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Nil(t, Identity(req))
}
