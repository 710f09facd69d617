package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/apierror"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/auth"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/admins"
)

type contextKeyAuth string

const adminIdentityKey contextKeyAuth = "adminIdentity"

// Authorizer answers whether an email currently holds admin access.
type Authorizer interface {
	Authorize(ctx context.Context, email string) (bool, error)
}

// AdminSession gates admin endpoints. Both checks run on every request:
// a valid session cookie (401 otherwise) and allow-list membership (403
// otherwise, with the session forcibly terminated). Neither result is
// cached, so an allow-list revocation takes effect on the next request.
func AdminSession(manager *auth.SessionManager, authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil || authorizer == nil {
				apierror.Write(w, r, http.StatusInternalServerError, "server error", nil)
				return
			}

			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				apierror.Write(w, r, http.StatusUnauthorized, "authentication required", apierror.ErrUnauthorized)
				return
			}

			claims, err := manager.Validate(cookie.Value)
			if err != nil {
				auth.ClearSessionCookie(w, r.TLS != nil)
				apierror.Write(w, r, http.StatusUnauthorized, "authentication required", err)
				return
			}

			listed, err := authorizer.Authorize(r.Context(), claims.Email)
			if err != nil {
				apierror.WriteStore(w, r, "authorization check failed", err)
				return
			}
			if !listed {
				auth.ClearSessionCookie(w, r.TLS != nil)
				apierror.Write(w, r, http.StatusForbidden, admins.ErrNotAuthorized.Error(), apierror.ErrForbidden)
				return
			}

			identity := &admins.Identity{ID: claims.Subject, Email: admins.NormalizeEmail(claims.Email)}
			ctx := contextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithIdentity(ctx context.Context, identity *admins.Identity) context.Context {
	return context.WithValue(ctx, adminIdentityKey, identity)
}

// Identity returns the admin identity attached by AdminSession, or nil.
func Identity(r *http.Request) *admins.Identity {
	if r == nil {
		return nil
	}
	if identity, ok := r.Context().Value(adminIdentityKey).(*admins.Identity); ok {
		return identity
	}
	return nil
}
