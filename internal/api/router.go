package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/handlers"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/api/middleware"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/auth"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/config"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/admins"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/registrations"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/email"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/storage/postgres"
	"github.com/fiifikrampah/grmatl-netlify-sub000/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const sessionIssuer = "grmatl-api"

// NewRouter wires repositories, services and handlers into the public and
// admin route tree. The pool is owned by the caller; the router never closes
// it.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (http.Handler, error) {
	registrationRepo := postgres.NewRegistrationRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)

	registrationService := registrations.NewService(registrationRepo)
	adminService := admins.NewService(adminRepo, logger)

	notifier, err := email.NewNotifier(cfg.Email, logger)
	if err != nil {
		return nil, err
	}

	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Expiry, sessionIssuer)

	registrationsHandler := handlers.NewRegistrationsHandler(registrationService, notifier, logger)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminService, sessions)
	adminRegistrationsHandler := handlers.NewAdminRegistrationsHandler(registrationService)
	contentHandler := handlers.NewContentHandler()

	adminSession := middleware.AdminSession(sessions, adminService)
	publicBody := middleware.PublicRequestSize()

	// One shared limiter store; the tier tag must be in the context before
	// the limiter runs, so rate limiting is applied per route inside the
	// tier wrapper rather than globally.
	limit := middleware.RateLimit(cfg.RateLimit)
	adminTier := func(next http.Handler) http.Handler {
		return middleware.WithRateLimitTierHandler(middleware.TierAdmin)(limit(next))
	}
	loginTier := func(next http.Handler) http.Handler {
		return middleware.WithRateLimitTierHandler(middleware.TierLogin)(limit(next))
	}

	mux := http.NewServeMux()
	mux.Handle("/", web.IndexHandler())
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))

	mux.Handle("/api/v1/registrations", methodMux(map[string]http.Handler{
		http.MethodPost: limit(publicBody(http.HandlerFunc(registrationsHandler.Submit))),
	}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet: limit(http.HandlerFunc(contentHandler.ListEvents)),
	}))
	mux.Handle("/api/v1/events/{slug}", methodMux(map[string]http.Handler{
		http.MethodGet: limit(http.HandlerFunc(contentHandler.GetEvent)),
	}))
	mux.Handle("/api/v1/posts", methodMux(map[string]http.Handler{
		http.MethodGet: limit(http.HandlerFunc(contentHandler.ListPosts)),
	}))
	mux.Handle("/api/v1/posts/{slug}", methodMux(map[string]http.Handler{
		http.MethodGet: limit(http.HandlerFunc(contentHandler.GetPost)),
	}))

	mux.Handle("/api/v1/admin/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(publicBody(http.HandlerFunc(adminAuthHandler.Login))),
	}))
	mux.Handle("/api/v1/admin/logout", methodMux(map[string]http.Handler{
		http.MethodPost: adminTier(http.HandlerFunc(adminAuthHandler.Logout)),
	}))
	// Me is deliberately outside the session middleware: a stale or missing
	// session must produce a null user, not a 401.
	mux.Handle("/api/v1/admin/me", methodMux(map[string]http.Handler{
		http.MethodGet: adminTier(http.HandlerFunc(adminAuthHandler.Me)),
	}))

	mux.Handle("/api/v1/admin/registrations", methodMux(map[string]http.Handler{
		http.MethodGet: adminTier(adminSession(http.HandlerFunc(adminRegistrationsHandler.List))),
	}))
	mux.Handle("/api/v1/admin/registrations/export", methodMux(map[string]http.Handler{
		http.MethodGet: adminTier(adminSession(http.HandlerFunc(adminRegistrationsHandler.Export))),
	}))
	mux.Handle("/api/v1/admin/registrations/{id}", methodMux(map[string]http.Handler{
		http.MethodDelete: adminTier(adminSession(http.HandlerFunc(adminRegistrationsHandler.Delete))),
	}))

	var handler http.Handler = mux
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.SecurityHeaders(cfg.Environment == "production")(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
