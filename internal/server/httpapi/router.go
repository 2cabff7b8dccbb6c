// Package httpapi is the JSON over HTTP transport of the auth server.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/ratelimit"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics receives token check and request outcomes.
type Metrics interface {
	RecordTokenCheck(outcome string)
	RecordHTTPRequest(route string, status int, d time.Duration)
}

// RouterDeps collects what NewRouter wires together. Metrics, Limiter and
// MetricsHandler are optional.
type RouterDeps struct {
	Users          UserService
	Authenticator  *auth.Authenticator
	Logger         logging.Logger
	Metrics        Metrics
	Limiter        *ratelimit.Limiter
	MetricsHandler http.Handler
}

// NewRouter returns the API router. Every route runs behind Authenticate,
// so a bad Authorization header is rejected even on public routes.
func NewRouter(deps RouterDeps) http.Handler {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	logger := deps.Logger.With("module", "http")

	h := &handler{users: deps.Users, logger: logger}

	authenticate := Authenticate(deps.Authenticator, logger, metrics)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(logger, metrics))
	r.Use(chimw.Recoverer)

	// Credential routes are throttled before the header is looked at, so a
	// request with a bad token still uses up its budget.
	r.Group(func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(RateLimit(deps.Limiter, logger))
		}
		r.Use(authenticate)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/ping", h.ping)
		if deps.MetricsHandler != nil {
			r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
		}

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.me)
			r.Put("/{id}", h.updateUser)
		})
	})

	return r
}

type nopMetrics struct{}

func (nopMetrics) RecordTokenCheck(string)                      {}
func (nopMetrics) RecordHTTPRequest(string, int, time.Duration) {}
