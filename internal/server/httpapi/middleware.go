package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Authenticate resolves the Authorization header once per request and
// stores the identity in the request context. Requests without the header,
// or with an empty one, continue anonymously; a malformed header or a token
// that does not verify ends the request with 401.
func Authenticate(a *auth.Authenticator, logger logging.Logger, metrics Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// An empty value counts as no header.
			header := r.Header.Get(common.AuthorizationHeaderName)
			present := header != ""

			id, err := a.Authenticate(header, present)
			if err != nil {
				metrics.RecordTokenCheck(tokenOutcome(err))
				logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "reason", err.Error())
				writeError(w, err)
				return
			}

			if id.Authenticated {
				metrics.RecordTokenCheck("authenticated")
			} else {
				metrics.RecordTokenCheck("anonymous")
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func tokenOutcome(err error) string {
	if errors.Is(err, common.ErrMalformedHeader) {
		return "malformed"
	}
	return "invalid"
}

// RequestLogger logs and counts every finished request.
func RequestLogger(logger logging.Logger, metrics Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)

			metrics.RecordHTTPRequest(route, status, elapsed)
			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", elapsed,
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
