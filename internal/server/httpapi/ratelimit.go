package httpapi

import (
	"net"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/ratelimit"
)

// RateLimit answers 429 with Retry-After once the client IP has used up its
// budget on l.
func RateLimit(l *ratelimit.Limiter, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip) {
				logger.Warn(r.Context(), "rate limit exceeded", "client", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(l.RetryAfter()))
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
