// Package metrics exposes the prometheus counters of the auth server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records credential, token and request outcomes.
type Collector struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	tokenChecks   *prometheus.CounterVec
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophcourses_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophcourses_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		tokenChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophcourses_token_checks_total",
			Help: "Authorization header checks by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophcourses_requests_total",
			Help: "Handled requests by transport, route and status.",
		}, []string{"transport", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gophcourses_request_duration_seconds",
			Help:    "Request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"transport", "route"}),
	}

	reg.MustRegister(c.registrations, c.logins, c.tokenChecks, c.requests, c.latency)

	return c
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordTokenCheck counts one Authorization header evaluation:
// "anonymous", "authenticated", "malformed" or "invalid".
func (c *Collector) RecordTokenCheck(outcome string) {
	c.tokenChecks.WithLabelValues(outcome).Inc()
}

// RecordRequest counts a finished request. For gRPC status is the code name.
func (c *Collector) RecordRequest(transport, route, status string, d time.Duration) {
	c.requests.WithLabelValues(transport, route, status).Inc()
	c.latency.WithLabelValues(transport, route).Observe(d.Seconds())
}

// RecordHTTPRequest is RecordRequest for an HTTP status code.
func (c *Collector) RecordHTTPRequest(route string, status int, d time.Duration) {
	c.RecordRequest("http", route, strconv.Itoa(status), d)
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
