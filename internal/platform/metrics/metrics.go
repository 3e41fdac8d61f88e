// File: internal/platform/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts authentication outcomes for Prometheus scraping.
type Collector struct {
	registrations  *prometheus.CounterVec
	logins         *prometheus.CounterVec
	githubLogins   *prometheus.CounterVec
	providerErrors prometheus.Counter
	logouts        prometheus.Counter
}

// NewCollector creates a new Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "converse_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "converse_logins_total",
			Help: "Email login attempts by outcome.",
		}, []string{"outcome"}),
		githubLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "converse_github_logins_total",
			Help: "GitHub OAuth login attempts by outcome.",
		}, []string{"outcome"}),
		providerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "converse_identity_provider_errors_total",
			Help: "Identity provider calls that failed upstream.",
		}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "converse_logouts_total",
			Help: "Logout requests handled.",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.githubLogins,
		c.providerErrors,
		c.logouts,
	)

	return c
}

// NewNopCollector returns a collector backed by a throwaway registry, for
// tests.
func NewNopCollector() *Collector {
	return NewCollector(prometheus.NewRegistry())
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordGitHubLogin(outcome string) {
	c.githubLogins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordProviderError() {
	c.providerErrors.Inc()
}

func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
