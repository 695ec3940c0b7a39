// Package metrics exposes Prometheus collectors for provider calls, HTTP
// endpoints and CRM push outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
)

// Metrics owns a private registry and the collectors registered on it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	contacts        *prometheus.CounterVec
	icpScores       prometheus.Histogram
}

// New creates a Metrics with Go runtime and process collectors attached.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		providerCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_brief_provider_calls_total",
				Help: "Total upstream provider calls",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "account_brief_provider_latency_seconds",
				Help:    "Upstream provider call latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_brief_http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		httpLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "account_brief_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"route"},
		),
		contacts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_brief_crm_contacts_total",
				Help: "Stakeholders processed by CRM pushes, by outcome",
			},
			[]string{"outcome"}, // created, skipped
		),
		icpScores: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "account_brief_icp_score",
				Help:    "Distribution of synthesized ICP scores",
				Buckets: []float64{20, 40, 60, 80, 100},
			},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveProvider records one provider call that began at start.
func (m *Metrics) ObserveProvider(provider string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.providerCalls.WithLabelValues(provider, outcome).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

// ContactOutcome counts one stakeholder ledger entry.
func (m *Metrics) ContactOutcome(outcome string) {
	if m == nil {
		return
	}
	m.contacts.WithLabelValues(outcome).Inc()
}

// ObserveICPScore records a synthesized score.
func (m *Metrics) ObserveICPScore(score int) {
	if m == nil {
		return
	}
	m.icpScores.Observe(float64(score))
}
