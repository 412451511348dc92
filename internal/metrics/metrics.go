// Package metrics exposes ledger activity as Prometheus collectors.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havanahub/investors/internal/calculator"
	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/models"
)

// Mutation results.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	mutations    *prometheus.CounterVec
	totalRaised  prometheus.Gauge
	totalPayouts prometheus.Gauge
	investors    prometheus.Gauge
	payouts      prometheus.Gauge
}

// New registers the ledger collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "havana_mutations_total",
			Help: "Ledger mutations by operation and result.",
		}, []string{"op", "result"}),
		totalRaised: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "havana_total_raised",
			Help: "Sum of all investor amounts.",
		}),
		totalPayouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "havana_total_payouts",
			Help: "Sum of all payout amounts.",
		}),
		investors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "havana_investors",
			Help: "Number of investors.",
		}),
		payouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "havana_payouts",
			Help: "Number of payouts.",
		}),
	}

	m.registry.MustRegister(
		m.mutations,
		m.totalRaised,
		m.totalPayouts,
		m.investors,
		m.payouts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe sets the gauges from a document.
func (m *Metrics) Observe(doc *models.Document) {
	m.totalRaised.Set(calculator.TotalRaised(doc))
	m.totalPayouts.Set(calculator.TotalPayouts(doc))
	m.investors.Set(float64(len(doc.Investors)))
	m.payouts.Set(float64(len(doc.Payouts)))
}

// Hook records every mutation attempt and refreshes the gauges.
func (m *Metrics) Hook(op ledger.Op, doc *models.Document, err error) {
	m.mutations.WithLabelValues(string(op), Result(err)).Inc()
	m.Observe(doc)
}

// Result classifies a mutation error for the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, impexp.ErrParse):
		return ResultInvalid
	case errors.Is(err, ledger.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, ledger.ErrConfirmationRequired):
		return ResultRejected
	default:
		return ResultError
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
