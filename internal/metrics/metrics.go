// Package metrics exposes Prometheus collectors for the API and the mess ledger.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hostel"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	membershipWrites *prometheus.CounterVec
	periodTotal      prometheus.Gauge
	planSubtotal     *prometheus.GaugeVec
}

// New registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		membershipWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_writes_total",
			Help:      "Persisted mess membership changes by resulting opt-in state.",
		}, []string{"opted_in"}),
		periodTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mess_period_total",
			Help:      "Billed mess total for the current period.",
		}),
		planSubtotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mess_plan_subtotal",
			Help:      "Billed mess subtotal per plan for the current period.",
		}, []string{"plan"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.membershipWrites,
		m.periodTotal,
		m.planSubtotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) MembershipWritten(optedIn bool) {
	if m == nil {
		return
	}
	m.membershipWrites.WithLabelValues(strconv.FormatBool(optedIn)).Inc()
}

// SetSummary replaces the ledger gauges with s. Plans no longer in s are dropped.
func (m *Metrics) SetSummary(s billing.Summary) {
	if m == nil {
		return
	}
	m.planSubtotal.Reset()
	for _, l := range s.Lines {
		m.planSubtotal.WithLabelValues(l.PlanName).Set(l.Subtotal.InexactFloat64())
	}
	m.periodTotal.Set(s.Total.InexactFloat64())
}
