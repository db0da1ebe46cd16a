package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "member_client"

// Outcomes recorded against member_client_requests_total
const (
	OutcomeSuccess   = "success"
	OutcomeBusiness  = "business_error"
	OutcomeHTTP      = "http_error"
	OutcomeOffline   = "offline"
	OutcomeTimeout   = "timeout"
	OutcomeTransport = "transport_error"
	OutcomeBuild     = "build_error"
)

// Metrics groups the client's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	CredentialRenewals *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
	ConfigLoads        *prometheus.CounterVec
}

// NewRegistry creates a Prometheus registry with the Go runtime collector.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

// New creates and registers the client collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total API calls by route and outcome.",
		}, []string{"route", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "API call duration in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"route"}),
		CredentialRenewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_renewals_total",
			Help:      "Credentials replaced from response headers, by kind.",
		}, []string{"kind"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "User-visible notifications by level.",
		}, []string{"level"}),
		ConfigLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_loads_total",
			Help:      "Site configuration load attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.CredentialRenewals, m.Notifications, m.ConfigLoads)
	return m
}

func (m *Metrics) ObserveRequest(route, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, outcome).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) CredentialRenewed(kind string) {
	if m == nil {
		return
	}
	m.CredentialRenewals.WithLabelValues(kind).Inc()
}

func (m *Metrics) Notified(level string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(level).Inc()
}

func (m *Metrics) ConfigLoaded(result string) {
	if m == nil {
		return
	}
	m.ConfigLoads.WithLabelValues(result).Inc()
}
