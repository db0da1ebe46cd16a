package metrics_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-member-client/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveRequest("/user/user_info", metrics.OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRequest("/user/user_info", metrics.OutcomeSuccess, 30*time.Millisecond)
	m.ObserveRequest("/user/user_info", metrics.OutcomeHTTP, time.Second)
	m.CredentialRenewed("bearer")
	m.Notified("fail")
	m.Notified("fail")
	m.ConfigLoaded("success")

	require.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/user/user_info", metrics.OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/user/user_info", metrics.OutcomeHTTP)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CredentialRenewals.WithLabelValues("bearer")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("fail")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ConfigLoads.WithLabelValues("success")))
	require.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveRequest("/x", metrics.OutcomeSuccess, time.Millisecond)
		m.CredentialRenewed("bearer")
		m.Notified("success")
		m.ConfigLoaded("error")
	})
}

func TestRegistryRejectsDoubleRegistration(t *testing.T) {
	reg := metrics.NewRegistry()
	metrics.New(reg)
	require.Panics(t, func() { metrics.New(reg) })
}
