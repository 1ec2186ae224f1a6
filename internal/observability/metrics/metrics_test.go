package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowupMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFollowupMetrics(reg)

	m.ObserveDecision("Skip")
	m.ObserveDecision("Follow-up")
	m.ObserveDecision("Follow-up")
	m.ObserveDelivery("failed")
	m.ObserveDeliveryAttempt()
	m.ObserveDeliveryAttempt()
	m.ObserveGenerationFailure()
	m.ObserveInvalidRow()
	m.ObserveGenerationLatency(0.25)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisionsTotal.WithLabelValues("Skip")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisionsTotal.WithLabelValues("Follow-up")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveriesTotal.WithLabelValues("failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.deliveryAttempts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidRows))
	assert.Equal(t, 1, testutil.CollectAndCount(m.generationLatency))
}

func TestFollowupMetricsNilSafe(t *testing.T) {
	var m *FollowupMetrics
	m.ObserveDecision("Skip")
	m.ObserveDelivery("sent")
	m.ObserveDeliveryAttempt()
	m.ObserveGenerationFailure()
	m.ObserveInvalidRow()
	m.ObserveGenerationLatency(0.1)
}

func TestRouterServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFollowupMetrics(reg)
	m.ObserveDecision("Skip")

	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gtm_followup_decisions_total{decision="Skip"} 1`)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
