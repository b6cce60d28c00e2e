package metrics_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-login-relay/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecordLogin(t *testing.T) {
	c := metrics.NewCollector(prometheus.NewRegistry())

	c.RecordLogin(metrics.OutcomeSuccess)
	c.RecordLogin(metrics.OutcomeSuccess)
	c.RecordLogin("state_mismatch")

	body := scrape(t, c)
	assert.Contains(t, body, `relay_logins_total{outcome="success"} 2`)
	assert.Contains(t, body, `relay_logins_total{outcome="state_mismatch"} 1`)
}

func TestObserveProviderCall(t *testing.T) {
	c := metrics.NewCollector(prometheus.NewRegistry())

	c.ObserveProviderCall("token_exchange", 120*time.Millisecond, nil)
	c.ObserveProviderCall("userinfo", time.Second, fmt.Errorf("status 500"))

	body := scrape(t, c)
	assert.Contains(t, body, `relay_provider_request_seconds_count{call="token_exchange",result="ok"} 1`)
	assert.Contains(t, body, `relay_provider_request_seconds_count{call="userinfo",result="error"} 1`)
}

func TestRecordRateLimited(t *testing.T) {
	c := metrics.NewCollector(prometheus.NewRegistry())
	c.RecordRateLimited()

	assert.Contains(t, scrape(t, c), "relay_rate_limited_total 1")
}
