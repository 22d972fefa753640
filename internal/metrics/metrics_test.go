package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()))

	m.ObserveFetch("ok", 120*time.Millisecond)
	m.ObserveFetch("http_status", 30*time.Millisecond)
	m.ObserveFetch("http_status", 30*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("http_status")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("network")))
}

func TestSetReleaseKeepsOneSeries(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()))

	m.SetRelease("3.7.3", "QuickLook-3.7.3.msi")
	m.SetRelease("4.0.0", "QuickLook-4.0.0.msi")

	assert.Equal(t, 1, testutil.CollectAndCount(m.releaseInfo))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.releaseInfo.WithLabelValues("4.0.0", "QuickLook-4.0.0.msi")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(WithNamespace("test"))
	m.ObserveRequest("/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{code="200",route="/"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
