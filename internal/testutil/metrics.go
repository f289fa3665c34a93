package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"nba-surprise-service/internal/metrics"
)

// NewTelemetry returns a recorder exporting to a private Prometheus registry
// and the registry's scrape handler. The meter provider shuts down with the test.
func NewTelemetry(t testing.TB) (*metrics.Recorder, http.Handler) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "nba-surprise-service-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec, handler
}

// Scrape returns the exposition text served by a Prometheus handler.
func Scrape(t testing.TB, handler http.Handler) string {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}
