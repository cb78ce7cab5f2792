package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/temperature-etl-service/internal/adapter/http"
	"github.com/couchcryptid/temperature-etl-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error, opts ...httpadapter.Option) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, slog.New(slog.DiscardHandler), opts...)
}

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(t, newTestServer(nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(t, newTestServer(fmt.Errorf("not ready yet")), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestConvertRouteRequiresOption(t *testing.T) {
	rec := get(t, newTestServer(nil), "/v1/convert/F/51")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type conversion struct {
	Unit       string `json:"unit"`
	Value      int    `json:"value"`
	Fahrenheit int    `json:"fahrenheit"`
	Celsius    int    `json:"celsius"`
}

func TestConvert(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	srv := newTestServer(nil, httpadapter.WithConvertAPI(metrics))

	tests := []struct {
		path     string
		expected conversion
	}{
		{"/v1/convert/F/51", conversion{Unit: "F", Value: 51, Fahrenheit: 51, Celsius: 10}},
		{"/v1/convert/f/212", conversion{Unit: "F", Value: 212, Fahrenheit: 212, Celsius: 100}},
		{"/v1/convert/fahrenheit/-40", conversion{Unit: "F", Value: -40, Fahrenheit: -40, Celsius: -40}},
		{"/v1/convert/C/0", conversion{Unit: "C", Value: 0, Fahrenheit: 32, Celsius: 0}},
		{"/v1/convert/celsius/12", conversion{Unit: "C", Value: 12, Fahrenheit: 53, Celsius: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, srv, tt.path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, decode[conversion](t, rec))
		})
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.ConversionRequests.WithLabelValues("f_to_c", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ConversionRequests.WithLabelValues("c_to_f", "success")))
}

func TestConvert_BadRequest(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	srv := newTestServer(nil, httpadapter.WithConvertAPI(metrics))

	t.Run("unknown unit", func(t *testing.T) {
		rec := get(t, srv, "/v1/convert/K/300")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "unknown temperature unit")
	})

	t.Run("fractional value", func(t *testing.T) {
		rec := get(t, srv, "/v1/convert/C/21.5")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "whole number")
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConversionRequests.WithLabelValues("unknown", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConversionRequests.WithLabelValues("c_to_f", "error")))
}
