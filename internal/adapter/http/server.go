package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/temperature-etl-service/internal/domain"
	"github.com/couchcryptid/temperature-etl-service/internal/observability"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes health, readiness, metrics, and optionally the conversion API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Option customizes the routes mounted by NewServer.
type Option func(chi.Router, *slog.Logger)

// WithConvertAPI mounts GET /v1/convert/{unit}/{value}.
func WithConvertAPI(metrics *observability.Metrics) Option {
	return func(r chi.Router, logger *slog.Logger) {
		r.Get("/v1/convert/{unit}/{value}", handleConvert(metrics, logger))
	}
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, logger *slog.Logger, opts ...Option) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, opt := range opts {
		opt(r, logger)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type conversionResponse struct {
	Unit       domain.Unit `json:"unit"`
	Value      int         `json:"value"`
	Fahrenheit int         `json:"fahrenheit"`
	Celsius    int         `json:"celsius"`
}

func handleConvert(metrics *observability.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unit, err := domain.ParseUnit(chi.URLParam(r, "unit"))
		if err != nil {
			metrics.ConversionRequests.WithLabelValues("unknown", "error").Inc()
			sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		direction := "f_to_c"
		if unit == domain.Celsius {
			direction = "c_to_f"
		}

		value, err := strconv.Atoi(chi.URLParam(r, "value"))
		if err != nil {
			metrics.ConversionRequests.WithLabelValues(direction, "error").Inc()
			sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "value must be a whole number of degrees"})
			return
		}

		f, c := unit.Convert(value)
		metrics.ConversionRequests.WithLabelValues(direction, "success").Inc()
		logger.Debug("converted temperature", "unit", unit, "value", value, "fahrenheit", f, "celsius", c)

		sharedobs.WriteJSON(w, http.StatusOK, conversionResponse{Unit: unit, Value: value, Fahrenheit: f, Celsius: c})
	}
}
