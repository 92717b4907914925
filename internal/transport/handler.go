// Package transport exposes the HTTP API: ingestion triggers, charts, the lock API and
// operator views.
package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Config bounds request parameters.
type Config struct {
	DefaultChartHours  int
	DefaultChartPoints int
	MaxLockTimeout     time.Duration
	DefaultLockTimeout time.Duration
	RequestTimeout     time.Duration
	AllowedOrigins     []string
}

func (c Config) withDefaults() Config {
	if c.DefaultChartHours <= 0 {
		c.DefaultChartHours = 24
	}
	if c.DefaultChartPoints <= 0 {
		c.DefaultChartPoints = 100
	}
	if c.DefaultLockTimeout <= 0 {
		c.DefaultLockTimeout = 30 * time.Second
	}
	if c.MaxLockTimeout <= 0 {
		c.MaxLockTimeout = 10 * time.Minute
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	return c
}

// Dependencies are the services behind the API. Ingester may be nil on read-only
// deployments; its routes then answer 503.
type Dependencies struct {
	Ingester  Ingester
	Charts    ChartSampler
	Locks     LockService
	BadRanges BadRangeLister
	Health    HealthChecker
	Metrics   Metrics
}

type Handler struct {
	deps   Dependencies
	cfg    Config
	logger *zap.Logger
}

func NewHandler(deps Dependencies, cfg Config, logger *zap.Logger) (*Handler, error) {
	if deps.Charts == nil || deps.Locks == nil || deps.BadRanges == nil || deps.Health == nil {
		return nil, errors.New("transport requires chart, lock, bad range and health services")
	}
	if deps.Metrics == nil {
		return nil, errors.New("transport metrics is required")
	}
	return &Handler{deps: deps, cfg: cfg.withDefaults(), logger: logger.Named("http")}, nil
}

// Router builds the chi router with request ids, access logs, metrics and CORS.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(middleware.RealIP)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.cfg.RequestTimeout))

	r.Get("/healthz", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/ingestion/runs", h.runIngestion)
		r.Post("/tokens/{address}/backfill", h.backfill)
		r.Get("/tokens/{address}/chart", h.chart)

		r.Post("/locks", h.acquireLock)
		r.Get("/locks/{requestID}", h.lockStatus)
		r.Post("/locks/{requestID}/renew", h.renewLock)
		r.Delete("/locks/{requestID}", h.releaseLock)
		r.Delete("/resources/{key}/lock", h.releaseResource)

		r.Get("/bad-ranges", h.badRanges)
	})

	if len(h.cfg.AllowedOrigins) == 0 {
		return cors.Default().Handler(r)
	}
	return cors.New(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Health.Ping(r.Context()); err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, "storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
